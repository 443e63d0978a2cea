package store

// LoadAccount returns the account pickle, if any.
func (tx *stateTx) LoadAccount() (string, bool) {
	if tx.account == nil {
		return "", false
	}
	return *tx.account, true
}

// SaveAccount stores pickle as the sole account, replacing any previous one.
func (tx *stateTx) SaveAccount(pickle string) {
	tx.account = &pickle
}

// ClearAccount empties the account slot.
func (tx *stateTx) ClearAccount() {
	tx.account = nil
}
