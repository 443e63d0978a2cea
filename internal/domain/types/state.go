package types

// State is the exportable record of the whole session-state manager.
//
// A nil PickledAccount means no account exists; a nil OlmSessions means no
// sessions exist.
type State struct {
	PickledAccount *string                    `json:"pickled_account"`
	OlmSessions    map[CorrespondentID]string `json:"olm_sessions"`
}
