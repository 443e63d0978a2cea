package store

import (
	"context"
	"path/filepath"
	"sync"

	"enigmatick/internal/domain"
)

// SnapshotFilename is the name of the snapshot file inside the store
// directory.
const SnapshotFilename = "state.json"

// FileSnapshotStore keeps the exported state in a single file. With a
// passphrase the file is sealed with scrypt and ChaCha20-Poly1305.
type FileSnapshotStore struct {
	path       string
	passphrase string
	mu         sync.Mutex

	scryptN, scryptR, scryptP int
}

// NewFileSnapshotStore returns a FileSnapshotStore rooted at dir. An empty
// passphrase stores the snapshot in the clear.
func NewFileSnapshotStore(dir, passphrase string) *FileSnapshotStore {
	N, r, p := scryptParamsDefault()
	return &FileSnapshotStore{
		path:       filepath.Join(dir, SnapshotFilename),
		passphrase: passphrase,
		scryptN:    N,
		scryptR:    r,
		scryptP:    p,
	}
}

// Path returns the snapshot file path.
func (s *FileSnapshotStore) Path() string { return s.path }

// LoadSnapshot reads the snapshot. A missing file reports ok=false.
func (s *FileSnapshotStore) LoadSnapshot(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return "", false, err
	}
	if s.passphrase == "" {
		if isSealed(b) {
			return "", false, ErrPassphraseRequired
		}
		return string(b), true, nil
	}
	pt, err := open(s.passphrase, b)
	if err != nil {
		return "", false, err
	}
	return string(pt), true, nil
}

// SaveSnapshot atomically replaces the snapshot file.
func (s *FileSnapshotStore) SaveSnapshot(_ context.Context, snapshot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := []byte(snapshot)
	if s.passphrase != "" {
		var err error
		if b, err = seal(s.passphrase, b, s.scryptN, s.scryptR, s.scryptP); err != nil {
			return err
		}
	}
	return writeFile(s.path, b, 0o600)
}

// Close is a no-op.
func (s *FileSnapshotStore) Close() error { return nil }

// Compile-time assertion that FileSnapshotStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*FileSnapshotStore)(nil)
