package reader

import (
	"fmt"
	"os"
	"path/filepath"
)

// scratchStore spills stream payloads to files under a private temporary
// directory. It implements core.StreamStore. The directory is created on
// first use and removed by Close, so a document that never spills leaves
// nothing behind.
type scratchStore struct {
	parent  string // directory to create the scratch dir under; "" means os.TempDir
	root    string // created scratch directory, empty until first spill
	counter int
}

func newScratchStore(parent string) *scratchStore {
	return &scratchStore{parent: parent}
}

// Externalize writes data to a new file in the scratch directory and
// returns its path.
func (s *scratchStore) Externalize(data []byte) (string, error) {
	if s.root == "" {
		root, err := os.MkdirTemp(s.parent, "carousel-scratch-")
		if err != nil {
			return "", fmt.Errorf("failed to create scratch directory: %w", err)
		}
		s.root = root
	}

	s.counter++
	path := filepath.Join(s.root, fmt.Sprintf("stream-%06d.bin", s.counter))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write spilled stream: %w", err)
	}
	return path, nil
}

// Close removes the scratch directory and every spilled payload in it.
func (s *scratchStore) Close() error {
	if s.root == "" {
		return nil
	}
	err := os.RemoveAll(s.root)
	s.root = ""
	return err
}
