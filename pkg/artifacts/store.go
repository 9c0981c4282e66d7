package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// PersistenceError indicates a failure reading or writing a deployment
// record. It is always fatal to the invocation that hits it.
type PersistenceError struct {
	Op     string
	Detail string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("artifacts: %s: %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("artifacts: %s: %s", e.Op, e.Detail)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// networkNameRe keeps network identities safe to use as file names.
var networkNameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Store persists one deployment record per network identity as JSON under a
// root directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on first
// save, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the record file path for a network.
func (s *Store) Path(network string) string {
	return filepath.Join(s.dir, network+".json")
}

// Load reads the record for network. A network that has never been deployed
// to has no file; that is not an error and yields an empty record.
func (s *Store) Load(network string) (Record, error) {
	if !networkNameRe.MatchString(network) {
		return nil, &PersistenceError{Op: "load", Detail: "invalid network name " + network}
	}

	data, err := os.ReadFile(s.Path(network)) // #nosec G304 -- path is derived from the validated network name
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, nil
		}
		return nil, &PersistenceError{Op: "load", Detail: "reading record for " + network, Err: err}
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &PersistenceError{Op: "load", Detail: "parsing record for " + network, Err: err}
	}
	if record == nil {
		record = Record{}
	}
	return record, nil
}

// Save writes the full record for network. The write goes to a temp file in
// the same directory which is fsynced and renamed over the target, so a
// crash mid-save leaves the previous record intact.
func (s *Store) Save(network string, record Record) error {
	if !networkNameRe.MatchString(network) {
		return &PersistenceError{Op: "save", Detail: "invalid network name " + network}
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return &PersistenceError{Op: "save", Detail: "creating artifacts dir", Err: err}
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Detail: "encoding record for " + network, Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, network+".*.tmp")
	if err != nil {
		return &PersistenceError{Op: "save", Detail: "creating temp file", Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // #nosec G104 -- best effort cleanup, no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "save", Detail: "writing temp file", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "save", Detail: "syncing temp file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "save", Detail: "closing temp file", Err: err}
	}

	if err := os.Rename(tmpName, s.Path(network)); err != nil {
		return &PersistenceError{Op: "save", Detail: "replacing record for " + network, Err: err}
	}
	return nil
}
