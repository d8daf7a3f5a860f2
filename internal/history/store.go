package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"netpulse/pkg/logx"
)

// DefaultPath is where the result log lives unless configured otherwise.
const DefaultPath = "logs/speed_test_log.json"

// Store is the append-only result log, backed by a single JSON document
// holding an ordered array of records.
//
// Reads heal: a missing, empty or unparseable file yields an empty history
// rather than an error. That is a deliberate user-visible policy inherited
// from the log's external contract; the warning is logged when the file is
// corrupt. Any other read fault (permissions, I/O) is NOT healed on the
// append path, since rewriting over an unreadable file would destroy
// whatever history it still holds.
type Store struct {
	path string
	log  logx.Logger

	mu sync.Mutex
}

func NewStore(path string, log logx.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, log: log}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Append adds one record to the log, preserving all prior records. The
// document is rewritten through a temp file and rename so an interrupted
// write never corrupts existing history. Read faults on an existing file
// and write failures are surfaced; nothing is rewritten in either case.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	records = append(records, rec)
	return s.write(records)
}

// All returns every record in original append order. Calling All twice
// without an intervening Append yields identical sequences. A read fault
// is logged and reported as an empty history; All never writes.
func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.readAll()
	if err != nil {
		s.log.Warn("history unreadable; treating as empty",
			logx.String("path", s.path),
			logx.Err(err),
		)
		return []Record{}
	}
	return records
}

// readAll loads the log. A missing, empty or unparseable file heals to an
// empty history; any other read fault is returned so the caller can decide
// whether an empty view is acceptable.
func (s *Store) readAll() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("history corrupt; treating as empty",
			logx.String("path", s.path),
			logx.Err(err),
		)
		return []Record{}, nil
	}
	return records, nil
}

func (s *Store) write(records []Record) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	// Atomic rewrite: temp file in the same directory, then rename.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close history file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
