package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"chatcal/internal/history"
)

// FileRecorder mirrors the interaction log to a JSONL file, one entry per
// line. The in-memory log stays canonical; the file is bookkeeping only.
type FileRecorder struct {
	path string
	mu   sync.Mutex
}

func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to ensure log dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init log file")
	}
	_ = f.Close()
	return &FileRecorder{path: path}, nil
}

func (r *FileRecorder) AppendEntry(e history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open append")
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(e); err != nil {
		return errors.Wrap(err, "encode append")
	}
	return nil
}

// Reset truncates the file, matching a clear of the in-memory log.
func (r *FileRecorder) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Wrap(os.Truncate(r.path, 0), "truncate")
}

// LoadEntries reads back the mirrored entries, skipping malformed lines.
func (r *FileRecorder) LoadEntries() ([]history.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrap(err, "open read")
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	buf := make([]byte, 0, 1024*1024)
	s.Buffer(buf, 10*1024*1024)
	var entries []history.Entry
	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		var e history.Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	return entries, nil
}
