package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/twiced-technology-gmbh/chikita/internal/filelock"
	"github.com/twiced-technology-gmbh/chikita/internal/logx"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// File keeps every key in one JSON object on disk.
//
// Writes take the sidecar <path>.lock, re-read the object so keys written by
// another process survive, and replace the file by rename. Readers never see
// a half-written file and need no lock.
type File struct {
	path string
	log  logx.Logger

	mu     sync.Mutex
	closed bool
}

// OpenFile opens (without creating) the JSON store at path.
func OpenFile(path string, log logx.Logger) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &File{path: path, log: log}, nil
}

// Path returns the JSON file location.
func (s *File) Path() string { return s.path }

// Get implements Store.
func (s *File) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, ErrClosed
	}
	data, err := s.readAll()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set implements Store.
func (s *File) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return filelock.With(s.path+".lock", func() error {
		data, err := s.readAll()
		if err != nil {
			// A corrupt file is replaced rather than blocking every write.
			s.log.Warn("replacing unreadable store file", logx.String("path", s.path), logx.Err(err))
			data = map[string]string{}
		}
		data[key] = value
		return s.writeAll(data)
	})
}

// Close implements Store.
func (s *File) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *File) readAll() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}
	data := map[string]string{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", s.path, err)
	}
	return data, nil
}

func (s *File) writeAll(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}
