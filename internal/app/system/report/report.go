// Package report gives the dashboard access to the PDF report that the page
// links to. The file is optional: when it is missing the page still renders,
// only without the link and the download button.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrMissingResource is wrapped by Load and Stat when the report file is absent.
var ErrMissingResource = errors.New("missing resource")

// File is a report read fully into memory.
type File struct {
	Name    string
	Data    []byte
	ModTime time.Time
}

// Source locates the report on disk. It reads the file on every call, so a
// report dropped in place after startup is picked up without a restart.
type Source struct {
	Path string
	Name string // download file name
	Log  *zap.Logger

	missing atomic.Bool
}

// NewSource builds a Source. An empty name defaults to the path's base name.
func NewSource(path, name string, logger *zap.Logger) *Source {
	if name == "" {
		name = filepath.Base(path)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{Path: path, Name: name, Log: logger}
}

// Load reads the whole report into memory.
func (s *Source) Load() (*File, error) {
	info, err := s.Stat()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, s.wrap(err)
	}
	return &File{Name: s.Name, Data: data, ModTime: info.ModTime()}, nil
}

// Stat checks that the report exists and is a regular file.
func (s *Source) Stat() (fs.FileInfo, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, s.wrap(err)
	}
	if info.IsDir() {
		return nil, s.wrap(fmt.Errorf("%s is a directory: %w", s.Path, fs.ErrNotExist))
	}
	s.recovered()
	return info, nil
}

// Available reports whether the report can be linked. The first failure of an
// outage is logged as a warning; repeats stay quiet until the file returns.
func (s *Source) Available() bool {
	_, err := s.Stat()
	return err == nil
}

func (s *Source) wrap(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		if s.missing.CompareAndSwap(false, true) {
			s.Log.Warn("report file missing; dashboard renders without the report link",
				zap.String("path", s.Path))
		}
		return fmt.Errorf("%w: report %s", ErrMissingResource, s.Path)
	}
	s.Log.Error("report file unreadable", zap.String("path", s.Path), zap.Error(err))
	return fmt.Errorf("read report %s: %w", s.Path, err)
}

func (s *Source) recovered() {
	if s.missing.CompareAndSwap(true, false) {
		s.Log.Info("report file available again", zap.String("path", s.Path))
	}
}
