package liblogger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// FileSink appends formatted lines to a file and rotates it by size.
// The active file keeps a fixed name; on rotation it is renamed to
// <stem>.<seq><ext> (for example app.000001.log) and a fresh file is opened.
type FileSink struct {
	mu sync.Mutex

	dir             string
	name            string // Base name of the active file
	maxSize         int64  // 0 disables rotation
	timestampFormat string

	file    *os.File
	size    int64 // Bytes in the active file
	nextSeq int   // Sequence for the next archive
	closed  bool

	rotations atomic.Uint64
}

// NewFileSink creates the log directory and opens the active file.
// filePath is resolved against folder unless it is absolute.
func NewFileSink(folder, filePath string, maxSize int64, timestampFormat string) (*FileSink, error) {
	fullPath := filePath
	if !filepath.IsAbs(filePath) {
		fullPath = filepath.Join(folder, filePath)
	}

	s := &FileSink{
		dir:             filepath.Dir(fullPath),
		name:            filepath.Base(fullPath),
		maxSize:         maxSize,
		timestampFormat: timestampFormat,
	}

	if err := s.openLogFile(); err != nil {
		return nil, err
	}

	seq, err := s.highestArchiveSeq()
	if err != nil {
		s.file.Close()
		return nil, err
	}
	s.nextSeq = seq + 1

	return s, nil
}

// Write appends one record, rotating first if it would push the active file past maxSize
func (s *FileSink) Write(r Record) error {
	line := formatLine(r, s.timestampFormat)
	lineLen := int64(len(line))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmtErrorf("file sink closed")
	}

	// Directory or handle lost after a failed rotation, retry lazily
	if s.file == nil {
		if err := s.openLogFile(); err != nil {
			return err
		}
	}

	// An empty file always takes the record whole, even if it alone exceeds maxSize
	if s.maxSize > 0 && s.size > 0 && s.size+lineLen > s.maxSize {
		if err := s.rotateLogFile(); err != nil {
			return err
		}
	}

	n, err := s.file.Write(line)
	if err != nil {
		// Resync the counter with what actually reached the disk
		if fi, statErr := s.file.Stat(); statErr == nil {
			s.size = fi.Size()
		}
		return fmtErrorf("failed to write to log file '%s': %w", s.file.Name(), err)
	}
	s.size += int64(n)
	return nil
}

// Sync commits the active file to stable storage
func (s *FileSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", s.file.Name(), err)
	}
	return nil
}

// Close syncs and closes the active file. Later writes fail.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.file == nil {
		return nil
	}

	var finalErr error
	if err := s.file.Sync(); err != nil {
		finalErr = fmtErrorf("failed to sync log file '%s' during close: %w", s.file.Name(), err)
	}
	if err := s.file.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s': %w", s.file.Name(), err))
	}
	s.file = nil
	return finalErr
}

// Rotations returns the number of completed rotations
func (s *FileSink) Rotations() uint64 {
	return s.rotations.Load()
}

// Path returns the path of the active file
func (s *FileSink) Path() string {
	return filepath.Join(s.dir, s.name)
}

// openLogFile creates the directory if needed and opens the active file for appending
func (s *FileSink) openLogFile() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", s.dir, err)
	}

	fullPath := s.Path()
	file, err := os.OpenFile(fullPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open/create log file '%s': %w", fullPath, err)
	}

	var size int64
	if fi, err := file.Stat(); err == nil {
		size = fi.Size()
	}

	s.file = file
	s.size = size
	return nil
}

// rotateLogFile implements the rename-on-rotate strategy, caller holds mu
func (s *FileSink) rotateLogFile() error {
	err := s.file.Close()
	s.file = nil
	if err != nil {
		// Next write reopens the active file
		return fmtErrorf("failed to close log file before rotation: %w", err)
	}

	currentPath := s.Path()
	archivePath := filepath.Join(s.dir, s.archiveName(s.nextSeq))
	if err := os.Rename(currentPath, archivePath); err != nil {
		// Keep appending to the current file rather than losing output
		if openErr := s.openLogFile(); openErr != nil {
			return combineErrors(fmtErrorf("failed to rotate log file: %w", err), openErr)
		}
		return fmtErrorf("failed to rename log file from '%s' to '%s': %w", currentPath, archivePath, err)
	}
	s.nextSeq++

	if err := s.openLogFile(); err != nil {
		return fmtErrorf("failed to create new log file after rotation: %w", err)
	}
	s.size = 0
	s.rotations.Add(1)
	return nil
}

// archiveName builds the sortable archive file name for a sequence number
func (s *FileSink) archiveName(seq int) string {
	ext := filepath.Ext(s.name)
	stem := strings.TrimSuffix(s.name, ext)
	return fmt.Sprintf("%s.%0*d%s", stem, archiveSeqWidth, seq, ext)
}

// highestArchiveSeq scans the directory for existing archives of this file
func (s *FileSink) highestArchiveSeq() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmtErrorf("failed to read log directory '%s': %w", s.dir, err)
	}

	ext := filepath.Ext(s.name)
	prefix := strings.TrimSuffix(s.name, ext) + "."

	highest := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fname := entry.Name()
		if !strings.HasPrefix(fname, prefix) || !strings.HasSuffix(fname, ext) {
			continue
		}
		middle := strings.TrimSuffix(strings.TrimPrefix(fname, prefix), ext)
		seq, err := strconv.Atoi(middle)
		if err != nil || seq < 0 {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return highest, nil
}
