package parser

import (
	"fmt"
	"io"
	"os"
)

// spooled is an upload copied to disk for libraries that need random access.
type spooled struct {
	*os.File
	Size int64
}

// spool copies r into a temp file named after pattern. Close removes it.
func spool(r io.Reader, pattern string) (*spooled, error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	size, err := io.Copy(tmp, r)
	if err == nil {
		_, err = tmp.Seek(0, io.SeekStart)
	}
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	return &spooled{File: tmp, Size: size}, nil
}

func (s *spooled) Close() error {
	err := s.File.Close()
	os.Remove(s.Name())
	return err
}
