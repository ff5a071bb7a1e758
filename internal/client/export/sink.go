// Package export stores record spreadsheets downloaded from the API.
package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/followupdesk/internal/filex"
)

// Sink persists a named export and returns where it ended up.
type Sink interface {
	Write(ctx context.Context, name string, r io.Reader) (location string, err error)
}

// FileSink writes exports into a local directory, creating it on first use.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

func (s *FileSink) Write(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid export name %q", name)
	}

	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if _, err := filex.WriteAtomic(path, r); err != nil {
		return "", err
	}
	return path, nil
}
