// Package storage is where finished CSV exports are written: a local
// directory or an S3 bucket.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type PutInput struct {
	Filename    string
	ContentType string
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// objectKey prefixes a cleaned file name with a fresh uuid so two exports
// with the same name never collide.
func objectKey(filename string) string {
	name := strings.ToLower(filepath.Base(strings.TrimSpace(filename)))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" || name == "." || name == "-" {
		name = "export.csv"
	}
	return uuid.NewString() + "-" + name
}
