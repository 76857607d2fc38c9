package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrReadOnly is returned when saving to embedded assets.
var ErrReadOnly = errors.New("embedded assets are read-only")

// Embedded serves assets compiled into the binary under a URL prefix.
type Embedded struct {
	prefix string
}

func NewEmbedded(prefix string) *Embedded {
	return &Embedded{prefix: strings.TrimSuffix(prefix, "/")}
}

func (e *Embedded) Save(context.Context, string, io.Reader, string) error {
	return ErrReadOnly
}

func (e *Embedded) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return e.prefix + "/" + strings.TrimPrefix(path, "/")
}
