// Package upload stores uploaded product photos and hands back the
// reference under which they are served.
package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store persists uploaded files.
type Store interface {
	// Save writes the content under a fresh name that keeps the extension of
	// originalName and returns the public reference of the stored file.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)

	// Delete removes a file previously returned by Save. Unknown or foreign
	// references are ignored.
	Delete(ctx context.Context, ref string) error
}

// clock is swapped in tests.
var clock = time.Now

// NewName builds a collision resistant file name: the upload time in
// milliseconds, a random UUID, and the original extension.
func NewName(originalName string) string {
	return fmt.Sprintf("%d-%s%s", clock().UnixMilli(), uuid.NewString(), filepath.Ext(filepath.Base(originalName)))
}
