package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gellies-store/internal/model"

	"github.com/rs/zerolog"
)

// localStore implements Store on the local file system.
type localStore struct {
	dir       string
	urlPrefix string
	logger    zerolog.Logger
}

// NewLocalStore creates a store writing into dir. References are returned as
// urlPrefix + "/" + name, matching the static file route.
func NewLocalStore(dir, urlPrefix string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	logger = logger.With().Str("component", "local-upload-store").Logger()
	logger.Info().Str("dir", dir).Str("url_prefix", urlPrefix).Msg("local upload store initialised")

	return &localStore{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		logger:    logger,
	}, nil
}

// Save writes r to a new file in the upload directory.
func (s *localStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := NewName(originalName)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Error().Err(err).Str("file", full).Msg("failed to create upload file")
		return "", model.WrapDomainError(model.ErrCodeStorage, "failed to store upload", err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		s.logger.Error().Err(err).Str("file", full).Msg("failed to write upload file")
		return "", model.WrapDomainError(model.ErrCodeStorage, "failed to store upload", err)
	}

	s.logger.Debug().
		Str("original_name", originalName).
		Str("file", name).
		Int64("bytes", written).
		Msg("upload stored")

	return s.urlPrefix + "/" + name, nil
}

// Delete removes the file behind ref.
func (s *localStore) Delete(ctx context.Context, ref string) error {
	name, ok := s.nameOf(ref)
	if !ok {
		s.logger.Debug().Str("ref", ref).Msg("ignoring reference outside upload store")
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error().Err(err).Str("file", name).Msg("failed to delete upload file")
		return model.WrapDomainError(model.ErrCodeStorage, "failed to delete upload", err)
	}

	return nil
}

// nameOf extracts the bare file name from a reference this store issued.
func (s *localStore) nameOf(ref string) (string, bool) {
	prefix := s.urlPrefix + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, prefix)
	if name == "" || name != path.Base(name) || name == "." || name == ".." {
		return "", false
	}
	return name, true
}
