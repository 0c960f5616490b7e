// Package storage keeps uploaded media behind a small key/value interface so
// the entity services never touch the filesystem or the object store directly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/config"
)

// PublicPrefix is the URL path under which stored media is served.
const PublicPrefix = "/uploads"

var (
	ErrInvalidKey     = errors.New("invalid media key")
	ErrObjectNotFound = errors.New("media object not found")
)

// MediaStore stores blobs by slash separated key.
type MediaStore interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. A missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by MEDIA_BACKEND (local or s3).
func New(ctx context.Context, c map[string]string) (MediaStore, error) {
	switch backend := strings.ToLower(config.GetString(c, "MEDIA_BACKEND", "local")); backend {
	case "local":
		return NewLocalStore(config.GetString(c, "MEDIA_ROOT", "uploads"))
	case "s3":
		return NewS3StoreFromConfig(ctx, c)
	default:
		return nil, fmt.Errorf("unsupported MEDIA_BACKEND %q", backend)
	}
}

var keyExtension = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// NewKey returns a fresh key under dir keeping the lower-cased extension of
// originalName. Extensions that are not plain alphanumerics are dropped so the
// key stays usable as a URL path.
func NewKey(dir, originalName string) string {
	ext := strings.ToLower(filepath.Ext(path.Base(strings.ReplaceAll(originalName, "\\", "/"))))
	if !keyExtension.MatchString(ext) {
		ext = ""
	}
	return path.Join(dir, uuid.NewString()+ext)
}

// CleanKey validates key and returns its canonical form. Keys are relative,
// slash separated and may not leave the store root.
func CleanKey(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}

// PublicPath maps a key to the path clients fetch it from.
func PublicPath(key string) string {
	return PublicPrefix + "/" + key
}

// KeyFromPath is the inverse of PublicPath.
func KeyFromPath(publicPath string) (string, error) {
	rest, ok := strings.CutPrefix(publicPath, PublicPrefix+"/")
	if !ok {
		return "", fmt.Errorf("%w: %q is outside %s", ErrInvalidKey, publicPath, PublicPrefix)
	}
	return CleanKey(rest)
}

// ContentType guesses the media type from the key's extension.
func ContentType(key string) string {
	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}
