// Package storage wraps the S3-compatible object storage backend. The core
// only depends on three capabilities: a time-limited signed PUT URL, a
// time-limited signed GET URL, and delete by key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Gateway interface {
	// PresignUpload returns a URL authorizing a direct PUT of the given key,
	// valid for the given window.
	PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PresignDownload returns a URL authorizing a GET of the given key.
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
	// DeleteObject removes the object. Callers treat failures as best-effort.
	DeleteObject(ctx context.Context, key string) error
}

var ErrNotConfigured = errors.New("object storage is not configured")

var gateway Gateway

// SetGateway installs the active gateway. Tests swap in a fake here.
func SetGateway(g Gateway) {
	gateway = g
}

func GetGateway() (Gateway, error) {
	if gateway == nil {
		return nil, ErrNotConfigured
	}
	return gateway, nil
}

// BuildStorageKey derives the object key for a new upload. The public token
// is globally unique, so keys are collision-free by construction; the date
// prefix keeps buckets browsable.
func BuildStorageKey(now time.Time, token string, filename string) string {
	return fmt.Sprintf("uploads/%s/%s-%s", now.UTC().Format("2006-01-02"), token, filename)
}
