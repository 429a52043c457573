package ports

import (
	"context"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// SessionProvider exposes the authenticated session of the caller, if any.
type SessionProvider interface {
	CurrentSession(ctx context.Context) (*domain.Session, bool)
}

// Object is a stored blob.
type Object struct {
	Data         []byte
	ContentType  string
	CacheControl string
}

// ObjectStorage stores blobs under bucket/path keys.
type ObjectStorage interface {
	// Upload stores data at path. When overwrite is false and the path is
	// taken, it fails with domain.ErrObjectExists.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string, overwrite bool) error
	PublicURL(bucket, path string) (string, error)
	Download(ctx context.Context, bucket, path string) (*Object, error)
}

// TableStore writes whole records keyed by id.
type TableStore interface {
	Upsert(ctx context.Context, table, id string, record any) error
	// Find decodes the record stored under id into out. It returns
	// domain.ErrProfileNotFound when there is none.
	Find(ctx context.Context, table, id string, out any) error
}
