package mongo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

// ObjectStorage implements ports.ObjectStorage on GridFS. Each storage bucket
// is a GridFS bucket of the same name and the object path is the filename.
// Objects are served publicly under <publicBaseURL>/storage/<bucket>/<path>.
type ObjectStorage struct {
	db            *mongo.Database
	publicBaseURL string
	cacheControl  string
}

func NewObjectStorage(db *mongo.Database, publicBaseURL, cacheControl string) *ObjectStorage {
	return &ObjectStorage{db: db, publicBaseURL: publicBaseURL, cacheControl: cacheControl}
}

type objectMetadata struct {
	ContentType  string `bson:"content_type"`
	CacheControl string `bson:"cache_control,omitempty"`
}

// Upload writes a new revision of path. With overwrite, older revisions are
// removed once the new one is stored, so readers never see the path empty.
func (s *ObjectStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string, overwrite bool) error {
	b, err := s.bucket(bucket)
	if err != nil {
		return err
	}
	b.SetWriteDeadline(deadline(ctx))

	previous, err := s.revisions(ctx, bucket, path)
	if err != nil {
		return err
	}
	if len(previous) > 0 && !overwrite {
		return domain.ErrObjectExists
	}

	opts := options.GridFSUpload().SetMetadata(objectMetadata{
		ContentType:  contentType,
		CacheControl: s.cacheControl,
	})
	if _, err := b.UploadFromStream(path, bytes.NewReader(data), opts); err != nil {
		return fmt.Errorf("gridfs upload %s/%s: %w", bucket, path, err)
	}

	for _, id := range previous {
		if err := b.Delete(id); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("gridfs delete old revision %s/%s: %w", bucket, path, err)
		}
	}
	return nil
}

func (s *ObjectStorage) PublicURL(bucket, path string) (string, error) {
	return url.JoinPath(s.publicBaseURL, "storage", bucket, path)
}

// Download returns the latest revision of path.
func (s *ObjectStorage) Download(ctx context.Context, bucket, path string) (*ports.Object, error) {
	b, err := s.bucket(bucket)
	if err != nil {
		return nil, err
	}
	b.SetReadDeadline(deadline(ctx))

	stream, err := b.OpenDownloadStreamByName(path)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("gridfs open %s/%s: %w", bucket, path, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("gridfs read %s/%s: %w", bucket, path, err)
	}

	obj := &ports.Object{Data: data, ContentType: "application/octet-stream"}
	var meta objectMetadata
	if raw := stream.GetFile().Metadata; len(raw) > 0 {
		if err := bson.Unmarshal(raw, &meta); err == nil {
			if meta.ContentType != "" {
				obj.ContentType = meta.ContentType
			}
			obj.CacheControl = meta.CacheControl
		}
	}
	return obj, nil
}

func (s *ObjectStorage) bucket(name string) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket %s: %w", name, err)
	}
	return b, nil
}

// revisions lists the file ids currently stored under path.
func (s *ObjectStorage) revisions(ctx context.Context, bucket, path string) ([]any, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(bucket+".files").Find(ctx,
		bson.M{"filename": path},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("list revisions %s/%s: %w", bucket, path, err)
	}

	var docs []struct {
		ID any `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list revisions %s/%s: %w", bucket, path, err)
	}

	ids := make([]any, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(defaultTimeout)
}
