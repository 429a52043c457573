package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

type stubSessions struct {
	session *domain.Session
}

func (s stubSessions) CurrentSession(context.Context) (*domain.Session, bool) {
	return s.session, s.session != nil
}

type uploadCall struct {
	Bucket, Path, ContentType string
	Overwrite                 bool
	Size                      int
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string]ports.Object
	uploads []uploadCall
	err     error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string]ports.Object)}
}

func (m *memStorage) Upload(_ context.Context, bucket, path string, data []byte, contentType string, overwrite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, uploadCall{Bucket: bucket, Path: path, ContentType: contentType, Overwrite: overwrite, Size: len(data)})
	if m.err != nil {
		return m.err
	}
	key := bucket + "/" + path
	if _, ok := m.objects[key]; ok && !overwrite {
		return domain.ErrObjectExists
	}
	m.objects[key] = ports.Object{Data: data, ContentType: contentType}
	return nil
}

func (m *memStorage) PublicURL(bucket, path string) (string, error) {
	return fmt.Sprintf("https://cdn.test/storage/%s/%s", bucket, path), nil
}

func (m *memStorage) Download(_ context.Context, bucket, path string) (*ports.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[bucket+"/"+path]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return &obj, nil
}

type memTables struct {
	mu     sync.Mutex
	rows   map[string]map[string][]byte
	writes []string
	// failOn makes Upsert fail for the named table.
	failOn string
}

func newMemTables() *memTables {
	return &memTables{rows: make(map[string]map[string][]byte)}
}

func (m *memTables) Upsert(_ context.Context, table, id string, record any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, table)
	if table == m.failOn {
		return errors.New("connection reset")
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if m.rows[table] == nil {
		m.rows[table] = make(map[string][]byte)
	}
	m.rows[table][id] = raw
	return nil
}

func (m *memTables) Find(_ context.Context, table, id string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.rows[table][id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	return json.Unmarshal(raw, out)
}

// row decodes the stored row into a generic map.
func (m *memTables) row(table, id string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.rows[table][id]
	if !ok {
		return nil
	}
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return out
}

type stubEncoder struct {
	err error
}

func (e stubEncoder) Encode(pic domain.Picture) ([]byte, string, string, error) {
	if e.err != nil {
		return nil, "", "", e.err
	}
	return append([]byte("jpeg:"), pic.Data...), "image/jpeg", "jpg", nil
}
