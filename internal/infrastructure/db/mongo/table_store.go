package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// TableStore implements ports.TableStore with one collection per table and
// the record id as _id.
type TableStore struct {
	db *mongo.Database
}

func NewTableStore(db *mongo.Database) *TableStore {
	return &TableStore{db: db}
}

// Upsert replaces the document with _id == id, inserting it when missing.
func (t *TableStore) Upsert(ctx context.Context, table, id string, record any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := t.db.Collection(table).ReplaceOne(ctx, bson.M{"_id": id}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace %s/%s: %w", table, id, err)
	}
	return nil
}

func (t *TableStore) Find(ctx context.Context, table, id string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := t.db.Collection(table).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("find %s/%s: %w", table, id, err)
	}
	return nil
}
