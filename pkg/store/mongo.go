// Package store persists computed layouts.
//
// The MongoDB-backed LayoutStore keys documents by gallery content hash,
// so re-saving a layout for the same gallery replaces the previous one.
// The store is optional: CLI runs work entirely from the cache, while
// server deployments use the store for durable layout retrieval.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fernvale/mosaic/pkg/cache"
	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/gallery"
)

// Config holds connection settings for the layout store.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

func (c *Config) withDefaults() {
	if c.Database == "" {
		c.Database = "mosaic"
	}
	if c.Collection == "" {
		c.Collection = "layouts"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// layoutRecord is the stored document shape.
type layoutRecord struct {
	GalleryHash string         `bson:"gallery_hash"`
	UpdatedAt   time.Time      `bson:"updated_at"`
	Layout      gallery.Layout `bson:"layout"`
}

// LayoutStore persists layouts in a MongoDB collection.
type LayoutStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect establishes a connection and verifies it with a ping.
// Transient ping failures are retried with backoff before giving up.
func Connect(ctx context.Context, cfg Config) (*LayoutStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "store URI is required")
	}
	cfg.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect %s", cfg.URI)
	}

	if err := cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping %s", cfg.URI)
	}

	s := &LayoutStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *LayoutStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gallery_hash", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create index")
	}
	return nil
}

// Save upserts the layout keyed by its gallery hash.
func (s *LayoutStore) Save(ctx context.Context, l gallery.Layout) error {
	if l.GalleryHash == "" {
		return errors.New(errors.ErrCodeInvalidLayout, "layout has no gallery hash")
	}

	record := layoutRecord{
		GalleryHash: l.GalleryHash,
		UpdatedAt:   time.Now().UTC(),
		Layout:      l,
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"gallery_hash": l.GalleryHash},
		record,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save layout %s", l.GalleryHash)
	}
	return nil
}

// Load fetches the layout for a gallery hash.
func (s *LayoutStore) Load(ctx context.Context, galleryHash string) (gallery.Layout, error) {
	var record layoutRecord
	err := s.coll.FindOne(ctx, bson.M{"gallery_hash": galleryHash}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return gallery.Layout{}, errors.New(errors.ErrCodeLayoutNotFound, "no layout for gallery %s", galleryHash)
	}
	if err != nil {
		return gallery.Layout{}, errors.Wrap(errors.ErrCodeStorage, err, "load layout %s", galleryHash)
	}
	return record.Layout, nil
}

// Delete removes the layout for a gallery hash. Deleting a missing
// layout is not an error.
func (s *LayoutStore) Delete(ctx context.Context, galleryHash string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"gallery_hash": galleryHash})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete layout %s", galleryHash)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *LayoutStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
