// Package mongodb is the MongoDB store backend.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	jobsCollection      = "jobs"
	subJobsCollection   = "subjobs"
	questionsCollection = "questions"
	usersCollection     = "users"

	defaultConnectTimeout = 10 * time.Second
)

// Connector lazily opens one process-wide client. The first call to
// Database connects; later calls reuse the handle. A failed attempt is not
// remembered, so the next call retries.
type Connector struct {
	uri      string
	database string

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

func NewConnector(uri, database string) *Connector {
	return &Connector{uri: uri, database: database}
}

// Database returns the connected database handle.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}
	if c.uri == "" {
		return nil, errors.New("mongo uri is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(c.database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}

	c.client = client
	c.db = db
	return db, nil
}

func (c *Connector) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Close disconnects the client if one was opened.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	return err
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(subJobsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "mainJobCategory", Value: 1}, {Key: "title", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(questionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "mainJobCategory", Value: 1}, {Key: "mainSubJobCategory", Value: 1}},
	})
	return err
}
