package repository

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"llm-lms/backend/internal/model"
)

const defaultMongoDatabase = "llm_lms"

// inserter is the slice of *mongo.Collection the repository needs.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type mongoRepository struct {
	client     *mongo.Client
	collection func(name string) inserter
}

func NewMongoRepository(db *mongo.Database) DocumentStore {
	return &mongoRepository{
		client:     db.Client(),
		collection: func(name string) inserter { return db.Collection(name) },
	}
}

// extractDBName parses the database name from the URI.
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:]
	}
	return defaultMongoDatabase
}

// ConnectMongo establishes a connection using uri and pings the deployment.
func ConnectMongo(ctx context.Context, uri string) (DocumentStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbName := extractDBName(uri)
	slog.Info("Using MongoDB database", "database", dbName)
	return NewMongoRepository(client.Database(dbName)), nil
}

// Append stores the record fields flattened into one document tagged with userId.
func (r *mongoRepository) Append(ctx context.Context, userID model.UserIdentity, collection string, record any) error {
	doc, err := toDocument(record)
	if err != nil {
		return persistenceError("could not encode record", err)
	}
	doc["userId"] = string(userID)

	if _, err := r.collection(collection).InsertOne(ctx, doc); err != nil {
		return persistenceError("could not insert document", err)
	}
	return nil
}

func toDocument(record any) (bson.M, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *mongoRepository) Close() error {
	if r.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
