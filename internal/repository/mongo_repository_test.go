package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
)

type fakeCollection struct {
	name string
	docs []interface{}
	err  error
}

func (c *fakeCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.docs = append(c.docs, document)
	return &mongo.InsertOneResult{InsertedID: len(c.docs)}, nil
}

func newFakeMongo(err error) (*mongoRepository, map[string]*fakeCollection) {
	colls := map[string]*fakeCollection{}
	repo := &mongoRepository{collection: func(name string) inserter {
		c, ok := colls[name]
		if !ok {
			c = &fakeCollection{name: name, err: err}
			colls[name] = c
		}
		return c
	}}
	return repo, colls
}

func TestMongoRepository_Append(t *testing.T) {
	repo, colls := newFakeMongo(nil)

	rec := model.UploadRecord{Name: "notes.pdf", Path: "uploads/uid/abc_notes.pdf", Size: 42, CreatedAt: fixedTime}
	require.NoError(t, repo.Append(context.Background(), "uid", model.CollectionUploads, rec))

	require.Contains(t, colls, model.CollectionUploads)
	require.Len(t, colls[model.CollectionUploads].docs, 1)

	doc := colls[model.CollectionUploads].docs[0].(bson.M)
	assert.Equal(t, "uid", doc["userId"])
	assert.Equal(t, "notes.pdf", doc["name"])
	assert.EqualValues(t, 42, doc["size"])
}

func TestMongoRepository_InsertFailure(t *testing.T) {
	repo, _ := newFakeMongo(errors.New("server selection timeout"))

	err := repo.Append(context.Background(), "uid", model.CollectionChats, model.ChatLogEntry{Question: "q"})

	assert.ErrorIs(t, err, app_errors.ErrPersistence)
	assert.NoError(t, repo.Close())
}

func TestExtractDBName(t *testing.T) {
	assert.Equal(t, "lms_prod", extractDBName("mongodb://localhost:27017/lms_prod"))
	assert.Equal(t, defaultMongoDatabase, extractDBName("mongodb://localhost:27017"))
	assert.Equal(t, defaultMongoDatabase, extractDBName("mongodb://localhost:27017/"))
	assert.Equal(t, defaultMongoDatabase, extractDBName("://bad"))
}
