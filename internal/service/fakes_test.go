package service

import (
	"context"
	"sync"
	"time"

	"llm-lms/backend/internal/model"
)

var fixedNow = time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)

type appended struct {
	uid        model.UserIdentity
	collection string
	record     any
	ctxErr     error
}

// fakeStore is an in-memory repository.DocumentStore.
type fakeStore struct {
	mu        sync.Mutex
	records   []appended
	err       error
	panicWith any
}

func (f *fakeStore) Append(ctx context.Context, uid model.UserIdentity, collection string, record any) error {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, appended{uid: uid, collection: collection, record: record, ctxErr: ctx.Err()})
	return f.err
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) all() []appended {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]appended(nil), f.records...)
}

// fakeBlobs is an in-memory blobstore.Store.
type fakeBlobs struct {
	objects     map[string][]byte
	contentType map[string]string
	signedTTL   time.Duration
	putErr      error
	signErr     error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (f *fakeBlobs) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[key] = data
	f.contentType[key] = contentType
	return key, nil
}

func (f *fakeBlobs) SignURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signedTTL = ttl
	return "https://blobs.example.com/" + key + "?sig=abc", nil
}

func (f *fakeBlobs) Close() error { return nil }
