package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"llm-lms/backend/internal/database"
	"llm-lms/backend/internal/model"
)

type sqliteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) DocumentStore {
	return &sqliteRepository{db: db, now: time.Now}
}

// OpenSQLite opens (and migrates) the database file at path.
func OpenSQLite(path string) (DocumentStore, error) {
	db, err := database.InitDB(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteRepository(db), nil
}

func (r *sqliteRepository) Append(ctx context.Context, userID model.UserIdentity, collection string, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return persistenceError("could not encode record", err)
	}

	query := "INSERT INTO documents (user_id, collection, payload, created_at) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, query, string(userID), collection, string(payload), r.now().UTC()); err != nil {
		return persistenceError("could not insert document", err)
	}
	return nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
