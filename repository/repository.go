package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CedricFinance/thought_catcher/model"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

const createThoughtsTable = `CREATE TABLE IF NOT EXISTS Thoughts (
  id CHAR(36) NOT NULL PRIMARY KEY,
  name TEXT NOT NULL,
  tags JSON NULL,
  status VARCHAR(255) NULL,
  due_date VARCHAR(19) NULL,
  created_at DATETIME NOT NULL
)`

type Repository struct {
	db *sql.DB
}

type duplicateEntry struct {
}

func (e duplicateEntry) Error() string {
	return "duplicate entry"
}

var DuplicateEntry = duplicateEntry{}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Open connects to the MySQL database described by dsn.
func Open(dsn string) (*Repository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return New(db), nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createThoughtsTable); err != nil {
		return fmt.Errorf("failed to create Thoughts table: %w", err)
	}
	return nil
}

func (r *Repository) SaveThought(ctx context.Context, record *model.ThoughtRecord) error {
	var tags []byte
	if len(record.Thought.Tags) > 0 {
		var err error
		tags, err = json.Marshal(record.Thought.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
	}

	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO Thoughts(id, name, tags, status, due_date, created_at) VALUES(?,?,?,?,?,?)",
		record.Id,
		record.Thought.Name,
		nullableBytes(tags),
		nullableString(record.Thought.Status),
		nullableString(record.Thought.DueDate),
		record.CreatedAt,
	)

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return DuplicateEntry
	}

	return err
}

// CreateThought stores thought under a fresh id.
func (r *Repository) CreateThought(ctx context.Context, thought model.Thought) error {
	return r.SaveThought(ctx, NewThoughtRecord(thought))
}

func NewThoughtRecord(thought model.Thought) *model.ThoughtRecord {
	return &model.ThoughtRecord{
		Id:        uuid.New().String(),
		Thought:   thought,
		CreatedAt: time.Now().UTC(),
	}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
