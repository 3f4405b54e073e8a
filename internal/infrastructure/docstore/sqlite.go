package docstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore keeps every document as a JSON blob in a single SQLite
// database:
//
//	documents(path, collection, data)  PRIMARY KEY (path)
//
// Write batches map onto SQL transactions, which is what makes them
// atomic.
type SqliteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		path TEXT NOT NULL PRIMARY KEY,
		collection TEXT NOT NULL,
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_documents_collection
		ON documents (collection)`); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error { return s.db.Close() }

func (s *SqliteStore) Get(ctx context.Context, path string) (map[string]any, error) {
	if _, _, err := SplitPath(path); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE path = ?", path,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc([]byte(raw))
}

func (s *SqliteStore) GetAll(ctx context.Context, collection string) ([]Doc, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, data FROM documents WHERE collection = ?", collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []Doc
	for rows.Next() {
		var path, raw string
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, err
		}
		_, id, err := SplitPath(path)
		if err != nil {
			return nil, err
		}
		data, err := decodeDoc([]byte(raw))
		if err != nil {
			return nil, err
		}
		docs = append(docs, Doc{ID: id, Data: data})
	}
	return docs, rows.Err()
}

func (s *SqliteStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Doc, error) {
	docs, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	result := docs[:0:0]
	for _, doc := range docs {
		if matches(doc.Data, filters) {
			result = append(result, doc)
		}
	}
	return result, nil
}

func (s *SqliteStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := validateCollection(collection); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.Set(ctx, collection+"/"+id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SqliteStore) Set(ctx context.Context, path string, data map[string]any) error {
	collection, _, err := SplitPath(path)
	if err != nil {
		return err
	}
	raw, err := encodeDoc(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (path, collection, data) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET data = excluded.data`,
		path, collection, string(raw),
	)
	return err
}

func (s *SqliteStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if _, _, err := SplitPath(path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := updateInTx(ctx, tx, path, fields); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SqliteStore) Delete(ctx context.Context, path string) error {
	if _, _, err := SplitPath(path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", path)
	return err
}

func (s *SqliteStore) Batch() WriteBatch {
	return &sqliteBatch{store: s}
}

func updateInTx(ctx context.Context, tx *sql.Tx, path string, fields map[string]any) error {
	var raw string
	err := tx.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE path = ?", path,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNoDocument
	}
	if err != nil {
		return err
	}
	doc, err := decodeDoc([]byte(raw))
	if err != nil {
		return err
	}
	merged, err := encodeDoc(mergeFields(doc, normalizeFields(fields)))
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE documents SET data = ? WHERE path = ?", string(merged), path)
	return err
}

type sqliteBatch struct {
	store *SqliteStore
	ops   []batchOp
}

func (b *sqliteBatch) Set(path string, data map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opSet, path: path, fields: data})
}

func (b *sqliteBatch) Update(path string, fields map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opUpdate, path: path, fields: fields})
}

func (b *sqliteBatch) Delete(path string) {
	b.ops = append(b.ops, batchOp{kind: opDelete, path: path})
}

func (b *sqliteBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, op := range b.ops {
		if err := applyOpInTx(ctx, tx, op); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func applyOpInTx(ctx context.Context, tx *sql.Tx, op batchOp) error {
	switch op.kind {
	case opSet:
		collection, _, err := SplitPath(op.path)
		if err != nil {
			return err
		}
		raw, err := encodeDoc(op.fields)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (path, collection, data) VALUES (?, ?, ?)
			 ON CONFLICT(path) DO UPDATE SET data = excluded.data`,
			op.path, collection, string(raw),
		)
		return err
	case opUpdate:
		if _, _, err := SplitPath(op.path); err != nil {
			return err
		}
		return updateInTx(ctx, tx, op.path, op.fields)
	case opDelete:
		if _, _, err := SplitPath(op.path); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", op.path)
		return err
	}
	return nil
}
