package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultBatchSize = 500

var ErrEmptyCollection = errors.New("collection has no documents")

const createSchemaQuery = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT    NOT NULL,
		doc_id     TEXT    NOT NULL,
		position   INTEGER NOT NULL,
		body       JSONB   NOT NULL,
		PRIMARY KEY (collection, doc_id)
	);
	CREATE INDEX IF NOT EXISTS documents_collection_position_idx ON documents (collection, position)`

// PostgresRepository keeps each export hit as one JSONB row.
type PostgresRepository struct {
	pool      *pgxpool.Pool
	batchSize int
}

func NewPostgresRepository(ctx context.Context, dsn string, batchSize int) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &PostgresRepository{pool: pool, batchSize: batchSize}, nil
}

func (r *PostgresRepository) Close() {
	if r == nil || r.pool == nil {
		return
	}
	r.pool.Close()
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createSchemaQuery); err != nil {
		return fmt.Errorf("create documents schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Load(ctx context.Context, collection document.Collection) ([]document.Document, error) {
	const query = `
		SELECT body
		FROM documents
		WHERE collection = $1
		ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, collection.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s document: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []document.Document{}
	}
	return docs, nil
}

// Check fails unless every collection has been imported.
func (r *PostgresRepository) Check(ctx context.Context) error {
	const query = `SELECT EXISTS (SELECT 1 FROM documents WHERE collection = $1)`
	var errs []error
	for _, collection := range document.Collections() {
		var exists bool
		if err := r.pool.QueryRow(ctx, query, collection.String()).Scan(&exists); err != nil {
			return fmt.Errorf("check %s collection: %w", collection, err)
		}
		if !exists {
			errs = append(errs, fmt.Errorf("%s collection: %w", collection, ErrEmptyCollection))
		}
	}
	return errors.Join(errs...)
}

// Import replaces a collection with docs in a single transaction, copying rows in
// batches. Positions follow the order of docs.
func (r *PostgresRepository) Import(ctx context.Context, collection document.Collection, docs []document.Document) (int, error) {
	imported := 0
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE collection = $1`, collection.String()); err != nil {
			return fmt.Errorf("clear %s collection: %w", collection, err)
		}
		for n, batch := range batches(docs, r.batchSize) {
			offset := n * r.batchSize
			rows := make([][]interface{}, 0, len(batch))
			for i, doc := range batch {
				id := doc.ID()
				if id == "" {
					return fmt.Errorf("%s document at position %d has no _id", collection, offset+i)
				}
				body, err := json.Marshal(doc)
				if err != nil {
					return err
				}
				rows = append(rows, []interface{}{collection.String(), id, offset + i, body})
			}
			copied, err := tx.CopyFrom(
				ctx,
				pgx.Identifier{"documents"},
				[]string{"collection", "doc_id", "position", "body"},
				pgx.CopyFromRows(rows),
			)
			if err != nil {
				return fmt.Errorf("copy %s batch at %d: %w", collection, offset, err)
			}
			imported += int(copied)
		}
		return nil
	})
	return imported, err
}

func (r *PostgresRepository) withTx(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// batches splits items into consecutive slices of at most size.
func batches[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		out = append(out, items[start:min(start+size, len(items))])
	}
	return out
}

func decodeDocument(data []byte) (document.Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc document.Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
