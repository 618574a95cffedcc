package persistence

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"

	"card_tracker/internal/domain"
	"card_tracker/pkg/errcodes"
)

// PostgresStore хранит каждую коллекцию одной строкой JSONB в таблице documents.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		db:  db,
		now: time.Now,
	}
}

// withTx выполняет функцию в транзакции.
func (s *PostgresStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.StoreUnavailable,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to commit")
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, collection string) (Documents, error) {
	query := `
		SELECT collection, body, updated_at
		FROM documents
		WHERE collection = $1`

	var rows []documentSchema
	if err := s.db.SelectContext(ctx, &rows, query, collection); err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to read collection")
	}

	if len(rows) == 0 {
		return Documents{}, nil
	}

	docs, err := rows[0].toDocuments()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.StoreCorrupted, "failed to decode collection")
	}

	return docs, nil
}

func (s *PostgresStore) Put(ctx context.Context, collection string, docs Documents) error {
	schema, err := newDocumentSchema(collection, docs, s.now())
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to encode collection")
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		return s.upsertTx(ctx, tx, schema)
	})
}

// Update блокирует строки коллекций через SELECT ... FOR UPDATE, поэтому
// конкурентные Update по тем же коллекциям выполняются по очереди.
func (s *PostgresStore) Update(ctx context.Context, collections []string, fn func(map[string]Documents) error) error {
	if len(collections) == 0 {
		return fn(map[string]Documents{})
	}

	// одинаковый порядок блокировок для всех транзакций
	collections = slices.Sorted(slices.Values(collections))

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, c := range collections {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO documents (collection, body, updated_at)
				VALUES ($1, '{}'::jsonb, now())
				ON CONFLICT (collection) DO NOTHING`, c); err != nil {
				return domain.WrapError(err, errcodes.StoreUnavailable, "failed to init collection")
			}
		}

		query, args, err := sqlx.In(`
			SELECT collection, body, updated_at
			FROM documents
			WHERE collection IN (?)
			ORDER BY collection
			FOR UPDATE`, collections)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
		}

		var rows []documentSchema
		if err = tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
			return domain.WrapError(err, errcodes.StoreUnavailable, "failed to lock collections")
		}

		working := make(map[string]Documents, len(collections))
		for _, c := range collections {
			working[c] = Documents{}
		}

		for _, row := range rows {
			docs, err := row.toDocuments()
			if err != nil {
				return domain.WrapError(err, errcodes.StoreCorrupted, "failed to decode collection")
			}

			working[row.Collection] = docs
		}

		if err = fn(working); err != nil {
			return err
		}

		now := s.now()

		for _, c := range collections {
			schema, err := newDocumentSchema(c, working[c], now)
			if err != nil {
				return domain.WrapError(err, errcodes.InternalServerError, "failed to encode collection")
			}

			if err = s.upsertTx(ctx, tx, schema); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *PostgresStore) upsertTx(ctx context.Context, tx *sqlx.Tx, schema documentSchema) error {
	query := `
		INSERT INTO documents (collection, body, updated_at)
		VALUES (:collection, :body, :updated_at)
		ON CONFLICT (collection) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`

	if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to write collection")
	}

	return nil
}
