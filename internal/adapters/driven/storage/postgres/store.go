package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.PropertyStore = (*Store)(nil)

const driverName = "pgx"

//go:embed schema.sql
var schema string

const selectProperty = `SELECT id, fields, created_at, updated_at FROM properties`

// Store is a PostgreSQL-backed property store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to dsn, verifies the connection and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres DSN is required", domain.ErrInvalidInput)
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection pool. The schema is not touched.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates the properties table and indexes if missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores a new record and returns its ID.
func (s *Store) Add(ctx context.Context, property domain.Property) (string, error) {
	fieldsJSON, err := json.Marshal(property.Fields())
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}

	id := uuid.New().String()
	now := s.now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO properties (id, property_type, sector_phase, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, property.Type().String(), property.Base.SectorPhase, string(fieldsJSON), now, now)
	if err != nil {
		return "", fmt.Errorf("insert property: %w", err)
	}
	return id, nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := scanProperty(s.db.QueryRowContext(ctx, selectProperty+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

// List returns all records, newest first.
func (s *Store) List(ctx context.Context) ([]domain.Property, error) {
	rows, err := s.db.QueryContext(ctx, selectProperty+` ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var result []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return result, nil
}

// Update applies a partial update with the row locked.
func (s *Store) Update(ctx context.Context, id string, patch domain.PropertyPatch) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	current, err := scanProperty(tx.QueryRowContext(ctx, selectProperty+` WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get property: %w", err)
	}

	next, err := patch.Apply(*current)
	if err != nil {
		return err
	}
	fieldsJSON, err := json.Marshal(next.Fields())
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE properties
		SET property_type = $1, sector_phase = $2, fields = $3, updated_at = $4
		WHERE id = $5`,
		next.Type().String(), next.Base.SectorPhase, string(fieldsJSON), s.now().UTC(), id); err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(row scanner) (*domain.Property, error) {
	var (
		id         string
		fieldsJSON []byte
		created    time.Time
		updated    time.Time
	)
	if err := row.Scan(&id, &fieldsJSON, &created, &updated); err != nil {
		return nil, err
	}

	var fields domain.Fields
	if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	p, err := domain.NewPropertyFromFields(fields)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", id, err)
	}
	p.ID = id
	p.CreatedAt = created
	p.UpdatedAt = updated
	return &p, nil
}
