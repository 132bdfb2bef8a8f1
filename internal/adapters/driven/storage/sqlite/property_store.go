package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/propdesk/internal/core/domain"
	"github.com/custodia-labs/propdesk/internal/core/ports/driven"
)

// propertyStore implements driven.PropertyStore.
type propertyStore struct {
	store *Store
}

var _ driven.PropertyStore = (*propertyStore)(nil)

const selectProperty = `SELECT id, fields, created_at, updated_at FROM properties`

// Add stores a new record and returns its ID.
func (s *propertyStore) Add(ctx context.Context, property domain.Property) (string, error) {
	fields := property.Fields()
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshalling fields: %w", err)
	}

	id := uuid.New().String()
	now := s.store.now().UnixNano()

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO properties (id, property_type, sector_phase, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, property.Type().String(), property.Base.SectorPhase, string(fieldsJSON), now, now)
	if err != nil {
		return "", fmt.Errorf("inserting property: %w", err)
	}
	return id, nil
}

// Get retrieves a record by ID.
func (s *propertyStore) Get(ctx context.Context, id string) (*domain.Property, error) {
	row := s.store.db.QueryRowContext(ctx, selectProperty+` WHERE id = ?`, id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting property: %w", err)
	}
	return p, nil
}

// List returns all records, newest first.
func (s *propertyStore) List(ctx context.Context) ([]domain.Property, error) {
	rows, err := s.store.db.QueryContext(ctx, selectProperty+` ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	var result []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// Update applies a partial update inside a transaction.
func (s *propertyStore) Update(ctx context.Context, id string, patch domain.PropertyPatch) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	current, err := scanProperty(tx.QueryRowContext(ctx, selectProperty+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("getting property: %w", err)
	}

	next, err := patch.Apply(*current)
	if err != nil {
		return err
	}
	fieldsJSON, err := json.Marshal(next.Fields())
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE properties
		SET property_type = ?, sector_phase = ?, fields = ?, updated_at = ?
		WHERE id = ?
	`, next.Type().String(), next.Base.SectorPhase, string(fieldsJSON), s.store.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}
	return tx.Commit()
}

// Delete removes a record.
func (s *propertyStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
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
		fieldsJSON string
		created    int64
		updated    int64
	)
	if err := row.Scan(&id, &fieldsJSON, &created, &updated); err != nil {
		return nil, err
	}

	var fields domain.Fields
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, fmt.Errorf("unmarshalling fields: %w", err)
	}
	p, err := domain.NewPropertyFromFields(fields)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", id, err)
	}
	p.ID = id
	p.CreatedAt = time.Unix(0, created)
	p.UpdatedAt = time.Unix(0, updated)
	return &p, nil
}
