package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

const testID = "3f1c9a52-6a3b-4c55-9b7e-1a2b3c4d5e6f"

var testNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Store) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	store := New(db)
	store.now = func() time.Time { return testNow }
	return db, mock, store
}

func propertyColumns() []string {
	return []string{"id", "fields", "created_at", "updated_at"}
}

func TestOpen_RequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Migrate(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS properties`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Migrate_Error(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("permission denied"))

	err := store.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply schema")
}

func TestStore_Add(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO properties`).
		WithArgs(sqlmock.AnyArg(), "Kothi", "Sector 1", sqlmock.AnyArg(), testNow, testNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := store.Add(context.Background(), domain.Property{
		Base:    domain.Base{SectorPhase: "Sector 1"},
		Details: domain.KothiDetails{KothiNumber: "123"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Add_Error(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO properties`).WillReturnError(errors.New("connection refused"))

	_, err := store.Add(context.Background(), domain.Property{Details: domain.PlotDetails{}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStore_Get(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(propertyColumns()).
		AddRow(testID, []byte(`{"propertyType":"Flat","project":"Skyline","bhk":"2BHK","sectorPhase":"Sector 2"}`), testNow, testNow)
	mock.ExpectQuery(`SELECT id, fields, created_at, updated_at FROM properties WHERE id = \$1`).
		WithArgs(testID).
		WillReturnRows(rows)

	p, err := store.Get(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, testID, p.ID)
	assert.Equal(t, domain.FlatDetails{Project: "Skyline", BHK: "2BHK"}, p.Details)
	assert.Equal(t, "Sector 2", p.Base.SectorPhase)
	assert.Equal(t, testNow, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, fields`).
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows(propertyColumns()))

	_, err := store.Get(context.Background(), testID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(propertyColumns()).
		AddRow(testID, []byte(`{"propertyType":"Plot","plotNumber":"P1"}`), testNow, testNow).
		AddRow("6e2a0c1d-0000-4000-8000-000000000001", []byte(`{"propertyType":"Kothi"}`), testNow.Add(-time.Hour), testNow)
	mock.ExpectQuery(`ORDER BY created_at DESC, seq DESC`).WillReturnRows(rows)

	list, err := store.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.PlotDetails{PlotNumber: "P1"}, list[0].Details)
	assert.Equal(t, domain.PropertyTypeKothi, list[1].Type())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_BadRow(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(propertyColumns()).
		AddRow(testID, []byte(`{"propertyType":"Villa"}`), testNow, testNow)
	mock.ExpectQuery(`SELECT id, fields`).WillReturnRows(rows)

	_, err := store.List(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Update(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	created := testNow.Add(-24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows(propertyColumns()).
			AddRow(testID, []byte(`{"propertyType":"Kothi","kothiNumber":"7","sectorPhase":"Sector 1"}`), created, created))
	mock.ExpectExec(`UPDATE properties`).
		WithArgs("Kothi", "Sector 4", sqlmock.AnyArg(), testNow, testID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Update(context.Background(), testID, domain.PropertyPatch{Fields: map[domain.FieldKey]string{
		domain.FieldSectorPhase: "Sector 4",
	}})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(testID).WillReturnRows(sqlmock.NewRows(propertyColumns()))
	mock.ExpectRollback()

	err := store.Update(context.Background(), testID, domain.PropertyPatch{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_InvalidPatchRollsBack(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows(propertyColumns()).
			AddRow(testID, []byte(`{"propertyType":"Kothi"}`), testNow, testNow))
	mock.ExpectRollback()

	err := store.Update(context.Background(), testID, domain.PropertyPatch{Fields: map[domain.FieldKey]string{
		domain.FieldPropertyType: "Villa",
	}})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM properties WHERE id = \$1`).
		WithArgs(testID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM properties`).
		WithArgs(testID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), testID))
	assert.ErrorIs(t, store.Delete(context.Background(), testID), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
