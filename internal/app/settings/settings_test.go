package settings

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aihub/internal/app/errors"
	"aihub/internal/app/model"
)

func newMemoryStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	return store
}

func TestGetDefaultsToLocal(t *testing.T) {
	store := newMemoryStore(t)

	choice, err := store.Get(model.CapabilityEmbedding)
	require.NoError(t, err)
	assert.Equal(t, ChoiceLocal, choice)
}

func TestSetAndGetRoundTrip(t *testing.T) {
	store := newMemoryStore(t)

	require.NoError(t, store.Set(model.CapabilityTranscription, ChoiceCloud))

	choice, err := store.Get(model.CapabilityTranscription)
	require.NoError(t, err)
	assert.Equal(t, ChoiceCloud, choice)

	// Overwrite back to local.
	require.NoError(t, store.Set(model.CapabilityTranscription, ChoiceLocal))
	choice, err = store.Get(model.CapabilityTranscription)
	require.NoError(t, err)
	assert.Equal(t, ChoiceLocal, choice)

	// Other capabilities are untouched.
	choice, err = store.Get(model.CapabilityVision)
	require.NoError(t, err)
	assert.Equal(t, ChoiceLocal, choice)
}

func TestSetRejectsInvalidValues(t *testing.T) {
	store := newMemoryStore(t)

	err := store.Set(model.CapabilityEmbedding, Choice("hybrid"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidChoice))

	err = store.Set(model.Capability("telepathy"), ChoiceLocal)
	assert.Error(t, err)
}

func TestGetQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewSQLiteStore(db)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT choice").WillReturnError(fmt.Errorf("database is locked"))

	_, err = store.Get(model.CapabilityEmbedding)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRejectsCorruptStoredChoice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewSQLiteStore(db)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"choice"}).AddRow("hybrid")
	mock.ExpectQuery("SELECT choice").WillReturnRows(rows)

	_, err = store.Get(model.CapabilityEmbedding)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidChoice))
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	path := t.TempDir() + "/settings.db"

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(model.CapabilityGeneration, ChoiceCloud))
	choice, err := store.Get(model.CapabilityGeneration)
	require.NoError(t, err)
	assert.Equal(t, ChoiceCloud, choice)
}
