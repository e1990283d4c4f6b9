package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/httperr"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

// A checagem de conflito seleciona as linhas sobrepostas com lock e conta em
// memória: o Postgres rejeita FOR UPDATE combinado com count(*).
const conflictQuery = `SELECT id FROM "appointments" WHERE professional_id = \$1 AND date = \$2 AND status != 'canceled' AND start_min < \$3 AND start_min \+ duration_min > \$4 FOR UPDATE`

func TestAssertNoConflictFreeSlot(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(conflictQuery).
		WithArgs(10, "2025-06-10", 570, 540).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := assertNoConflict(gdb, 10, "2025-06-10", 540, 30, 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssertNoConflictBusySlot(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(conflictQuery).
		WithArgs(10, "2025-06-10", 570, 540).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err := assertNoConflict(gdb, 10, "2025-06-10", 540, 30, 0)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssertNoConflictSkipsOwnRowOnReschedule(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM "appointments" WHERE .*id != \$5.* FOR UPDATE`).
		WithArgs(10, "2025-06-10", 570, 540, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := assertNoConflict(gdb, 10, "2025-06-10", 540, 30, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssertNoConflictRejectsInvalidDuration(t *testing.T) {
	gdb, _ := newMockDB(t)

	err := assertNoConflict(gdb, 10, "2025-06-10", 540, 0, 0)
	assert.Error(t, err)
}
