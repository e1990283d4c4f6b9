package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/middleware"
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

func auditRequest(t *testing.T, db *gorm.DB, rawQuery string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/me/audit-logs?"+rawQuery, nil)
	c.Set(middleware.ContextSalonID, uint(1))

	NewAuditLogsHandler(db).List(c)
	return w
}

func auditRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "salon_id", "action", "entity", "created_at"}).
		AddRow(3, 1, "service_created", "service", time.Now()).
		AddRow(2, 1, "login", "user", time.Now())
}

func TestAuditLogsScopedToSalon(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE salon_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE salon_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WillReturnRows(auditRows())

	w := auditRequest(t, gdb, "")
	require.Equal(t, 200, w.Code)

	var body struct {
		Page  int               `json:"page"`
		Limit int               `json:"limit"`
		Total int64             `json:"total"`
		Logs  []json.RawMessage `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 50, body.Limit)
	assert.Equal(t, int64(2), body.Total)
	assert.Len(t, body.Logs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogsAppliesFiltersAndPagination(t *testing.T) {
	gdb, mock := newMockDB(t)

	from, _ := time.Parse("2006-01-02", "2025-01-01")
	to, _ := time.Parse("2006-01-02", "2025-01-31")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE salon_id = \$1 AND action = \$2 AND entity = \$3 AND created_at >= \$4 AND created_at < \$5`).
		WithArgs(1, "login", "user", from, to.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE .* ORDER BY created_at DESC LIMIT \$\d+ OFFSET \$\d+`).
		WillReturnRows(auditRows())

	w := auditRequest(t, gdb, "action=login&entity=user&from=2025-01-01&to=2025-01-31&page=3&limit=20")
	require.Equal(t, 200, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogsClampsBadPagingAndIgnoresBadDates(t *testing.T) {
	gdb, mock := newMockDB(t)

	// datas malformadas não viram filtro; limit acima do teto volta ao padrão
	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE salon_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE salon_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := auditRequest(t, gdb, "from=ontem&to=31-01-2025&page=-2&limit=9999")
	require.Equal(t, 200, w.Code)

	var body struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 50, body.Limit)
	assert.NoError(t, mock.ExpectationsWereMet())
}
