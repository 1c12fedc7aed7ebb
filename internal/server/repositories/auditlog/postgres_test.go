package auditlog

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/veritaslab/veritas/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestAppend_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+audit_log\s*\(id,\s*operator_id,\s*action,\s*details,\s*ts\)`

	mock.ExpectExec(q).
		WithArgs("100-abc", "SOC-ALPHA", models.AuditLogin, "signed in", int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &models.AuditEntry{
		ID: "100-abc", OperatorID: "SOC-ALPHA",
		Action: models.AuditLogin, Details: "signed in", Timestamp: 100,
	}
	if err := repo.Append(context.Background(), entry); err != nil {
		t.Fatalf("Append error: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+audit_log`).
		WillReturnError(errors.New("db down"))

	err := repo.Append(context.Background(), &models.AuditEntry{ID: "1-a"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSelectRecent_OrderAndLimitInQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*operator_id,\s*action,\s*details,\s*ts\s+FROM\s+audit_log\s+WHERE\s+operator_id\s*=\s*\$1\s+ORDER\s+BY\s+ts\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$2`

	rows := sqlmock.NewRows([]string{"id", "operator_id", "action", "details", "ts"}).
		AddRow("300-c", "SOC-ALPHA", "LOGIN", "", int64(300)).
		AddRow("200-b", "SOC-ALPHA", "REGISTRATION", "", int64(200))
	mock.ExpectQuery(q).WithArgs("SOC-ALPHA", 20).WillReturnRows(rows)

	got, err := repo.SelectRecent(context.Background(), "SOC-ALPHA", 20)
	if err != nil {
		t.Fatalf("SelectRecent error: %v", err)
	}
	if len(got) != 2 || got[0].Timestamp != 300 || got[1].Timestamp != 200 {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestSelectRecent_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+audit_log`).
		WithArgs("SOC-BETA", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "operator_id", "action", "details", "ts"}))

	got, err := repo.SelectRecent(context.Background(), "SOC-BETA", 20)
	if err != nil {
		t.Fatalf("SelectRecent error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}
