package operators

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/veritaslab/veritas/internal/common"
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

func TestPut_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+operators\s*\(id,\s*password_hash,\s*salt,\s*iterations\).*ON\s+CONFLICT\s*\(id\)`

	mock.ExpectExec(q).
		WithArgs("SOC-ALPHA", "hash", "salt", 100000).
		WillReturnResult(sqlmock.NewResult(0, 1))

	op := &models.Operator{ID: "SOC-ALPHA", PasswordHash: "hash", Salt: "salt", Iterations: 100000}
	if err := repo.Put(context.Background(), op); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPut_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+operators`).
		WillReturnError(errors.New("db down"))

	err := repo.Put(context.Background(), &models.Operator{ID: "X", Iterations: 1})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*password_hash,\s*salt,\s*iterations,\s*created_at\s+FROM\s+operators\s+WHERE\s+id\s*=\s*\$1`

	rows := sqlmock.NewRows([]string{"id", "password_hash", "salt", "iterations", "created_at"}).
		AddRow("SOC-ALPHA", "hash", "salt", 100000, time.Now())
	mock.ExpectQuery(q).WithArgs("SOC-ALPHA").WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "SOC-ALPHA")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "SOC-ALPHA" || got.Iterations != 100000 {
		t.Fatalf("unexpected operator: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,.*FROM\s+operators`).
		WithArgs("GHOST").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "GHOST")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,.*FROM\s+operators`).
		WithArgs("SOC-ALPHA").
		WillReturnError(errors.New("db err"))

	_, err := repo.Get(context.Background(), "SOC-ALPHA")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
