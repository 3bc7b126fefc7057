package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockPG(t *testing.T) (*PG, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPGFromDB(db), mock
}

func TestPGGetHit(t *testing.T) {
	store, mock := newMockPG(t)
	mock.ExpectQuery("select value from kv").
		WithArgs("submission:SUB-1-1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"paid":false}`))

	got, err := store.Get(context.Background(), "submission:SUB-1-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"paid":false}` {
		t.Fatalf("unexpected value %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGGetMiss(t *testing.T) {
	store, mock := newMockPG(t)
	mock.ExpectQuery("select value from kv").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGPutUpsert(t *testing.T) {
	store, mock := newMockPG(t)
	mock.ExpectExec("insert into kv").
		WithArgs("ratelimit:1.2.3.4", `{"timestamps":[1]}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Put(context.Background(), "ratelimit:1.2.3.4", `{"timestamps":[1]}`, time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGDelete(t *testing.T) {
	store, mock := newMockPG(t)
	mock.ExpectExec("delete from kv").
		WithArgs("submission:SUB-1-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Delete(context.Background(), "submission:SUB-1-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestPGPurgeExpired(t *testing.T) {
	store, mock := newMockPG(t)
	mock.ExpectExec("delete from kv where expires_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 purged rows, got %d", n)
	}
}
