package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreConsumeIncrements(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, 10)
	resetsAt := nextReset(time.Now().UTC())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT limit_amount, used, resets_at FROM scan_quota").
		WithArgs("client-a").
		WillReturnRows(sqlmock.NewRows([]string{"limit_amount", "used", "resets_at"}).
			AddRow(10, 3, resetsAt))
	mock.ExpectExec("UPDATE scan_quota SET used").
		WithArgs(4, "client-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := store.Consume(context.Background(), "client-a", 1)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if u.Used != 4 {
		t.Errorf("used = %d, want 4", u.Used)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreConsumeAtLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, 10)
	resetsAt := nextReset(time.Now().UTC())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT limit_amount, used, resets_at FROM scan_quota").
		WithArgs("client-a").
		WillReturnRows(sqlmock.NewRows([]string{"limit_amount", "used", "resets_at"}).
			AddRow(10, 10, resetsAt))
	mock.ExpectRollback()

	if _, err := store.Consume(context.Background(), "client-a", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("err = %v, want ErrLimitReached", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreInitializesMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, 10)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT limit_amount, used, resets_at FROM scan_quota").
		WithArgs("fresh").
		WillReturnRows(sqlmock.NewRows([]string{"limit_amount", "used", "resets_at"}))
	mock.ExpectExec("INSERT INTO scan_quota").
		WithArgs("fresh", 10, 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	u, err := store.Get(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Limit != 10 || u.Used != 0 {
		t.Errorf("usage = %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
