package wishlist

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestToggle_AddThenRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE users SET").WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"added"}).AddRow(true))
	added, err := repo.Toggle(7, 3)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !added {
		t.Fatalf("expected product reported as added")
	}

	mock.ExpectQuery("UPDATE users SET").WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"added"}).AddRow(false))
	added, err = repo.Toggle(7, 3)
	if err != nil {
		t.Fatalf("toggle again: %v", err)
	}
	if added {
		t.Fatalf("expected product reported as removed")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestToggle_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE users SET").WithArgs(404, 3).
		WillReturnRows(sqlmock.NewRows([]string{"added"}))

	if _, err := repo.Toggle(404, 3); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
