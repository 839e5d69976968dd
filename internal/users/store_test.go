package users

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"synapshare/internal/apperr"
	"synapshare/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(t.TempDir()+"/test.db"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(database)
}

func TestEnsureCreatesOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.Ensure(ctx, "uid-1", "alice@example.com")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if u.UID != "uid-1" || u.Email != "alice@example.com" {
		t.Fatalf("created user = %+v", u)
	}
	if u.Username != nil {
		t.Errorf("new user has username %q, want none", *u.Username)
	}

	again, err := s.Ensure(ctx, "uid-1", "alice@example.com")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if again.ID != u.ID {
		t.Errorf("second ensure created a new row: ids %d and %d", u.ID, again.ID)
	}
}

func TestByUIDNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ByUID(context.Background(), "missing"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("got %v, want not-found", err)
	}
}

func TestClaimUsernameOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Ensure(ctx, "uid-1", "alice@example.com"); err != nil {
		t.Fatal(err)
	}

	u, err := s.ClaimUsername(ctx, "uid-1", "alice")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if u.Username == nil || *u.Username != "alice" {
		t.Fatalf("claimed user = %+v", u)
	}

	// Names are permanent.
	if _, err := s.ClaimUsername(ctx, "uid-1", "alice2"); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("second claim: got %v, want conflict", err)
	}
	got, err := s.ByUID(ctx, "uid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Username == nil || *got.Username != "alice" {
		t.Fatalf("username changed after rejected claim: %+v", got)
	}
}

func TestClaimUsernameTaken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Ensure(ctx, "uid-1", "alice@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ensure(ctx, "uid-2", "bob@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ClaimUsername(ctx, "uid-1", "alice"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.ClaimUsername(ctx, "uid-2", "alice"); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("claiming a taken name: got %v, want conflict", err)
	}

	taken, err := s.UsernameTaken(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !taken {
		t.Error("UsernameTaken(alice) = false, want true")
	}
	taken, err = s.UsernameTaken(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if taken {
		t.Error("UsernameTaken(nobody) = true, want false")
	}
}

func TestClaimUsernameValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ClaimUsername(context.Background(), "uid-1", "   "); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("blank name: got %v, want validation error", err)
	}
	if _, err := s.ClaimUsername(context.Background(), "missing", "alice"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown uid: got %v, want not-found", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Ensure(ctx, "uid-1", "alice@example.com"); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, "uid-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.ByUID(ctx, "uid-1"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("get after delete: got %v, want not-found", err)
	}
	if err := s.Delete(ctx, "uid-1"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("second delete: got %v, want not-found", err)
	}
}
