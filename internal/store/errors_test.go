package store

import (
	"errors"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	if !IsNotFoundError(ErrUserNotFound) {
		t.Error("Expected ErrUserNotFound to be a not-found error")
	}
	if !IsNotFoundError(ErrTaskNotFound) {
		t.Error("Expected ErrTaskNotFound to be a not-found error")
	}
	if !IsDuplicateError(ErrEmailExists) {
		t.Error("Expected ErrEmailExists to be a duplicate error")
	}
	if IsNotFoundError(ErrEmailExists) {
		t.Error("Expected ErrEmailExists not to be a not-found error")
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	wrapped := NewStoreError("task", "update", "replace failed", ErrTaskNotFound)

	if !errors.Is(wrapped, ErrTaskNotFound) {
		t.Error("Expected StoreError to unwrap to ErrTaskNotFound")
	}
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("Expected StoreError to unwrap to ErrNotFound")
	}

	var serr *StoreError
	if !errors.As(wrapped, &serr) {
		t.Fatal("Expected errors.As to find *StoreError")
	}
	if serr.Entity != "task" || serr.Operation != "update" {
		t.Errorf("Expected entity/operation context, got %+v", serr)
	}
}

func TestStoreErrorMessage(t *testing.T) {
	err := NewStoreError("user", "create", "insert failed", errors.New("boom"))
	want := "create operation on user failed: insert failed: boom"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	bare := NewStoreError("user", "create", "insert failed", nil)
	want = "create operation on user failed: insert failed"
	if bare.Error() != want {
		t.Errorf("Expected %q, got %q", want, bare.Error())
	}
}
