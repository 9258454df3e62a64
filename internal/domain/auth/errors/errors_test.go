package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}

	if !IsInvalidToken(ErrInvalidToken) || IsInvalidToken(ErrInvalidCredentials) {
		t.Fatal("token predicate mismatch")
	}
	if !IsAlreadyExists(ErrAlreadyExists) || !IsNotFound(ErrNotFound) {
		t.Fatal("sentinel predicate mismatch")
	}
}
