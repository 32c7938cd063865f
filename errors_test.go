package ecp

import (
	"errors"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		InvalidInput:      "invalid input",
		DimensionMismatch: "dimension mismatch",
		EmptyIndex:        "empty index",
		EmptyInput:        "empty input",
		Internal:          "internal",
		Kind(99):          "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newErr("Query", Internal, cause)

	if !errors.Is(err, err) {
		t.Fatal("expected an error to be errors.Is itself")
	}
	if errors.Unwrap(err) != cause {
		t.Fatalf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if msg := err.Error(); msg == "" {
		t.Fatal("expected non-empty error message")
	}

	var asErr *Error
	if !errors.As(err, &asErr) {
		t.Fatal("expected errors.As to find *Error")
	}
	if asErr.Kind != Internal {
		t.Fatalf("Kind = %v, want Internal", asErr.Kind)
	}
}

func TestErrorIsKind(t *testing.T) {
	err := newErr("CreateIndex", InvalidInput, nil)
	if !err.Is(InvalidInput) {
		t.Fatal("expected Is(InvalidInput) to be true")
	}
	if err.Is(Internal) {
		t.Fatal("expected Is(Internal) to be false")
	}
}

func TestErrorWithoutCauseOmitsNilFromMessage(t *testing.T) {
	err := newErr("Insert", EmptyIndex, nil)
	if err.Unwrap() != nil {
		t.Fatalf("Unwrap() = %v, want nil", err.Unwrap())
	}
	if err.Error() == "" {
		t.Fatal("expected non-empty message even without a wrapped cause")
	}
	if want := "ecp: Insert: empty index"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
