package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:        http.StatusBadRequest,
		CodeUnauthorized:      http.StatusUnauthorized,
		CodeForbidden:         http.StatusForbidden,
		CodeNotFound:          http.StatusNotFound,
		CodeEmptyCart:         http.StatusConflict,
		CodeInsufficientStock: http.StatusConflict,
		CodeRateLimit:         http.StatusTooManyRequests,
		CodeInternal:          http.StatusInternalServerError,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s: expected status %d, got %d", code, status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	if got := MetadataFor(Code("BOGUS")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeInternal, cause, "persist order")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable with errors.Is")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeInternal {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeInsufficientStock, "not enough stock for Gadget").
		WithDetails(map[string]any{"product": "Gadget"})

	details, ok := err.Details().(map[string]any)
	if !ok || details["product"] != "Gadget" {
		t.Fatalf("unexpected details: %#v", err.Details())
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeNotFound, errors.New("row missing"), "load product")
	d := Dump(err)

	if d.Code != CodeNotFound {
		t.Fatalf("expected code NOT_FOUND, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", d.Chain)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pgx unique", &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_order_number"}, true},
		{"pgx other", &pgconn.PgError{Code: "23503"}, false},
		{"pq unique", &pq.Error{Code: "23505"}, true},
		{"wrapped pgx unique", fmt.Errorf("insert order: %w", &pgconn.PgError{Code: "23505"}), true},
		{"sqlite unique", errors.New("UNIQUE constraint failed: orders.order_number"), true},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}
