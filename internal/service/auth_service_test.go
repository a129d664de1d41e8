package service

import (
	"errors"
	"testing"
	"time"
)

type stubRegistrationGate struct {
	open bool
}

func (g stubRegistrationGate) IsRegistrationOpen() bool {
	return g.open
}

func TestRegisterRejectedWhenRegistrationClosed(t *testing.T) {
	svc := NewAuthService(nil, nil, stubRegistrationGate{open: false}, time.Hour)

	_, err := svc.Register("alice", "alice@example.com", "s3cret-pass")
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
}

func TestRegisterValidatesInputWhenGateOpen(t *testing.T) {
	// With the gate open, validation runs before any repository access,
	// so invalid input fails without touching the database.
	svc := NewAuthService(nil, nil, stubRegistrationGate{open: true}, time.Hour)

	_, err := svc.Register("x", "alice@example.com", "s3cret-pass")
	if err == nil {
		t.Fatal("expected a validation error for a too-short username")
	}
	if errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("open gate should not report registration closed, got %v", err)
	}
}
