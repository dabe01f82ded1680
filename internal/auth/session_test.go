package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionTokens_RoundTrip(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Hour)
	id := uuid.New()

	raw, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("got %s, want %s", got, id)
	}
}

func TestSessionTokens_RejectsForeignSignature(t *testing.T) {
	raw, err := NewSessionTokens("one", time.Hour).Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewSessionTokens("two", time.Hour).Parse(raw); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionTokens_RejectsExpired(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Minute)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }
	raw, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := tokens.Parse(raw); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestSessionTokens_RejectsGarbage(t *testing.T) {
	if _, err := NewSessionTokens("secret", time.Hour).Parse("not-a-token"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}
