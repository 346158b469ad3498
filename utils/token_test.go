package utils

import (
	"testing"
)

func TestJWTToken(t *testing.T) {
	controller := NewJWTToken(&Config{SigningKey: "test-signing-key"})

	t.Run("round trips a token", func(t *testing.T) {
		subject := TokenObject{
			UserID: "0b3c3a9c-3f3e-4f2d-9a3a-111111111111",
			Email:  "user@example.com",
		}

		token, err := controller.CreateToken(subject)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := controller.VerifyToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != subject {
			t.Errorf("expected %+v, got %+v", subject, got)
		}
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other := NewJWTToken(&Config{SigningKey: "a-different-key"})
		token, err := other.CreateToken(TokenObject{UserID: "x", Email: "y"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := controller.VerifyToken(token); err == nil {
			t.Error("expected verification to fail")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := controller.VerifyToken("not.a.token"); err == nil {
			t.Error("expected verification to fail")
		}
	})
}
