package api

import (
	"net/http/httptest"
	"testing"

	"github.com/LedgerPay/LedgerPay-Backend/services/apikey"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	return ctx
}

func TestActiveUserID(t *testing.T) {
	t.Run("resolves the principal set by the middleware", func(t *testing.T) {
		ctx := newTestContext()
		want := uuid.New()
		ctx.Set("user", utils.TokenObject{UserID: want.String(), Email: "owner@example.com"})

		id, user, err := activeUserID(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != want {
			t.Errorf("expected %v, got %v", want, id)
		}
		if user.Email != "owner@example.com" {
			t.Errorf("unexpected principal email %q", user.Email)
		}
	})

	t.Run("errors when no principal was set", func(t *testing.T) {
		if _, _, err := activeUserID(newTestContext()); err == nil {
			t.Error("expected an error on an unauthenticated context")
		}
	})

	t.Run("errors on a principal of the wrong type", func(t *testing.T) {
		ctx := newTestContext()
		ctx.Set("user", "not-a-token-object")

		if _, _, err := activeUserID(ctx); err == nil {
			t.Error("expected an error on a malformed principal")
		}
	})

	t.Run("errors on an unparseable user id", func(t *testing.T) {
		ctx := newTestContext()
		ctx.Set("user", utils.TokenObject{UserID: "not-a-uuid"})

		if _, _, err := activeUserID(ctx); err == nil {
			t.Error("expected an error on a malformed user id")
		}
	})
}

func TestGetCredential(t *testing.T) {
	t.Run("returns the stored credential", func(t *testing.T) {
		ctx := newTestContext()
		ctx.Set(credentialKey, apikey.SessionIdentity{UserID: uuid.New()})

		if _, ok := getCredential(ctx).(apikey.SessionIdentity); !ok {
			t.Error("expected a session identity credential")
		}
	})

	t.Run("returns nil when nothing was stored", func(t *testing.T) {
		if cred := getCredential(newTestContext()); cred != nil {
			t.Errorf("expected nil credential, got %T", cred)
		}
	})
}
