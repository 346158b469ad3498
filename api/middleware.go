package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/LedgerPay/LedgerPay-Backend/api/apistrings"
	basemodels "github.com/LedgerPay/LedgerPay-Backend/models"
	"github.com/LedgerPay/LedgerPay-Backend/services/apikey"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	apiKeyHeader  = "x-api-key"
	credentialKey = "credential"
)

// AuthenticatedMiddleware resolves the request's credential: a session
// token in the Authorization header, or an API key in x-api-key. Exactly
// one path runs; the key header wins when both are present.
func (s *Server) AuthenticatedMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if key := ctx.GetHeader(apiKeyHeader); key != "" {
			s.authenticateWithKey(ctx, key)
			return
		}

		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Request"})
			ctx.Abort()
			return
		}

		tokenSplit := strings.Split(token, " ")
		if len(tokenSplit) != 2 || strings.ToLower(tokenSplit[0]) != "bearer" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token, expects bearer token"})
			ctx.Abort()
			return
		}

		user, err := TokenController.VerifyToken(tokenSplit[1])
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			ctx.Abort()
			return
		}

		userID, err := uuid.Parse(user.UserID)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token subject"})
			ctx.Abort()
			return
		}

		/// Accessible User Across the App
		ctx.Set("user", user)
		ctx.Set(credentialKey, apikey.SessionIdentity{UserID: userID})
		ctx.Next()
	}
}

func (s *Server) authenticateWithKey(ctx *gin.Context, key string) {
	dbKey, err := s.keyService.VerifyKey(ctx, key)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid API key"})
		ctx.Abort()
		return
	}

	owner, err := s.store.GetUserByID(ctx, dbKey.UserID)
	if err != nil || !owner.IsActive {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid API key"})
		ctx.Abort()
		return
	}

	ctx.Set("user", utils.TokenObject{
		UserID: dbKey.UserID.String(),
		Email:  owner.Email,
	})
	ctx.Set(credentialKey, apikey.ScopedKey{
		KeyID:       dbKey.ID,
		UserID:      dbKey.UserID,
		Permissions: dbKey.Permissions,
	})
	ctx.Next()
}

// RequirePermission gates a route on the resolved credential. Session
// identities pass everything; API keys pass only their stored scopes.
func (s *Server) RequirePermission(perm apikey.Permission) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cred := getCredential(ctx)
		if err := apikey.Authorize(cred, perm); err != nil {
			if err == apikey.ErrUnauthenticated {
				ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.ServerError))
			} else {
				ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.PermissionDenied))
			}
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// RequireSession rejects API-key credentials outright. Key management is
// only reachable with a full session, a key must never mint or revoke keys.
func (s *Server) RequireSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := getCredential(ctx).(apikey.SessionIdentity); !ok {
			ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.PermissionDenied))
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func getCredential(ctx *gin.Context) apikey.Credential {
	value, exists := ctx.Get(credentialKey)
	if !exists {
		return nil
	}
	cred, ok := value.(apikey.Credential)
	if !ok {
		return nil
	}
	return cred
}

// activeUserID resolves the principal the authentication middleware stored
// on the context, parsed down to the user's ID.
func activeUserID(ctx *gin.Context) (uuid.UUID, utils.TokenObject, error) {
	value, exists := ctx.Get("user")
	if !exists {
		return uuid.Nil, utils.TokenObject{}, fmt.Errorf("no authenticated user on this request")
	}
	user, ok := value.(utils.TokenObject)
	if !ok {
		return uuid.Nil, utils.TokenObject{}, fmt.Errorf("unexpected principal type %T on this request", value)
	}
	id, err := uuid.Parse(user.UserID)
	if err != nil {
		return uuid.Nil, utils.TokenObject{}, fmt.Errorf("malformed user id on authenticated request: %w", err)
	}
	return id, user, nil
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, x-api-key")
		c.Header("Access-Control-Allow-Methods", "POST,HEAD,PATCH,OPTIONS,GET,PUT,DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
