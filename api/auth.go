package api

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/LedgerPay/LedgerPay-Backend/api/apistrings"
	models "github.com/LedgerPay/LedgerPay-Backend/api/models"
	basemodels "github.com/LedgerPay/LedgerPay-Backend/models"
	"github.com/LedgerPay/LedgerPay-Backend/services/apikey"
	user_service "github.com/LedgerPay/LedgerPay-Backend/services/user"
	"github.com/LedgerPay/LedgerPay-Backend/services/wallet"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Auth struct {
	server      *Server
	userService *user_service.UserService
}

func (a Auth) router(server *Server) {
	a.server = server
	a.userService = user_service.NewUserService(
		a.server.store,
		a.server.logger,
		wallet.NewWalletService(a.server.store, a.server.logger),
	)

	serverGroupV1 := server.router.Group("/api/v1/auth")
	serverGroupV1.GET("google", a.googleLogin)
	serverGroupV1.GET("google/callback", a.googleCallback)
	serverGroupV1.GET("me", a.server.AuthenticatedMiddleware(), a.server.RequirePermission(apikey.PermissionRead), a.me)
}

// googleLogin starts the sign-in flow: a single-use state nonce is parked
// in the cache and the client is sent to Google's consent page.
func (a *Auth) googleLogin(ctx *gin.Context) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		a.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}
	state := hex.EncodeToString(raw)
	a.server.cache.Insert(state, true)

	ctx.Redirect(http.StatusTemporaryRedirect, a.server.identity.AuthCodeURL(state))
}

// googleCallback completes the flow. The state must redeem against the
// nonce cache before the code is exchanged; a nonce redeems exactly once.
func (a *Auth) googleCallback(ctx *gin.Context) {
	state := ctx.Query("state")
	if _, err := a.server.cache.Take(state); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAuthState))
		return
	}

	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAuthCode))
		return
	}

	id, err := a.server.identity.Exchange(ctx, code)
	if err != nil {
		a.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.InvalidAuthCode))
		return
	}

	dbUser, _, err := a.userService.GetOrCreateUser(ctx, id)
	if err != nil {
		a.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	if !dbUser.IsActive {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.UserInactive))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: dbUser.ID.String(),
		Email:  dbUser.Email,
	})
	if err != nil {
		a.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("signed in successfully", models.LoginResponse{
		Token: token,
		User:  *models.ToUserResponse(dbUser),
	}))
}

func (a *Auth) me(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	dbUser, err := a.userService.GetUserByID(ctx, userID)
	if err != nil {
		switch err {
		case user_service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		case user_service.ErrUserInactive:
			ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.UserInactive))
		default:
			ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		}
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("user retrieved successfully", models.ToUserResponse(dbUser)))
}
