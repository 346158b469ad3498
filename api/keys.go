package api

import (
	"errors"
	"net/http"

	"github.com/LedgerPay/LedgerPay-Backend/api/apistrings"
	models "github.com/LedgerPay/LedgerPay-Backend/api/models"
	basemodels "github.com/LedgerPay/LedgerPay-Backend/models"
	"github.com/LedgerPay/LedgerPay-Backend/services/apikey"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Keys struct {
	server     *Server
	keyService *apikey.APIKeyService
}

func (k Keys) router(server *Server) {
	k.server = server
	k.keyService = server.keyService

	auth := server.AuthenticatedMiddleware()
	session := server.RequireSession()

	serverGroupV1 := server.router.Group("/api/v1/keys")
	serverGroupV1.POST("create", auth, session, k.create)
	serverGroupV1.GET("list", auth, session, k.list)
	serverGroupV1.POST("rollover", auth, session, k.rollover)
	serverGroupV1.DELETE(":id", auth, session, k.revoke)
}

func (k *Keys) create(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.CreateKeyRequest)
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidKeyInput))
		return
	}

	key, plaintext, err := k.keyService.IssueKey(ctx, userID, request.Name, request.Permissions, request.Expiry)
	if err != nil {
		k.respondKeyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("API key created, store it now, it will not be shown again", models.ToCreatedKeyResponse(key, plaintext)))
}

func (k *Keys) list(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	keys, err := k.keyService.ListKeys(ctx, userID)
	if err != nil {
		k.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("API keys retrieved successfully", models.ToAPIKeyCollectionResponse(keys)))
}

func (k *Keys) rollover(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.RolloverKeyRequest)
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidKeyInput))
		return
	}

	key, plaintext, err := k.keyService.RolloverKey(ctx, request.KeyID, userID, request.Expiry)
	if err != nil {
		k.respondKeyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("API key rolled over, store it now, it will not be shown again", models.ToCreatedKeyResponse(key, plaintext)))
}

func (k *Keys) revoke(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	keyID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidKeyInput))
		return
	}

	key, err := k.keyService.RevokeKey(ctx, keyID, userID)
	if err != nil {
		k.respondKeyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("API key revoked successfully", models.ToAPIKeyResponse(key)))
}

func (k *Keys) respondKeyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apikey.ErrKeyNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.KeyNotFound))
	case errors.Is(err, apikey.ErrKeyLimitReached):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.KeyLimitReached))
	case errors.Is(err, apikey.ErrInvalidPermission):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidPermission))
	case errors.Is(err, apikey.ErrInvalidExpiry):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidExpiry))
	case errors.Is(err, apikey.ErrKeyNotExpired):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.KeyNotExpired))
	default:
		k.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}
