package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/LedgerPay/LedgerPay-Backend/api/apistrings"
	models "github.com/LedgerPay/LedgerPay-Backend/api/models"
	basemodels "github.com/LedgerPay/LedgerPay-Backend/models"
	"github.com/LedgerPay/LedgerPay-Backend/services/apikey"
	"github.com/LedgerPay/LedgerPay-Backend/services/deposit"
	"github.com/LedgerPay/LedgerPay-Backend/services/wallet"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const paystackSignatureHeader = "x-paystack-signature"

type Wallet struct {
	server         *Server
	walletService  *wallet.WalletService
	depositService *deposit.DepositService
}

func (w Wallet) router(server *Server) {
	w.server = server
	w.walletService = wallet.NewWalletService(server.store, server.logger)
	w.depositService = deposit.NewDepositService(
		server.store,
		server.logger,
		w.walletService,
		server.fiat,
		server.mailer,
		server.config,
	)

	auth := server.AuthenticatedMiddleware()
	read := server.RequirePermission(apikey.PermissionRead)

	serverGroupV1 := server.router.Group("/api/v1/wallet")
	serverGroupV1.GET("balance", auth, read, w.balance)
	serverGroupV1.GET("details", auth, read, w.details)
	serverGroupV1.GET("transactions", auth, read, w.transactions)
	serverGroupV1.POST("deposit", auth, server.RequirePermission(apikey.PermissionDeposit), w.initiateDeposit)
	serverGroupV1.POST("transfer", auth, server.RequirePermission(apikey.PermissionTransfer), w.transfer)
	serverGroupV1.GET("deposit/:reference/status", auth, read, w.depositStatus)
	serverGroupV1.POST("deposit/:reference/verify", auth, server.RequirePermission(apikey.PermissionDeposit), w.verifyDeposit)

	// The webhook authenticates with its HMAC signature, not a credential.
	serverGroupV1.POST("paystack/webhook", w.webhook)
}

func (w *Wallet) balance(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	userWallet, err := w.walletService.GetWallet(ctx, userID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
			return
		}
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("balance retrieved successfully", models.ToBalanceResponse(userWallet)))
}

func (w *Wallet) details(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	userWallet, err := w.walletService.GetWallet(ctx, userID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNoWallet))
			return
		}
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("wallet retrieved successfully", models.ToWalletResponse(userWallet)))
}

func (w *Wallet) transactions(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	limit, _ := strconv.ParseInt(ctx.DefaultQuery("limit", "50"), 10, 32)
	offset, _ := strconv.ParseInt(ctx.DefaultQuery("offset", "0"), 10, 32)

	rows, err := w.walletService.ListTransactions(ctx, userID, int32(limit), int32(offset))
	if err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transactions retrieved successfully", models.ToTransactionCollectionResponse(rows)))
}

func (w *Wallet) initiateDeposit(ctx *gin.Context) {
	userID, user, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.DepositRequest)
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	intent, err := w.depositService.InitiateDeposit(ctx, userID, user.Email, amount)
	if err != nil {
		switch {
		case errors.Is(err, deposit.ErrInvalidAmount):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		case errors.Is(err, deposit.ErrAmountTooLarge):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.AmountTooLarge))
		case errors.Is(err, deposit.ErrReferenceExhausted):
			ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.ReferenceConflict))
		case errors.Is(err, deposit.ErrProcessorUnavailable):
			ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.UpstreamError))
		default:
			w.server.logger.Log(logrus.ErrorLevel, err.Error())
			ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		}
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deposit initiated successfully", models.DepositResponse{
		Reference:        intent.Transaction.Reference.String,
		Status:           string(intent.Transaction.Status),
		Amount:           intent.Transaction.Amount.StringFixed(2),
		AuthorizationURL: intent.AuthorizationURL,
	}))
}

func (w *Wallet) transfer(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.TransferRequest)
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransferInput))
		return
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	result, err := w.walletService.Transfer(ctx, userID, request.WalletNumber, amount)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrWalletNotFound):
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.WalletNotFound))
		case errors.Is(err, wallet.ErrSelfTransfer):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.SelfTransfer))
		case errors.Is(err, wallet.ErrInsufficientFunds):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InsufficientFunds))
		case errors.Is(err, wallet.ErrWalletInactive):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.WalletNotFound))
		case errors.Is(err, wallet.ErrInvalidAmount):
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		default:
			w.server.logger.Log(logrus.ErrorLevel, err.Error())
			ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		}
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("transfer completed successfully", models.TransferResponse{
		Reference:       result.Outgoing.Reference.String,
		Amount:          result.Outgoing.Amount.StringFixed(2),
		RecipientWallet: result.RecipientWallet.WalletNumber,
		NewBalance:      result.SenderWallet.Balance.StringFixed(2),
		Status:          string(result.Outgoing.Status),
	}))
}

func (w *Wallet) depositStatus(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	txn, err := w.depositService.GetDepositStatus(ctx, userID, ctx.Param("reference"))
	if err != nil {
		w.respondDepositError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deposit status retrieved successfully", models.ToDepositStatusResponse(txn, "")))
}

// verifyDeposit is the client-driven reconciliation path: the server asks
// the processor for the authoritative settlement state of the reference.
func (w *Wallet) verifyDeposit(ctx *gin.Context) {
	userID, _, err := activeUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	result, err := w.depositService.ReconcileFromVerification(ctx, userID, ctx.Param("reference"))
	if err != nil {
		w.respondDepositError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deposit verified", models.ToDepositStatusResponse(&result.Transaction, string(result.Outcome))))
}

// webhook receives Paystack settlement notifications. The HMAC signature
// over the raw body is the only authentication; a mismatch on the settled
// amount is still acknowledged with 200 so the processor stops retrying.
func (w *Wallet) webhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.ServerError))
		return
	}

	result, err := w.depositService.ReconcileFromNotification(ctx, payload, ctx.GetHeader(paystackSignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, deposit.ErrInvalidSignature):
			ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.InvalidSignature))
		case errors.Is(err, deposit.ErrAmountMismatch):
			// The deposit is already marked failed; acknowledge so the
			// processor stops retrying a settlement we will never credit.
			ctx.JSON(http.StatusOK, basemodels.NewSuccess("webhook processed", gin.H{"outcome": string(result.Outcome)}))
		case errors.Is(err, deposit.ErrMissingReference), errors.Is(err, deposit.ErrTransactionNotFound):
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.DepositNotFound))
		default:
			w.server.logger.Log(logrus.ErrorLevel, err.Error())
			ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		}
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("webhook processed", gin.H{"outcome": string(result.Outcome)}))
}

func (w *Wallet) respondDepositError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, deposit.ErrTransactionNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.DepositNotFound))
	case errors.Is(err, deposit.ErrForbidden):
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.DepositNotYours))
	case errors.Is(err, deposit.ErrAmountMismatch):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.AmountMismatch))
	case errors.Is(err, deposit.ErrProcessorUnavailable):
		ctx.JSON(http.StatusBadGateway, basemodels.NewError(apistrings.UpstreamError))
	default:
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
	}
}
