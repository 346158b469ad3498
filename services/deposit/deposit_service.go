package deposit

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/LedgerPay/LedgerPay-Backend/providers/fiat"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/LedgerPay/LedgerPay-Backend/services/notification"
	"github.com/LedgerPay/LedgerPay-Backend/services/wallet"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	referencePrefix      = "txn_"
	referenceBytes       = 4
	maxReferenceAttempts = 5
)

var defaultMaxDeposit = decimal.NewFromInt(10_000_000)

// Processor is the slice of the payment provider the reconciliation engine
// needs. Amounts cross this boundary in kobo.
type Processor interface {
	InitializeTransaction(email string, amountKobo int64, reference string) (string, error)
	VerifyTransaction(reference string) (status string, amountKobo int64, err error)
	VerifyWebhookSignature(payload []byte, signature string) bool
}

// Outcome describes what a reconciliation attempt did. Re-delivery of the
// same settlement is a normal event, not an error, so it gets its own
// outcome instead of a failure path.
type Outcome string

const (
	OutcomeCredited         Outcome = "credited"
	OutcomeAlreadyProcessed Outcome = "already_processed"
	OutcomeAmountMismatch   Outcome = "amount_mismatch"
	OutcomeMarkedFailed     Outcome = "marked_failed"
	OutcomeIgnored          Outcome = "ignored"
	OutcomePending          Outcome = "pending"
)

type ReconcileResult struct {
	Outcome     Outcome
	Transaction db.Transaction
	Wallet      *db.Wallet
}

// DepositIntent is handed back from InitiateDeposit: the pending ledger
// record plus the hosted checkout URL the client should redirect to.
type DepositIntent struct {
	Transaction      db.Transaction
	AuthorizationURL string
}

type DepositService struct {
	store        db.TxStore
	logger       *logging.Logger
	walletClient *wallet.WalletService
	processor    Processor
	mailer       *notification.Plunk
	maxAmount    decimal.Decimal
}

func NewDepositService(store db.TxStore, logger *logging.Logger, walletClient *wallet.WalletService, processor Processor, mailer *notification.Plunk, config *utils.Config) *DepositService {
	maxAmount := defaultMaxDeposit
	if config.MaxDepositAmount != "" {
		parsed, err := decimal.NewFromString(config.MaxDepositAmount)
		if err != nil {
			panic(fmt.Sprintf("invalid MAX_DEPOSIT_AMOUNT %q: %v", config.MaxDepositAmount, err))
		}
		maxAmount = parsed
	}

	return &DepositService{
		store:        store,
		logger:       logger,
		walletClient: walletClient,
		processor:    processor,
		mailer:       mailer,
		maxAmount:    maxAmount,
	}
}

// generateReference mints a reference that is not yet present in the
// ledger. The uniqueness probe is advisory; the unique constraint on
// transactions.reference is what actually protects the invariant.
func (d *DepositService) generateReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		raw := make([]byte, referenceBytes)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("generating reference: %w", err)
		}
		candidate := referencePrefix + hex.EncodeToString(raw)

		_, err := d.store.GetTransactionByReference(ctx, sql.NullString{String: candidate, Valid: true})
		if err == sql.ErrNoRows {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", ErrReferenceExhausted
}

// InitiateDeposit opens a checkout session with the processor and records
// the deposit as pending. No balance moves here; money only enters the
// ledger when the settlement is reconciled.
func (d *DepositService) InitiateDeposit(ctx context.Context, userID uuid.UUID, email string, amount decimal.Decimal) (*DepositIntent, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if amount.GreaterThan(d.maxAmount) {
		return nil, ErrAmountTooLarge
	}

	userWallet, err := d.walletClient.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	reference, err := d.generateReference(ctx)
	if err != nil {
		return nil, err
	}

	authURL, err := d.processor.InitializeTransaction(email, fiat.NairaToKobo(amount), reference)
	if err != nil {
		d.logger.Error(fmt.Sprintf("initializing deposit %s with processor: %v", reference, err))
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	pending, err := d.store.CreateTransaction(ctx, db.CreateTransactionParams{
		UserID:    userID,
		WalletID:  userWallet.ID,
		Type:      db.TransactionTypeDeposit,
		Status:    db.TransactionStatusPending,
		Amount:    amount,
		Reference: sql.NullString{String: reference, Valid: true},
		Description: sql.NullString{
			String: "Wallet deposit via Paystack",
			Valid:  true,
		},
	})
	if err != nil {
		if db.IsDuplicate(err) {
			// The uniqueness probe lost a race; the constraint on
			// transactions.reference is authoritative.
			return nil, ErrReferenceExhausted
		}
		return nil, fmt.Errorf("recording pending deposit %s: %w", reference, err)
	}

	d.logger.Info(fmt.Sprintf("initiated deposit %s of %s for user %v", reference, amount, userID))
	return &DepositIntent{
		Transaction:      pending,
		AuthorizationURL: authURL,
	}, nil
}

// ReconcileFromNotification settles a deposit from a processor webhook. The
// signature must authenticate the raw payload before anything in it is
// believed; events other than a successful charge are acknowledged and
// ignored.
func (d *DepositService) ReconcileFromNotification(ctx context.Context, payload []byte, signature string) (*ReconcileResult, error) {
	if !d.processor.VerifyWebhookSignature(payload, signature) {
		return nil, ErrInvalidSignature
	}

	var event fiat.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decoding webhook payload: %w", err)
	}

	if event.Event != fiat.EventChargeSuccess {
		d.logger.Info(fmt.Sprintf("ignoring webhook event %q", event.Event))
		return &ReconcileResult{Outcome: OutcomeIgnored}, nil
	}

	if event.Data.Reference == "" {
		return nil, ErrMissingReference
	}

	if event.Data.Status != "" && event.Data.Status != fiat.StatusSuccess {
		return d.markFailed(ctx, event.Data.Reference, fmt.Sprintf("Deposit %s by processor", event.Data.Status))
	}

	return d.settle(ctx, event.Data.Reference, fiat.KoboToNaira(event.Data.Amount))
}

// ReconcileFromVerification settles a deposit by asking the processor
// directly for the authoritative state of the reference. This is the
// client-driven path for when the webhook was missed; the client supplies
// only the reference, never the status.
func (d *DepositService) ReconcileFromVerification(ctx context.Context, userID uuid.UUID, reference string) (*ReconcileResult, error) {
	txn, err := d.lookupOwned(ctx, userID, reference)
	if err != nil {
		return nil, err
	}

	status, amountKobo, err := d.processor.VerifyTransaction(reference)
	if err != nil {
		d.logger.Error(fmt.Sprintf("verifying deposit %s with processor: %v", reference, err))
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	switch status {
	case fiat.StatusSuccess:
		return d.settle(ctx, reference, fiat.KoboToNaira(amountKobo))
	case fiat.StatusFailed, fiat.StatusAbandoned:
		return d.markFailed(ctx, reference, fmt.Sprintf("Deposit %s by processor", status))
	default:
		// Still in flight on the processor's side; nothing to record yet.
		return &ReconcileResult{Outcome: OutcomePending, Transaction: *txn}, nil
	}
}

// GetDepositStatus reads the current ledger state of an owned deposit. It
// never talks to the processor.
func (d *DepositService) GetDepositStatus(ctx context.Context, userID uuid.UUID, reference string) (*db.Transaction, error) {
	return d.lookupOwned(ctx, userID, reference)
}

func (d *DepositService) lookupOwned(ctx context.Context, userID uuid.UUID, reference string) (*db.Transaction, error) {
	txn, err := d.store.GetTransactionByReference(ctx, sql.NullString{String: reference, Valid: true})
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	} else if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, ErrForbidden
	}
	return &txn, nil
}

// settle is the single reconciliation path both the webhook and the
// verification flow converge on. The pending row is locked, re-checked and
// either credited or marked failed, all in one database transaction, so a
// duplicated notification can never credit twice. A settled amount that
// does not match the initiated amount commits the failed flip and then
// returns ErrAmountMismatch alongside the flipped row, so callers can
// distinguish the failure from a clean credit.
func (d *DepositService) settle(ctx context.Context, reference string, settledAmount decimal.Decimal) (*ReconcileResult, error) {
	var result ReconcileResult

	err := d.store.ExecTx(ctx, func(q db.Querier) error {
		txn, err := q.GetTransactionByReferenceForUpdate(ctx, sql.NullString{String: reference, Valid: true})
		if err == sql.ErrNoRows {
			return ErrTransactionNotFound
		} else if err != nil {
			return err
		}
		if txn.Type != db.TransactionTypeDeposit {
			return ErrTransactionNotFound
		}

		// Terminal states are sticky. A re-delivered settlement for an
		// already credited or already failed deposit is a no-op.
		if txn.Status == db.TransactionStatusSuccess || txn.Status == db.TransactionStatusFailed {
			result = ReconcileResult{Outcome: OutcomeAlreadyProcessed, Transaction: txn}
			return nil
		}

		if !txn.Amount.Equal(settledAmount) {
			flipped, err := q.UpdateTransactionStatus(ctx, db.UpdateTransactionStatusParams{
				ID:     txn.ID,
				Status: db.TransactionStatusFailed,
				Description: sql.NullString{
					String: fmt.Sprintf("Amount mismatch: initiated %s, settled %s", txn.Amount, settledAmount),
					Valid:  true,
				},
			})
			if err != nil {
				return err
			}
			result = ReconcileResult{Outcome: OutcomeAmountMismatch, Transaction: flipped}
			return nil
		}

		credited, err := d.walletClient.AdjustBalance(ctx, q, txn.WalletID, txn.Amount, wallet.DirectionCredit)
		if err != nil {
			return err
		}

		settled, err := q.UpdateTransactionStatus(ctx, db.UpdateTransactionStatusParams{
			ID:     txn.ID,
			Status: db.TransactionStatusSuccess,
			Description: sql.NullString{
				String: "Deposit confirmed",
				Valid:  true,
			},
		})
		if err != nil {
			return err
		}

		result = ReconcileResult{Outcome: OutcomeCredited, Transaction: settled, Wallet: credited}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case OutcomeCredited:
		d.logger.Info(fmt.Sprintf("deposit %s credited %s to wallet %v", reference, settledAmount, result.Transaction.WalletID))
		d.sendReceipt(ctx, &result)
	case OutcomeAmountMismatch:
		d.logger.Error(fmt.Sprintf("deposit %s marked failed on amount mismatch, settled %s", reference, settledAmount))
		return &result, ErrAmountMismatch
	case OutcomeAlreadyProcessed:
		d.logger.Info(fmt.Sprintf("deposit %s already reconciled, status %s", reference, result.Transaction.Status))
	}

	return &result, nil
}

// markFailed flips a still-pending deposit to failed. Terminal rows are
// left untouched.
func (d *DepositService) markFailed(ctx context.Context, reference, description string) (*ReconcileResult, error) {
	var result ReconcileResult

	err := d.store.ExecTx(ctx, func(q db.Querier) error {
		txn, err := q.GetTransactionByReferenceForUpdate(ctx, sql.NullString{String: reference, Valid: true})
		if err == sql.ErrNoRows {
			return ErrTransactionNotFound
		} else if err != nil {
			return err
		}

		if txn.Status == db.TransactionStatusSuccess || txn.Status == db.TransactionStatusFailed {
			result = ReconcileResult{Outcome: OutcomeAlreadyProcessed, Transaction: txn}
			return nil
		}

		flipped, err := q.UpdateTransactionStatus(ctx, db.UpdateTransactionStatusParams{
			ID:          txn.ID,
			Status:      db.TransactionStatusFailed,
			Description: sql.NullString{String: description, Valid: true},
		})
		if err != nil {
			return err
		}
		result = ReconcileResult{Outcome: OutcomeMarkedFailed, Transaction: flipped}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// sendReceipt emails the owner after a credit. Failures are logged and
// swallowed; the credit has already committed.
func (d *DepositService) sendReceipt(ctx context.Context, result *ReconcileResult) {
	if d.mailer == nil || result.Wallet == nil {
		return
	}

	owner, err := d.store.GetUserByID(ctx, result.Transaction.UserID)
	if err != nil {
		d.logger.Error(fmt.Sprintf("looking up deposit owner for receipt: %v", err))
		return
	}

	reference := result.Transaction.Reference.String
	if err := d.mailer.SendDepositReceipt(owner.Email, reference, result.Transaction.Amount, result.Wallet.Balance); err != nil {
		d.logger.Error(fmt.Sprintf("sending deposit receipt for %s: %v", reference, err))
	}
}
