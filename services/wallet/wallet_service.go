package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	walletNumberLength = 13

	// The number space makes a collision vanishingly unlikely, but the
	// retry loop is what actually guarantees progress.
	maxCreationAttempts = 10
)

// BalanceDirection selects which way AdjustBalance moves money.
type BalanceDirection string

const (
	DirectionCredit BalanceDirection = "credit"
	DirectionDebit  BalanceDirection = "debit"
)

type WalletService struct {
	store  db.TxStore
	logger *logging.Logger
}

func NewWalletService(store db.TxStore, logger *logging.Logger) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
	}
}

// CreateWallet persists a fresh wallet for userID under q, which may be a
// transaction so user creation can bundle the wallet into the same commit.
// Wallet-number collisions are retried with a new candidate number.
func (w *WalletService) CreateWallet(ctx context.Context, q db.Querier, userID uuid.UUID) (*db.Wallet, error) {
	for attempt := 0; attempt < maxCreationAttempts; attempt++ {
		number, err := utils.GenerateDigits(walletNumberLength)
		if err != nil {
			return nil, fmt.Errorf("generating wallet number: %w", err)
		}

		created, err := q.CreateWallet(ctx, db.CreateWalletParams{
			UserID:       userID,
			WalletNumber: number,
			Balance:      decimal.Zero,
		})
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
				if pqErr.Constraint == "wallets_user_id_key" {
					// The user already has a wallet; retrying won't help.
					return nil, err
				}
				// Wallet number collision, try again
				continue
			}
			return nil, err
		}

		return &created, nil
	}

	w.logger.Error(fmt.Sprintf("exhausted %d wallet number attempts for user %v", maxCreationAttempts, userID))
	return nil, ErrWalletNumberExhausted
}

// GetWallet fetches the wallet owned by userID.
func (w *WalletService) GetWallet(ctx context.Context, userID uuid.UUID) (*db.Wallet, error) {
	found, err := w.store.GetWalletByUserID(ctx, userID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}
	return &found, nil
}

// GetOrCreateWallet returns the user's wallet, creating it if absent. Safe
// to call concurrently: the unique user_id constraint decides the winner and
// the loser re-reads.
func (w *WalletService) GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*db.Wallet, error) {
	found, err := w.store.GetWalletByUserID(ctx, userID)
	if err == nil {
		return &found, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	created, err := w.CreateWallet(ctx, w.store, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			// Lost the race to a concurrent creation
			existing, getErr := w.store.GetWalletByUserID(ctx, userID)
			if getErr != nil {
				return nil, getErr
			}
			return &existing, nil
		}
		return nil, err
	}
	return created, nil
}

// AdjustBalance applies a single credit or debit under q and returns the
// post-mutation row. Debits that would take the balance negative fail with
// ErrInsufficientFunds; the predicate and the mutation are one statement, so
// there is no window for a lost update.
func (w *WalletService) AdjustBalance(ctx context.Context, q db.Querier, walletID uuid.UUID, amount decimal.Decimal, direction BalanceDirection) (*db.Wallet, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	switch direction {
	case DirectionCredit:
		updated, err := q.CreditWalletBalance(ctx, db.CreditWalletBalanceParams{
			ID:      walletID,
			Balance: amount,
		})
		if err == sql.ErrNoRows {
			return nil, ErrWalletNotFound
		} else if err != nil {
			return nil, err
		}
		return &updated, nil

	case DirectionDebit:
		updated, err := q.DebitWalletBalance(ctx, db.DebitWalletBalanceParams{
			ID:      walletID,
			Balance: amount,
		})
		if err == sql.ErrNoRows {
			// Either the wallet is missing or the balance predicate failed
			if _, getErr := q.GetWalletForUpdate(ctx, walletID); getErr == sql.ErrNoRows {
				return nil, ErrWalletNotFound
			} else if getErr != nil {
				return nil, getErr
			}
			return nil, NewWalletError(ErrInsufficientFunds, walletID.String())
		} else if err != nil {
			return nil, err
		}
		return &updated, nil

	default:
		return nil, fmt.Errorf("invalid balance direction: %v", direction)
	}
}

// TransferResult carries both post-transfer wallets and the two ledger
// records written for a completed transfer.
type TransferResult struct {
	SenderWallet    db.Wallet
	RecipientWallet db.Wallet
	Outgoing        db.Transaction
	Incoming        db.Transaction
}

// Transfer moves amount from the sender's wallet to the wallet addressed by
// recipientWalletNumber. The debit, the credit and both transaction records
// commit as one database transaction or not at all.
func (w *WalletService) Transfer(ctx context.Context, senderUserID uuid.UUID, recipientWalletNumber string, amount decimal.Decimal) (*TransferResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var result TransferResult

	err := w.store.ExecTx(ctx, func(q db.Querier) error {
		sender, err := q.GetWalletByUserID(ctx, senderUserID)
		if err == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if err != nil {
			return err
		}

		recipient, err := q.GetWalletByWalletNumber(ctx, recipientWalletNumber)
		if err == sql.ErrNoRows {
			return ErrWalletNotFound
		} else if err != nil {
			return err
		}

		if sender.WalletNumber == recipient.WalletNumber {
			return ErrSelfTransfer
		}

		if !sender.IsActive || !recipient.IsActive {
			return ErrWalletInactive
		}

		// Lock both rows in a fixed order so two opposing transfers can't
		// deadlock each other.
		lockOrder := []uuid.UUID{sender.ID, recipient.ID}
		if lockOrder[1].String() < lockOrder[0].String() {
			lockOrder[0], lockOrder[1] = lockOrder[1], lockOrder[0]
		}
		for _, id := range lockOrder {
			locked, err := q.GetWalletForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if locked.ID == sender.ID {
				sender = locked
			} else {
				recipient = locked
			}
		}

		if sender.Balance.LessThan(amount) {
			return NewWalletError(ErrInsufficientFunds, sender.ID.String())
		}

		debited, err := w.AdjustBalance(ctx, q, sender.ID, amount, DirectionDebit)
		if err != nil {
			return err
		}

		credited, err := w.AdjustBalance(ctx, q, recipient.ID, amount, DirectionCredit)
		if err != nil {
			return err
		}

		// Both legs are recorded as already-final: a transfer only exists
		// once both sides are known to have succeeded.
		outgoing, err := q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:   sender.UserID,
			WalletID: sender.ID,
			Type:     db.TransactionTypeTransfer,
			Status:   db.TransactionStatusSuccess,
			Amount:   amount,
			RecipientWalletNumber: sql.NullString{
				String: recipient.WalletNumber,
				Valid:  true,
			},
			Description: sql.NullString{
				String: fmt.Sprintf("Transfer to wallet %s", recipient.WalletNumber),
				Valid:  true,
			},
		})
		if err != nil {
			return fmt.Errorf("create outgoing transaction record: %w", err)
		}

		incoming, err := q.CreateTransaction(ctx, db.CreateTransactionParams{
			UserID:   recipient.UserID,
			WalletID: recipient.ID,
			Type:     db.TransactionTypeDeposit,
			Status:   db.TransactionStatusSuccess,
			Amount:   amount,
			Description: sql.NullString{
				String: fmt.Sprintf("Transfer from wallet %s", sender.WalletNumber),
				Valid:  true,
			},
		})
		if err != nil {
			return fmt.Errorf("create incoming transaction record: %w", err)
		}

		result = TransferResult{
			SenderWallet:    *debited,
			RecipientWallet: *credited,
			Outgoing:        outgoing,
			Incoming:        incoming,
		}
		return nil
	})

	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		w.logger.Error(fmt.Sprintf("transfer failed: %v", err))
		return nil, fmt.Errorf("transfer could not be completed: %w", err)
	}

	w.logger.Info(fmt.Sprintf("transfer of %s from wallet %s to wallet %s completed",
		amount, result.SenderWallet.WalletNumber, result.RecipientWallet.WalletNumber))

	return &result, nil
}

// ListTransactions returns the user's transaction history, newest first.
func (w *WalletService) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]db.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return w.store.ListTransactionsByUserID(ctx, db.ListTransactionsByUserIDParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
}

func isDomainError(err error) bool {
	for _, known := range []error{
		ErrWalletNotFound,
		ErrInsufficientFunds,
		ErrSelfTransfer,
		ErrWalletInactive,
		ErrInvalidAmount,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
