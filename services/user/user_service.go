package user

import (
	"context"
	"database/sql"
	"fmt"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/LedgerPay/LedgerPay-Backend/providers/identity"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/LedgerPay/LedgerPay-Backend/services/wallet"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserService struct {
	store        db.TxStore
	logger       *logging.Logger
	walletClient *wallet.WalletService
}

func NewUserService(store db.TxStore, logger *logging.Logger, walletClient *wallet.WalletService) *UserService {
	return &UserService{
		store:        store,
		logger:       logger,
		walletClient: walletClient,
	}
}

// GetOrCreateUser maps a verified external identity to exactly one user and
// exactly one wallet. The wallet is created eagerly, in the same database
// transaction as the user row, so an active user can never be walletless.
// The bool reports whether a new user was created.
func (u *UserService) GetOrCreateUser(ctx context.Context, id *identity.Identity) (*db.User, bool, error) {
	existing, err := u.store.GetUserByGoogleID(ctx, id.GoogleID)
	if err == nil {
		return &existing, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	var created db.User
	err = u.store.ExecTx(ctx, func(q db.Querier) error {
		newUser, err := q.CreateUser(ctx, db.CreateUserParams{
			GoogleID:       id.GoogleID,
			Email:          id.Email,
			FullName:       id.FullName,
			ProfilePicture: id.ProfilePicture,
		})
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
				// 23505 --> Violated Unique Constraints
				return ErrUserAlreadyExists
			}
			return err
		}

		if _, err := u.walletClient.CreateWallet(ctx, q, newUser.ID); err != nil {
			return fmt.Errorf("create wallet for user %v: %w", newUser.ID, err)
		}

		created = newUser
		return nil
	})
	if err != nil {
		if err == ErrUserAlreadyExists {
			// Concurrent first login with the same identity; the earlier
			// commit wins and we return its user.
			settled, getErr := u.store.GetUserByGoogleID(ctx, id.GoogleID)
			if getErr == nil {
				return &settled, false, nil
			}
			return nil, false, err
		}
		return nil, false, err
	}

	u.logger.Info(fmt.Sprintf("created user %v with wallet", created.ID))
	return &created, true, nil
}

// GetUserByID resolves a session token's subject to a user record.
func (u *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*db.User, error) {
	found, err := u.store.GetUserByID(ctx, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	if !found.IsActive {
		return nil, ErrUserInactive
	}
	return &found, nil
}
