package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/LedgerPay/LedgerPay-Backend/providers/identity"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/LedgerPay/LedgerPay-Backend/services/wallet"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type fakeStore struct {
	db.Querier

	users      map[uuid.UUID]db.User
	byGoogleID map[string]uuid.UUID
	wallets    map[uuid.UUID]db.Wallet

	createUserErr error
	missLookups   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uuid.UUID]db.User),
		byGoogleID: make(map[string]uuid.UUID),
		wallets:    make(map[uuid.UUID]db.Wallet),
	}
}

func (f *fakeStore) ExecTx(ctx context.Context, fq func(q db.Querier) error) error {
	return fq(f)
}

func (f *fakeStore) GetUserByGoogleID(ctx context.Context, googleID string) (db.User, error) {
	if f.missLookups > 0 {
		f.missLookups--
		return db.User{}, sql.ErrNoRows
	}
	id, ok := f.byGoogleID[googleID]
	if !ok {
		return db.User{}, sql.ErrNoRows
	}
	return f.users[id], nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id uuid.UUID) (db.User, error) {
	u, ok := f.users[id]
	if !ok {
		return db.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error) {
	if f.createUserErr != nil {
		err := f.createUserErr
		f.createUserErr = nil
		return db.User{}, err
	}
	u := db.User{
		ID:             uuid.New(),
		GoogleID:       arg.GoogleID,
		Email:          arg.Email,
		FullName:       arg.FullName,
		ProfilePicture: arg.ProfilePicture,
		IsActive:       true,
	}
	f.users[u.ID] = u
	f.byGoogleID[u.GoogleID] = u.ID
	return u, nil
}

func (f *fakeStore) CreateWallet(ctx context.Context, arg db.CreateWalletParams) (db.Wallet, error) {
	w := db.Wallet{
		ID:           uuid.New(),
		UserID:       arg.UserID,
		WalletNumber: arg.WalletNumber,
		Balance:      decimal.Zero,
		IsActive:     true,
	}
	f.wallets[w.ID] = w
	return w, nil
}

func newTestService(store db.TxStore) *UserService {
	logger := logging.NewLogger(nil)
	return NewUserService(store, logger, wallet.NewWalletService(store, logger))
}

func testIdentity() *identity.Identity {
	return &identity.Identity{
		GoogleID: "google-sub-123",
		Email:    "user@example.com",
		FullName: "Ada Obi",
	}
}

func TestGetOrCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("first sign-in creates the user and a wallet together", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		created, isNew, err := svc.GetOrCreateUser(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !isNew {
			t.Error("expected a new user")
		}
		if created.Email != "user@example.com" {
			t.Errorf("unexpected email %q", created.Email)
		}

		if len(store.wallets) != 1 {
			t.Fatalf("expected exactly one wallet, got %d", len(store.wallets))
		}
		for _, w := range store.wallets {
			if w.UserID != created.ID {
				t.Errorf("wallet bound to wrong user %v", w.UserID)
			}
		}
	})

	t.Run("second sign-in returns the same user", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		first, _, err := svc.GetOrCreateUser(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, isNew, err := svc.GetOrCreateUser(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isNew {
			t.Error("expected an existing user")
		}
		if second.ID != first.ID {
			t.Errorf("expected user %v, got %v", first.ID, second.ID)
		}
		if len(store.wallets) != 1 {
			t.Errorf("expected one wallet, got %d", len(store.wallets))
		}
	})

	t.Run("a concurrent first sign-in settles on the committed user", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		// The loser of the race misses the initial lookup, then hits the
		// unique constraint; the winner's row is visible on re-read.
		winner, _, err := svc.GetOrCreateUser(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		store.missLookups = 1
		store.createUserErr = &pq.Error{Code: db.DuplicateEntry}

		got, isNew, err := svc.GetOrCreateUser(ctx, &identity.Identity{GoogleID: "google-sub-123", Email: "user@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isNew {
			t.Error("loser of the race should not report a new user")
		}
		if got.ID != winner.ID {
			t.Errorf("expected the winner's user %v, got %v", winner.ID, got.ID)
		}
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		if _, err := svc.GetUserByID(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("inactive user", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store)

		created, _, err := svc.GetOrCreateUser(ctx, testIdentity())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u := store.users[created.ID]
		u.IsActive = false
		store.users[created.ID] = u

		if _, err := svc.GetUserByID(ctx, created.ID); !errors.Is(err, ErrUserInactive) {
			t.Errorf("expected ErrUserInactive, got %v", err)
		}
	})
}
