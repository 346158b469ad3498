package deposit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/LedgerPay/LedgerPay-Backend/providers/fiat"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/LedgerPay/LedgerPay-Backend/services/wallet"
	"github.com/LedgerPay/LedgerPay-Backend/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type fakeStore struct {
	db.Querier

	users        map[uuid.UUID]db.User
	wallets      map[uuid.UUID]db.Wallet
	byUser       map[uuid.UUID]uuid.UUID
	transactions map[string]db.Transaction

	createTransactionErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uuid.UUID]db.User),
		wallets:      make(map[uuid.UUID]db.Wallet),
		byUser:       make(map[uuid.UUID]uuid.UUID),
		transactions: make(map[string]db.Transaction),
	}
}

func (f *fakeStore) ExecTx(ctx context.Context, fq func(q db.Querier) error) error {
	return fq(f)
}

func (f *fakeStore) addUserWithWallet(balance decimal.Decimal) (db.User, db.Wallet) {
	u := db.User{ID: uuid.New(), Email: "owner@example.com", IsActive: true}
	w := db.Wallet{
		ID:           uuid.New(),
		UserID:       u.ID,
		WalletNumber: "1000000000001",
		Balance:      balance,
		IsActive:     true,
	}
	f.users[u.ID] = u
	f.wallets[w.ID] = w
	f.byUser[u.ID] = w.ID
	return u, w
}

func (f *fakeStore) addPendingDeposit(userID, walletID uuid.UUID, reference string, amount decimal.Decimal) db.Transaction {
	txn := db.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		WalletID:  walletID,
		Type:      db.TransactionTypeDeposit,
		Status:    db.TransactionStatusPending,
		Amount:    amount,
		Reference: sql.NullString{String: reference, Valid: true},
	}
	f.transactions[reference] = txn
	return txn
}

func (f *fakeStore) GetUserByID(ctx context.Context, id uuid.UUID) (db.User, error) {
	u, ok := f.users[id]
	if !ok {
		return db.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) GetWalletByUserID(ctx context.Context, userID uuid.UUID) (db.Wallet, error) {
	id, ok := f.byUser[userID]
	if !ok {
		return db.Wallet{}, sql.ErrNoRows
	}
	return f.wallets[id], nil
}

func (f *fakeStore) GetWalletForUpdate(ctx context.Context, id uuid.UUID) (db.Wallet, error) {
	w, ok := f.wallets[id]
	if !ok {
		return db.Wallet{}, sql.ErrNoRows
	}
	return w, nil
}

func (f *fakeStore) CreditWalletBalance(ctx context.Context, arg db.CreditWalletBalanceParams) (db.Wallet, error) {
	w, ok := f.wallets[arg.ID]
	if !ok {
		return db.Wallet{}, sql.ErrNoRows
	}
	w.Balance = w.Balance.Add(arg.Balance)
	f.wallets[arg.ID] = w
	return w, nil
}

func (f *fakeStore) CreateTransaction(ctx context.Context, arg db.CreateTransactionParams) (db.Transaction, error) {
	if f.createTransactionErr != nil {
		return db.Transaction{}, f.createTransactionErr
	}
	txn := db.Transaction{
		ID:          uuid.New(),
		UserID:      arg.UserID,
		WalletID:    arg.WalletID,
		Type:        arg.Type,
		Status:      arg.Status,
		Amount:      arg.Amount,
		Reference:   arg.Reference,
		Description: arg.Description,
	}
	f.transactions[arg.Reference.String] = txn
	return txn, nil
}

func (f *fakeStore) GetTransactionByReference(ctx context.Context, reference sql.NullString) (db.Transaction, error) {
	txn, ok := f.transactions[reference.String]
	if !ok {
		return db.Transaction{}, sql.ErrNoRows
	}
	return txn, nil
}

func (f *fakeStore) GetTransactionByReferenceForUpdate(ctx context.Context, reference sql.NullString) (db.Transaction, error) {
	return f.GetTransactionByReference(ctx, reference)
}

func (f *fakeStore) UpdateTransactionStatus(ctx context.Context, arg db.UpdateTransactionStatusParams) (db.Transaction, error) {
	for ref, txn := range f.transactions {
		if txn.ID == arg.ID {
			txn.Status = arg.Status
			txn.Description = arg.Description
			txn.UpdatedAt = time.Now()
			f.transactions[ref] = txn
			return txn, nil
		}
	}
	return db.Transaction{}, sql.ErrNoRows
}

// fakeProcessor stands in for Paystack. Signature checks and verification
// lookups are scripted per test.
type fakeProcessor struct {
	signatureValid bool
	initializeFunc func(email string, amountKobo int64, reference string) (string, error)
	verifyFunc     func(reference string) (string, int64, error)

	lastInitAmountKobo int64
}

func (p *fakeProcessor) InitializeTransaction(email string, amountKobo int64, reference string) (string, error) {
	p.lastInitAmountKobo = amountKobo
	if p.initializeFunc != nil {
		return p.initializeFunc(email, amountKobo, reference)
	}
	return "https://checkout.example.com/" + reference, nil
}

func (p *fakeProcessor) VerifyTransaction(reference string) (string, int64, error) {
	if p.verifyFunc != nil {
		return p.verifyFunc(reference)
	}
	return fiat.StatusSuccess, 0, nil
}

func (p *fakeProcessor) VerifyWebhookSignature(payload []byte, signature string) bool {
	return p.signatureValid
}

func newTestService(store *fakeStore, processor Processor) *DepositService {
	logger := logging.NewLogger(nil)
	return NewDepositService(
		store,
		logger,
		wallet.NewWalletService(store, logger),
		processor,
		nil,
		&utils.Config{MaxDepositAmount: "1000000"},
	)
}

func successWebhook(reference string, amountKobo int64) []byte {
	payload, _ := json.Marshal(fiat.WebhookEvent{
		Event: fiat.EventChargeSuccess,
		Data: fiat.WebhookData{
			Reference: reference,
			Amount:    amountKobo,
			Status:    fiat.StatusSuccess,
		},
	})
	return payload
}

func TestInitiateDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("records a pending transaction with a fresh reference", func(t *testing.T) {
		store := newFakeStore()
		processor := &fakeProcessor{}
		svc := newTestService(store, processor)
		owner, _ := store.addUserWithWallet(decimal.Zero)

		intent, err := svc.InitiateDeposit(ctx, owner.ID, owner.Email, decimal.NewFromInt(1500))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ref := intent.Transaction.Reference.String
		if !strings.HasPrefix(ref, referencePrefix) || len(ref) != len(referencePrefix)+2*referenceBytes {
			t.Errorf("unexpected reference format: %q", ref)
		}
		if intent.Transaction.Status != db.TransactionStatusPending {
			t.Errorf("expected pending status, got %s", intent.Transaction.Status)
		}
		if processor.lastInitAmountKobo != 150000 {
			t.Errorf("expected 150000 kobo sent to processor, got %d", processor.lastInitAmountKobo)
		}
		if intent.AuthorizationURL == "" {
			t.Error("expected a checkout URL")
		}
	})

	t.Run("rejects non-positive and oversized amounts", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, &fakeProcessor{})
		owner, _ := store.addUserWithWallet(decimal.Zero)

		if _, err := svc.InitiateDeposit(ctx, owner.ID, owner.Email, decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
		if _, err := svc.InitiateDeposit(ctx, owner.ID, owner.Email, decimal.NewFromInt(2_000_000)); !errors.Is(err, ErrAmountTooLarge) {
			t.Errorf("expected ErrAmountTooLarge, got %v", err)
		}
	})

	t.Run("reports a conflict when the reference insert hits the unique constraint", func(t *testing.T) {
		store := newFakeStore()
		store.createTransactionErr = &pq.Error{Code: "23505"}
		svc := newTestService(store, &fakeProcessor{})
		owner, _ := store.addUserWithWallet(decimal.Zero)

		if _, err := svc.InitiateDeposit(ctx, owner.ID, owner.Email, decimal.NewFromInt(100)); !errors.Is(err, ErrReferenceExhausted) {
			t.Fatalf("expected ErrReferenceExhausted, got %v", err)
		}
	})

	t.Run("does not record anything when the processor fails", func(t *testing.T) {
		store := newFakeStore()
		processor := &fakeProcessor{
			initializeFunc: func(string, int64, string) (string, error) {
				return "", fmt.Errorf("connection refused")
			},
		}
		svc := newTestService(store, processor)
		owner, _ := store.addUserWithWallet(decimal.Zero)

		if _, err := svc.InitiateDeposit(ctx, owner.ID, owner.Email, decimal.NewFromInt(100)); !errors.Is(err, ErrProcessorUnavailable) {
			t.Fatalf("expected ErrProcessorUnavailable, got %v", err)
		}
		if len(store.transactions) != 0 {
			t.Errorf("expected no transactions, got %d", len(store.transactions))
		}
	})
}

func TestReconcileFromNotification(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(1500)

	t.Run("rejects a bad signature before reading the payload", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, &fakeProcessor{signatureValid: false})

		_, err := svc.ReconcileFromNotification(ctx, successWebhook("txn_deadbeef", 150000), "bad")
		if !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("credits the wallet exactly once", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, &fakeProcessor{signatureValid: true})
		owner, w := store.addUserWithWallet(decimal.Zero)
		store.addPendingDeposit(owner.ID, w.ID, "txn_deadbeef", amount)

		payload := successWebhook("txn_deadbeef", 150000)

		first, err := svc.ReconcileFromNotification(ctx, payload, "sig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Outcome != OutcomeCredited {
			t.Fatalf("expected OutcomeCredited, got %s", first.Outcome)
		}
		if got := store.wallets[w.ID].Balance; !got.Equal(amount) {
			t.Errorf("expected balance %s, got %s", amount, got)
		}

		// Duplicate delivery of the same webhook
		second, err := svc.ReconcileFromNotification(ctx, payload, "sig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Outcome != OutcomeAlreadyProcessed {
			t.Fatalf("expected OutcomeAlreadyProcessed, got %s", second.Outcome)
		}
		if got := store.wallets[w.ID].Balance; !got.Equal(amount) {
			t.Errorf("duplicate delivery changed the balance to %s", got)
		}
	})

	t.Run("marks a mismatched settlement failed without crediting", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, &fakeProcessor{signatureValid: true})
		owner, w := store.addUserWithWallet(decimal.Zero)
		store.addPendingDeposit(owner.ID, w.ID, "txn_deadbeef", amount)

		result, err := svc.ReconcileFromNotification(ctx, successWebhook("txn_deadbeef", 99999), "sig")
		if !errors.Is(err, ErrAmountMismatch) {
			t.Fatalf("expected ErrAmountMismatch, got %v", err)
		}
		if result == nil {
			t.Fatal("expected the flipped transaction alongside the error")
		}
		if result.Outcome != OutcomeAmountMismatch {
			t.Fatalf("expected OutcomeAmountMismatch, got %s", result.Outcome)
		}
		if result.Transaction.Status != db.TransactionStatusFailed {
			t.Errorf("expected failed status, got %s", result.Transaction.Status)
		}
		if got := store.wallets[w.ID].Balance; !got.IsZero() {
			t.Errorf("mismatched settlement credited %s", got)
		}
	})

	t.Run("ignores events other than a successful charge", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, &fakeProcessor{signatureValid: true})

		payload, _ := json.Marshal(fiat.WebhookEvent{Event: "transfer.success"})
		result, err := svc.ReconcileFromNotification(ctx, payload, "sig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != OutcomeIgnored {
			t.Errorf("expected OutcomeIgnored, got %s", result.Outcome)
		}
	})

	t.Run("fails on an unknown reference", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, &fakeProcessor{signatureValid: true})

		_, err := svc.ReconcileFromNotification(ctx, successWebhook("txn_missing", 150000), "sig")
		if !errors.Is(err, ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestReconcileFromVerification(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(1500)

	setup := func(processor *fakeProcessor) (*fakeStore, *DepositService, db.User, db.Wallet) {
		store := newFakeStore()
		svc := newTestService(store, processor)
		owner, w := store.addUserWithWallet(decimal.Zero)
		store.addPendingDeposit(owner.ID, w.ID, "txn_deadbeef", amount)
		return store, svc, owner, w
	}

	t.Run("credits when the processor confirms the settlement", func(t *testing.T) {
		processor := &fakeProcessor{
			verifyFunc: func(string) (string, int64, error) { return fiat.StatusSuccess, 150000, nil },
		}
		store, svc, owner, w := setup(processor)

		result, err := svc.ReconcileFromVerification(ctx, owner.ID, "txn_deadbeef")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != OutcomeCredited {
			t.Fatalf("expected OutcomeCredited, got %s", result.Outcome)
		}
		if got := store.wallets[w.ID].Balance; !got.Equal(amount) {
			t.Errorf("expected balance %s, got %s", amount, got)
		}
	})

	t.Run("surfaces a mismatched settlement as an error and marks it failed", func(t *testing.T) {
		processor := &fakeProcessor{
			verifyFunc: func(string) (string, int64, error) { return fiat.StatusSuccess, 99999, nil },
		}
		store, svc, owner, w := setup(processor)

		result, err := svc.ReconcileFromVerification(ctx, owner.ID, "txn_deadbeef")
		if !errors.Is(err, ErrAmountMismatch) {
			t.Fatalf("expected ErrAmountMismatch, got %v", err)
		}
		if result == nil || result.Outcome != OutcomeAmountMismatch {
			t.Fatalf("expected OutcomeAmountMismatch alongside the error, got %+v", result)
		}
		if got := store.transactions["txn_deadbeef"].Status; got != db.TransactionStatusFailed {
			t.Errorf("expected failed status, got %s", got)
		}
		if got := store.wallets[w.ID].Balance; !got.IsZero() {
			t.Errorf("mismatched settlement credited %s", got)
		}
	})

	t.Run("marks failed when the processor reports failure", func(t *testing.T) {
		processor := &fakeProcessor{
			verifyFunc: func(string) (string, int64, error) { return fiat.StatusFailed, 0, nil },
		}
		_, svc, owner, _ := setup(processor)

		result, err := svc.ReconcileFromVerification(ctx, owner.ID, "txn_deadbeef")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != OutcomeMarkedFailed {
			t.Fatalf("expected OutcomeMarkedFailed, got %s", result.Outcome)
		}
	})

	t.Run("leaves an in-flight settlement pending", func(t *testing.T) {
		processor := &fakeProcessor{
			verifyFunc: func(string) (string, int64, error) { return "pending", 0, nil },
		}
		_, svc, owner, _ := setup(processor)

		result, err := svc.ReconcileFromVerification(ctx, owner.ID, "txn_deadbeef")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != OutcomePending {
			t.Fatalf("expected OutcomePending, got %s", result.Outcome)
		}
	})

	t.Run("refuses another user's reference", func(t *testing.T) {
		_, svc, _, _ := setup(&fakeProcessor{})

		_, err := svc.ReconcileFromVerification(ctx, uuid.New(), "txn_deadbeef")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("surfaces processor unavailability", func(t *testing.T) {
		processor := &fakeProcessor{
			verifyFunc: func(string) (string, int64, error) { return "", 0, fmt.Errorf("timeout") },
		}
		_, svc, owner, _ := setup(processor)

		_, err := svc.ReconcileFromVerification(ctx, owner.ID, "txn_deadbeef")
		if !errors.Is(err, ErrProcessorUnavailable) {
			t.Fatalf("expected ErrProcessorUnavailable, got %v", err)
		}
	})
}

func TestGetDepositStatus(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	svc := newTestService(store, &fakeProcessor{})
	owner, w := store.addUserWithWallet(decimal.Zero)
	store.addPendingDeposit(owner.ID, w.ID, "txn_deadbeef", decimal.NewFromInt(100))

	t.Run("returns the ledger state to the owner", func(t *testing.T) {
		txn, err := svc.GetDepositStatus(ctx, owner.ID, "txn_deadbeef")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if txn.Status != db.TransactionStatusPending {
			t.Errorf("expected pending, got %s", txn.Status)
		}
	})

	t.Run("hides other users' deposits", func(t *testing.T) {
		if _, err := svc.GetDepositStatus(ctx, uuid.New(), "txn_deadbeef"); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("404s an unknown reference", func(t *testing.T) {
		if _, err := svc.GetDepositStatus(ctx, owner.ID, "txn_missing"); !errors.Is(err, ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}
