package apikey

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/LedgerPay/LedgerPay-Backend/services/monitoring/logging"
	"github.com/google/uuid"
)

const (
	// MaxActiveKeys caps the number of live keys a single user may hold.
	MaxActiveKeys = 5

	keySecretBytes = 16
	keyPrefixChars = 8
	secretScheme   = "sk_live_"
)

type APIKeyService struct {
	store  db.TxStore
	logger *logging.Logger
}

func NewAPIKeyService(store db.TxStore, logger *logging.Logger) *APIKeyService {
	return &APIKeyService{
		store:  store,
		logger: logger,
	}
}

// ParseExpiry converts a compact lifetime spec like "12H", "7D", "1M" or
// "1Y" into an absolute expiry instant. Months count as 30 days and years
// as 365 days.
func ParseExpiry(spec string, now time.Time) (time.Time, error) {
	spec = strings.ToUpper(strings.TrimSpace(spec))
	if len(spec) < 2 {
		return time.Time{}, ErrInvalidExpiry
	}

	value, err := strconv.Atoi(spec[:len(spec)-1])
	if err != nil || value <= 0 {
		return time.Time{}, ErrInvalidExpiry
	}

	switch spec[len(spec)-1] {
	case 'H':
		return now.Add(time.Duration(value) * time.Hour), nil
	case 'D':
		return now.Add(time.Duration(value) * 24 * time.Hour), nil
	case 'M':
		return now.Add(time.Duration(value) * 30 * 24 * time.Hour), nil
	case 'Y':
		return now.Add(time.Duration(value) * 365 * 24 * time.Hour), nil
	default:
		return time.Time{}, ErrInvalidExpiry
	}
}

// generateSecret builds the plaintext credential. Only its SHA-256 digest
// is ever persisted; the plaintext exists for the duration of the issuing
// request and no longer.
func generateSecret() (plaintext, hash, prefix string, err error) {
	raw := make([]byte, keySecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", "", fmt.Errorf("generating key material: %w", err)
	}

	plaintext = secretScheme + hex.EncodeToString(raw)
	return plaintext, HashSecret(plaintext), plaintext[:keyPrefixChars], nil
}

// HashSecret is the deterministic digest used both at issue time and on
// every lookup.
func HashSecret(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// IssueKey mints a new API key for the user. The returned string is the
// plaintext secret, shown exactly once; afterwards only the hash remains.
func (s *APIKeyService) IssueKey(ctx context.Context, userID uuid.UUID, name string, permissions []string, expirySpec string) (*db.ApiKey, string, error) {
	normalized, err := NormalizePermissions(permissions)
	if err != nil {
		return nil, "", err
	}

	expiresAt, err := ParseExpiry(expirySpec, time.Now())
	if err != nil {
		return nil, "", err
	}

	var key db.ApiKey
	var plaintext string
	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		created, plain, err := s.issueKeyTx(ctx, q, userID, name, normalized, expiresAt)
		if err != nil {
			return err
		}
		key = *created
		plaintext = plain
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info(fmt.Sprintf("issued API key %v (%s) for user %v", key.ID, key.Name, userID))
	return &key, plaintext, nil
}

// issueKeyTx runs the limit check and the insert under q so callers can
// bundle them with other statements, as rollover does.
func (s *APIKeyService) issueKeyTx(ctx context.Context, q db.Querier, userID uuid.UUID, name string, permissions []string, expiresAt time.Time) (*db.ApiKey, string, error) {
	active, err := q.CountActiveAPIKeys(ctx, db.CountActiveAPIKeysParams{
		UserID:    userID,
		ExpiresAt: time.Now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("counting active keys: %w", err)
	}
	if active >= MaxActiveKeys {
		return nil, "", ErrKeyLimitReached
	}

	plaintext, hash, prefix, err := generateSecret()
	if err != nil {
		return nil, "", err
	}

	created, err := q.CreateAPIKey(ctx, db.CreateAPIKeyParams{
		UserID:      userID,
		Name:        name,
		KeyPrefix:   prefix,
		KeyHash:     hash,
		Permissions: permissions,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, "", err
	}
	return &created, plaintext, nil
}

// VerifyKey resolves a presented plaintext secret to its stored key. An
// unknown, revoked, deactivated or expired key all fail the same way; the
// caller learns nothing about which. A successful lookup stamps
// last_used_at, best effort.
func (s *APIKeyService) VerifyKey(ctx context.Context, plaintext string) (*db.ApiKey, error) {
	found, err := s.store.GetAPIKeyByHash(ctx, HashSecret(plaintext))
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	} else if err != nil {
		return nil, err
	}

	if found.IsRevoked || !found.IsActive {
		return nil, ErrKeyNotFound
	}
	if time.Now().After(found.ExpiresAt) {
		return nil, ErrKeyNotFound
	}

	if err := s.store.UpdateAPIKeyLastUsed(ctx, db.UpdateAPIKeyLastUsedParams{
		ID:         found.ID,
		LastUsedAt: time.Now(),
	}); err != nil {
		s.logger.Error(fmt.Sprintf("stamping last_used_at for key %v: %v", found.ID, err))
	}

	return &found, nil
}

// ListKeys returns every key the user owns, newest first, live or not.
func (s *APIKeyService) ListKeys(ctx context.Context, userID uuid.UUID) ([]db.ApiKey, error) {
	return s.store.ListAPIKeysByUserID(ctx, userID)
}

// RevokeKey permanently disables the key. Revoking an already revoked key
// succeeds; the end state is identical.
func (s *APIKeyService) RevokeKey(ctx context.Context, keyID, userID uuid.UUID) (*db.ApiKey, error) {
	revoked, err := s.store.RevokeAPIKey(ctx, db.RevokeAPIKeyParams{
		ID:     keyID,
		UserID: userID,
	})
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	} else if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("revoked API key %v for user %v", keyID, userID))
	return &revoked, nil
}

// RolloverKey replaces an expired key with a fresh one that inherits the
// old key's name and permission set. Keys that have not yet expired cannot
// be rolled over, revoke and recreate instead. The revoke of the old key
// and the issue of its replacement commit together.
func (s *APIKeyService) RolloverKey(ctx context.Context, keyID, userID uuid.UUID, expirySpec string) (*db.ApiKey, string, error) {
	expiresAt, err := ParseExpiry(expirySpec, time.Now())
	if err != nil {
		return nil, "", err
	}

	var replacement db.ApiKey
	var plaintext string
	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		old, err := q.GetAPIKeyByID(ctx, db.GetAPIKeyByIDParams{
			ID:     keyID,
			UserID: userID,
		})
		if err == sql.ErrNoRows {
			return ErrKeyNotFound
		} else if err != nil {
			return err
		}

		if time.Now().Before(old.ExpiresAt) {
			return ErrKeyNotExpired
		}

		if _, err := q.RevokeAPIKey(ctx, db.RevokeAPIKeyParams{
			ID:     old.ID,
			UserID: userID,
		}); err != nil {
			return fmt.Errorf("revoking expired key: %w", err)
		}

		created, plain, err := s.issueKeyTx(ctx, q, userID, old.Name, old.Permissions, expiresAt)
		if err != nil {
			return err
		}
		replacement = *created
		plaintext = plain
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info(fmt.Sprintf("rolled over API key %v into %v for user %v", keyID, replacement.ID, userID))
	return &replacement, plaintext, nil
}
