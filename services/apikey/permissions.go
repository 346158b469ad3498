package apikey

import (
	"github.com/google/uuid"
)

type Permission string

const (
	PermissionDeposit  Permission = "deposit"
	PermissionTransfer Permission = "transfer"
	PermissionRead     Permission = "read"
)

var allPermissions = map[Permission]bool{
	PermissionDeposit:  true,
	PermissionTransfer: true,
	PermissionRead:     true,
}

// NormalizePermissions validates that every requested permission is a known
// one and drops duplicates, preserving first-seen order.
func NormalizePermissions(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, ErrInvalidPermission
	}

	seen := make(map[string]bool, len(requested))
	normalized := make([]string, 0, len(requested))
	for _, p := range requested {
		if !allPermissions[Permission(p)] {
			return nil, ErrInvalidPermission
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		normalized = append(normalized, p)
	}
	return normalized, nil
}

// Credential is the two-variant credential the access gate resolves for a
// request: a full session identity, or an API key scoped to a permission
// set. There is deliberately no nullable-with-fallback third state.
type Credential interface {
	allows(p Permission) bool
}

// SessionIdentity is the session-token path; it grants every permission.
type SessionIdentity struct {
	UserID uuid.UUID
}

func (SessionIdentity) allows(Permission) bool { return true }

// ScopedKey is the API-key path; only its stored permission set is granted.
type ScopedKey struct {
	KeyID       uuid.UUID
	UserID      uuid.UUID
	Permissions []string
}

func (k ScopedKey) allows(p Permission) bool {
	for _, have := range k.Permissions {
		if Permission(have) == p {
			return true
		}
	}
	return false
}

// Authorize rejects the operation unless the credential carries the
// required permission.
func Authorize(cred Credential, required Permission) error {
	if cred == nil {
		return ErrUnauthenticated
	}
	if !cred.allows(required) {
		return ErrPermissionDenied
	}
	return nil
}
