package models

import (
	"time"

	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
	"github.com/google/uuid"
)

type CreateKeyRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
	Expiry      string   `json:"expiry" binding:"required,expiry"`
}

type RolloverKeyRequest struct {
	KeyID  uuid.UUID `json:"key_id" binding:"required"`
	Expiry string    `json:"expiry" binding:"required,expiry"`
}

type APIKeyCollectionResponse []APIKeyResponse

// APIKeyResponse never carries the secret or its hash; the prefix is the
// only identifying fragment a client sees after issuance.
type APIKeyResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	KeyPrefix   string     `json:"key_prefix"`
	Permissions []string   `json:"permissions"`
	ExpiresAt   time.Time  `json:"expires_at"`
	IsActive    bool       `json:"is_active"`
	IsRevoked   bool       `json:"is_revoked"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
}

// CreatedKeyResponse is returned exactly once, at issue or rollover time,
// and is the only place the plaintext secret ever appears.
type CreatedKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

func ToAPIKeyResponse(rhs *db.ApiKey) *APIKeyResponse {
	resp := &APIKeyResponse{
		ID:          rhs.ID,
		Name:        rhs.Name,
		KeyPrefix:   rhs.KeyPrefix,
		Permissions: rhs.Permissions,
		ExpiresAt:   rhs.ExpiresAt,
		IsActive:    rhs.IsActive,
		IsRevoked:   rhs.IsRevoked,
		CreatedAt:   rhs.CreatedAt,
	}
	if rhs.LastUsedAt.Valid {
		lastUsed := rhs.LastUsedAt.Time
		resp.LastUsedAt = &lastUsed
	}
	return resp
}

func ToAPIKeyCollectionResponse(rows []db.ApiKey) APIKeyCollectionResponse {
	response := make(APIKeyCollectionResponse, len(rows))
	for i, row := range rows {
		response[i] = *ToAPIKeyResponse(&row)
	}
	return response
}

func ToCreatedKeyResponse(rhs *db.ApiKey, plaintext string) *CreatedKeyResponse {
	return &CreatedKeyResponse{
		APIKeyResponse: *ToAPIKeyResponse(rhs),
		Key:            plaintext,
	}
}
