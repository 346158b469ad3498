package models

import (
	"time"

	"github.com/google/uuid"
)

type BalanceResponse struct {
	WalletNumber string `json:"wallet_number"`
	Balance      string `json:"balance"`
	Currency     string `json:"currency"`
}

type WalletResponse struct {
	ID           uuid.UUID `json:"id"`
	WalletNumber string    `json:"wallet_number"`
	Balance      string    `json:"balance"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type DepositResponse struct {
	Reference        string `json:"reference"`
	Status           string `json:"status"`
	Amount           string `json:"amount"`
	AuthorizationURL string `json:"authorization_url"`
}

type TransferRequest struct {
	WalletNumber string `json:"wallet_number" binding:"required,len=13,numeric"`
	Amount       string `json:"amount" binding:"required"`
}

type TransferResponse struct {
	Reference       string `json:"reference,omitempty"`
	Amount          string `json:"amount"`
	RecipientWallet string `json:"recipient_wallet"`
	NewBalance      string `json:"new_balance"`
	Status          string `json:"status"`
}

type TransactionCollectionResponse []TransactionResponse

type TransactionResponse struct {
	ID                    uuid.UUID `json:"id"`
	Type                  string    `json:"type"`
	Status                string    `json:"status"`
	Amount                string    `json:"amount"`
	Reference             string    `json:"reference,omitempty"`
	RecipientWalletNumber string    `json:"recipient_wallet_number,omitempty"`
	Description           string    `json:"description,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type DepositStatusResponse struct {
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	Amount    string    `json:"amount"`
	Outcome   string    `json:"outcome,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
