package models

import (
	db "github.com/LedgerPay/LedgerPay-Backend/db/sqlc"
)

const ledgerCurrency = "NGN"

func ToBalanceResponse(rhs *db.Wallet) *BalanceResponse {
	return &BalanceResponse{
		WalletNumber: rhs.WalletNumber,
		Balance:      rhs.Balance.StringFixed(2),
		Currency:     ledgerCurrency,
	}
}

func ToWalletResponse(rhs *db.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:           rhs.ID,
		WalletNumber: rhs.WalletNumber,
		Balance:      rhs.Balance.StringFixed(2),
		IsActive:     rhs.IsActive,
		CreatedAt:    rhs.CreatedAt,
		UpdatedAt:    rhs.UpdatedAt,
	}
}

func ToTransactionResponse(rhs *db.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                    rhs.ID,
		Type:                  string(rhs.Type),
		Status:                string(rhs.Status),
		Amount:                rhs.Amount.StringFixed(2),
		Reference:             rhs.Reference.String,
		RecipientWalletNumber: rhs.RecipientWalletNumber.String,
		Description:           rhs.Description.String,
		CreatedAt:             rhs.CreatedAt,
		UpdatedAt:             rhs.UpdatedAt,
	}
}

func ToTransactionCollectionResponse(rows []db.Transaction) TransactionCollectionResponse {
	response := make(TransactionCollectionResponse, len(rows))
	for i, row := range rows {
		response[i] = *ToTransactionResponse(&row)
	}
	return response
}

func ToDepositStatusResponse(rhs *db.Transaction, outcome string) *DepositStatusResponse {
	return &DepositStatusResponse{
		Reference: rhs.Reference.String,
		Status:    string(rhs.Status),
		Amount:    rhs.Amount.StringFixed(2),
		Outcome:   outcome,
		UpdatedAt: rhs.UpdatedAt,
	}
}
