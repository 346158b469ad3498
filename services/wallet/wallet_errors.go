package wallet

import "fmt"

var (
	ErrWalletNotFound        = fmt.Errorf("wallet not found")
	ErrWalletNumberExhausted = fmt.Errorf("could not generate a unique wallet number")
	ErrInsufficientFunds     = fmt.Errorf("insufficient balance in wallet")
	ErrSelfTransfer          = fmt.Errorf("cannot transfer to your own wallet")
	ErrWalletInactive        = fmt.Errorf("wallet is inactive")
	ErrInvalidAmount         = fmt.Errorf("amount must be greater than zero")
)

type WalletError struct {
	ErrorObj error
	WalletID string
	Other    []error
}

func (w *WalletError) Error() string {
	return w.ErrorObj.Error()
}

func (w *WalletError) Unwrap() error {
	return w.ErrorObj
}

func NewWalletError(err error, walletID string, e ...error) *WalletError {
	return &WalletError{
		ErrorObj: err,
		WalletID: walletID,
		Other:    e,
	}
}
