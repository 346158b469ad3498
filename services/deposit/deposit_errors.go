package deposit

import "fmt"

var (
	ErrInvalidSignature     = fmt.Errorf("webhook signature verification failed")
	ErrMissingReference     = fmt.Errorf("notification carries no transaction reference")
	ErrTransactionNotFound  = fmt.Errorf("no deposit found for this reference")
	ErrAmountMismatch       = fmt.Errorf("settled amount does not match the initiated amount")
	ErrForbidden            = fmt.Errorf("this deposit belongs to another user")
	ErrProcessorUnavailable = fmt.Errorf("payment processor could not be reached")
	ErrInvalidAmount        = fmt.Errorf("deposit amount must be greater than zero")
	ErrAmountTooLarge       = fmt.Errorf("deposit amount exceeds the allowed maximum")
	ErrReferenceExhausted   = fmt.Errorf("could not generate a unique deposit reference")
)
