package apistrings

const (
	/// Basic User Related Strings
	UserNotFound     = "user or account does not exist"
	UserInactive     = "this account has been deactivated"
	InvalidAuthState = "invalid or expired authorization state, please restart sign-in"
	InvalidAuthCode  = "could not verify the authorization code with the identity provider"

	/// Core Functionality Error
	ServerError      = "a server error occurred, please try again later"
	UpstreamError    = "the payment processor could not be reached, please try again later"
	PermissionDenied = "the presented API key does not allow this operation"

	/// Wallet Related Strings
	UserNoWallet         = "user does not have a wallet created"
	WalletNotFound       = "recipient wallet does not exist"
	InvalidAmountInput   = "check 'amount' key, must be a positive decimal string"
	InvalidTransferInput = "check 'wallet_number' or 'amount' keys, invalid request"
	SelfTransfer         = "cannot transfer to your own wallet"
	InsufficientFunds    = "insufficient wallet balance for this transfer"
	AmountTooLarge       = "deposit amount exceeds the allowed maximum"

	/// Deposit Related Strings
	DepositNotFound   = "no deposit found for this reference"
	DepositNotYours   = "this deposit belongs to another user"
	InvalidSignature  = "webhook signature verification failed"
	AmountMismatch    = "settled amount does not match the initiated amount"
	ReferenceConflict = "could not allocate a unique deposit reference, please retry"

	/// API Key Related Strings
	KeyNotFound       = "API key not found"
	KeyLimitReached   = "maximum of 5 active API keys allowed, revoke existing keys to create new ones"
	KeyNotExpired     = "only expired API keys can be rolled over"
	InvalidKeyInput   = "check 'name', 'permissions' or 'expiry' keys, invalid request"
	InvalidPermission = "invalid permission, allowed values are deposit, transfer and read"
	InvalidExpiry     = "invalid expiry format, use a number followed by H, D, M or Y"
)
