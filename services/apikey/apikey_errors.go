package apikey

import "fmt"

var (
	ErrKeyNotFound       = fmt.Errorf("API key not found")
	ErrKeyLimitReached   = fmt.Errorf("maximum of 5 active API keys allowed, revoke existing keys to create new ones")
	ErrInvalidPermission = fmt.Errorf("invalid permission, allowed values are deposit, transfer and read")
	ErrInvalidExpiry     = fmt.Errorf("invalid expiry format, use a number followed by H, D, M or Y")
	ErrKeyNotExpired     = fmt.Errorf("the specified API key is not expired")
	ErrPermissionDenied  = fmt.Errorf("API key does not have the required permission")
	ErrUnauthenticated   = fmt.Errorf("no credential presented")
)
