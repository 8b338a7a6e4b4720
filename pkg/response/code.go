package response

// Business status codes.
const (
	CodeSuccess = 0
	CodeError   = 1

	// User module errors 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// Prompt module errors 200xx
	ErrPromptNotFound    = 20001
	ErrPromptNotApproved = 20002
	ErrPromptNotOwned    = 20003

	// Purchase module errors 300xx
	ErrAlreadyPurchased = 30001
	ErrNotPurchased     = 30002

	// System errors 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
