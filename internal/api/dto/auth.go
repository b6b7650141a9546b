package dto

// CredentialsRequest is the shared body of the register and login endpoints.
// Both JSON and url-encoded form bodies are accepted.
type CredentialsRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse carries the signed access token
type TokenResponse struct {
	Token string `json:"token"`
}

// FieldError is a single field-level validation failure
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationErrorResponse lists every failing field, not just the first
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// ErrorResponse is the generic message-shaped failure body
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// MeResponse mirrors the token payload for the authenticated user
type MeResponse struct {
	User UserInfo `json:"user"`
}

// UserInfo is the public projection of a user record
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
