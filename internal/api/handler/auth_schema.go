package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// registerRequest is the inbound payload for POST /api/auth/register.
// The validator tags catch syntactic garbage at the edge; the registration
// service remains authoritative for normalization and the password policy,
// since the minimum length is configuration rather than a tag constant.
type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// registerResponse mirrors domain.RegisteredUser; it is owned by the transport
// layer so the JSON contract is not coupled to internal service changes.
type registerResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}
