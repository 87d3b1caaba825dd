package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Email    string
	TenantID string

	// Role: "owner" (cliente) o "veterinarian". Lo valida cada handler.
	Role string
}
