package auth

import "context"

// AuthVerifier valida un Bearer token y devuelve claims, rol incluido.
// nil en middleware.AuthContext => modo dev con headers X-Debug-User-*.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
