package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// TokenHeader is the request header carrying the identity token.
const TokenHeader = "x-auth-token"

const (
	msgNoToken      = "no token, authorisation denied"
	msgInvalidToken = "Token is not valid"
)

type contextKey string

const identityKey = contextKey("identity")

// Verifier checks a token and resolves the identity it carries.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the identity attached by Gate, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// Gate creates a middleware that rejects requests without a valid token and
// passes the resolved identity down via the request context.
func Gate(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				reject(w, msgNoToken)
				return
			}

			identity, err := verifier.Verify(tokenStr)
			if err != nil {
				// The cause stays server-side; expired and forged tokens look the same to the caller.
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected auth token")
				reject(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func reject(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
