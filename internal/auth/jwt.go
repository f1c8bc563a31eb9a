package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMalformedToken   = errors.New("token is malformed")
)

// Identity is the authenticated principal carried inside a token.
type Identity struct {
	ID string `json:"id"`
}

// Claims defines the JWT claims structure: {"user": {"id": ...}} plus the
// registered expiry and issue instants.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 identity tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec bound to the given secret and token lifetime.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the given identity.
func (c *TokenCodec) Issue(identity Identity) (string, error) {
	now := c.now()
	claims := &Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses a token string, checking its signature and expiry.
func (c *TokenCodec) Verify(tokenStr string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrInvalidSignature
		default:
			return Identity{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}
	if !token.Valid {
		return Identity{}, ErrMalformedToken
	}
	if claims.User.ID == "" {
		return Identity{}, fmt.Errorf("%w: missing user id", ErrMalformedToken)
	}
	return claims.User, nil
}
