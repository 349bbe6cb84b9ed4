package auth

import (
	"encoding/json"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the credential lifetime when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenManager handles issuing and validating session credentials.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims describes the credential payload. Extra carries any further identity
// claims the client supplied; they are signed as top-level keys and can never
// shadow the named or registered claims.
type Claims struct {
	Email string         `json:"email"`
	Name  string         `json:"name,omitempty"`
	Photo string         `json:"photo,omitempty"`
	Extra map[string]any `json:"-"`
	jwt.RegisteredClaims
}

var reservedClaims = []string{"email", "name", "photo", "iss", "sub", "aud", "exp", "nbf", "iat", "jti"}

func (c Claims) MarshalJSON() ([]byte, error) {
	type plain Claims
	base, err := json.Marshal(plain(c))
	if err != nil || len(c.Extra) == 0 {
		return base, err
	}

	merged := make(map[string]any, len(c.Extra))
	for k, v := range c.Extra {
		merged[k] = v
	}
	for _, k := range reservedClaims {
		delete(merged, k)
	}
	var named map[string]json.RawMessage
	if err := json.Unmarshal(base, &named); err != nil {
		return nil, err
	}
	for k, v := range named {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (c *Claims) UnmarshalJSON(data []byte) error {
	type plain Claims
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var rest map[string]any
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	for _, k := range reservedClaims {
		delete(rest, k)
	}
	if len(rest) > 0 {
		p.Extra = rest
	}
	*c = Claims(p)
	return nil
}

// Issue signs the identity claims and stamps issue and expiry times.
func (tm *TokenManager) Issue(email, name, photo string) (string, time.Time, error) {
	return tm.IssueWithClaims(email, name, photo, nil)
}

// IssueWithClaims is Issue with additional identity claims.
func (tm *TokenManager) IssueWithClaims(email, name, photo string, extra map[string]any) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Email: email,
		Name:  name,
		Photo: photo,
		Extra: extra,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates signature and expiry and returns the claims.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// TTL returns the credential lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
