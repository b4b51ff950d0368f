package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL derives the session lifetime from the backend token's exp claim
// when the token happens to be a JWT. The claim is read unverified: the
// backend remains the authority and answers 401 regardless, this only keeps
// our copy from outliving the token. Opaque tokens get the fallback.
func tokenTTL(token string, fallback time.Duration) time.Duration {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 || ttl > fallback {
		return fallback
	}
	return ttl
}
