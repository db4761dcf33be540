package campusfound

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether token is a JWT whose exp claim lies in the
// past. The claim is read without signature verification — the SDK holds no
// keys and treats the token as an opaque artifact otherwise. Opaque non-JWT
// tokens and JWTs without an exp claim are never considered expired; an empty
// token always is.
func TokenExpired(token string) bool {
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
