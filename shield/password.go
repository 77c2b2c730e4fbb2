package shield

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordGate returns middleware that requires the shared password on
// every request when a bcrypt hash is configured. The password travels
// as a bearer token. An empty hash disables the gate.
func PasswordGate(bcryptHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if bcryptHash == "" {
			return next
		}
		hash := []byte(bcryptHash)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" || bcrypt.CompareHashAndPassword(hash, []byte(token)) != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && subtle.ConstantTimeCompare([]byte(auth[:len(prefix)]), []byte(prefix)) == 1 {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
