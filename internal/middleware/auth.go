package middleware

import (
	"net/http"
	"strings"

	"atelier/internal/auth"
	"atelier/internal/domain/models"
	"atelier/internal/httputil"
)

// Auth resolves the acting identity for every request. Requests without
// an Authorization header proceed anonymously; whether anonymity is
// acceptable is each operation's decision, not the middleware's. A
// header that is present but does not verify is rejected here with 401.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r.WithContext(r.Context()))
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithIdentity(r, models.Identity{UserID: claims.GetUserID()})
			next.ServeHTTP(w, r)
		})
	}
}
