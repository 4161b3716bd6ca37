package httpx

import (
	"net/http"
	"strings"
)

// RequireAnyRole lets the request through only when the authenticated
// caller's role is one of those listed.
func RequireAnyRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromCtx(r.Context())]; ok {
				next.ServeHTTP(w, r)
				return
			}
			writeBearerRoleError(w, roles...)
		})
	}
}

// RFC 6750-style error response for callers whose role is insufficient.
func writeBearerRoleError(w http.ResponseWriter, roles ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_role", roles="`+strings.Join(roles, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_role"))
}
