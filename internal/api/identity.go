package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexanderramin/agrismart/internal/domain"
)

// UserHeader carries the caller's registered mobile number.
const UserHeader = "X-AgriSmart-User"

type contextKey int

const profileKey contextKey = iota

// ProfileFromContext returns the profile attached by RequireUser.
func ProfileFromContext(ctx context.Context) (domain.UserProfile, bool) {
	p, ok := ctx.Value(profileKey).(domain.UserProfile)
	return p, ok
}

// RequireUser resolves UserHeader to a registered profile and rejects the
// request otherwise.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mobile := strings.TrimSpace(r.Header.Get(UserHeader))
		if mobile == "" {
			Error(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
			return
		}
		profile, err := h.accounts.Lookup(r.Context(), mobile)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), profileKey, *profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
