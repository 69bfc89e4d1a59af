package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"

	"github.com/microbian-systems/survey/survey"
)

// View gates read endpoints: the token must carry the 'view' or 'edit' role.
func View(secret string) func(http.Handler) http.Handler {
	return requireRole(secret, "view", "edit")
}

// Edit gates write endpoints: the token must carry the 'edit' role.
func Edit(secret string) func(http.Handler) http.Handler {
	return requireRole(secret, "edit")
}

func requireRole(secret string, accepted ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), roleCheck(accepted)).Handler(next)
	}
}

func roleCheck(accepted []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := r.Context().Value(oauth.ClaimsContext).(map[string]string)

			allowed := false
			if rolesClaim, ok := claims["roles"]; ok {
				for _, role := range strings.Split(rolesClaim, ",") {
					for _, want := range accepted {
						if role == want {
							allowed = true
						}
					}
				}
			}

			if !allowed {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CallerScope reads the authorized module and username out of the token
// claims set by the credentials verifier. Must run below View/Edit, which
// populate the oauth context.
func CallerScope(r *http.Request) (scope survey.Scope, err error) {
	claims := r.Context().Value(oauth.ClaimsContext).(map[string]string)
	scope.ModuleID, err = strconv.Atoi(claims["module"])
	if err != nil {
		return
	}
	scope.Username, _ = r.Context().Value(oauth.CredentialContext).(string)
	return
}
