package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-stats/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !admin || !ok {
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminOrSelf lets admins through, and any caller whose employee_id claim
// matches the URL parameter named param.
func AdminOrSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if admin, _ := claims["is_admin"].(bool); admin {
				next.ServeHTTP(w, r)
				return
			}

			employeeID, _ := claims["employee_id"].(string)
			if employeeID == "" || employeeID != chi.URLParam(r, param) {
				response.HandleError(w, auth.ErrEmployeeAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
