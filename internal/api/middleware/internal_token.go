package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
)

const headerInternalToken = "X-Internal-Token"

// InternalToken пропускает только вызовы от внутренних сервисов с общим токеном.
// Пустой токен закрывает маршруты полностью
func InternalToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(headerInternalToken)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
