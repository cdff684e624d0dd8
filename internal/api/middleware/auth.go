package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	requestIDKey contextKey = "requestID"

	headerUserID        = "X-User-ID"
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

var errInvalidSubject = errors.New("subject is not a positive user id")

// Auth извлекает идентификатор пользователя.
// С секретом ожидается HMAC JWT в Authorization: Bearer, user id берется из sub.
// Без секрета (локальный запуск) используется заголовок X-User-ID от шлюза
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID int64
				err    error
			)
			if secret == "" {
				userID, err = parseUserID(r.Header.Get(headerUserID))
			} else {
				userID, err = userIDFromBearer(r.Header.Get(headerAuthorization), secret)
			}
			if err != nil {
				handlers.RespondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает user id, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// WithUserID кладет user id в контекст (используется в тестах обработчиков)
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func userIDFromBearer(header, secret string) (int64, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return 0, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(header, bearerPrefix)

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	return parseUserID(claims.Subject)
}

func parseUserID(raw string) (int64, error) {
	userID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if userID <= 0 {
		return 0, errInvalidSubject
	}
	return userID, nil
}
