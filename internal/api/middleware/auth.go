package middleware

import (
	"context"
	"net/http"
)

// Заголовки, проставляемые API-шлюзом после проверки сессии.
// Сервис доверяет им и не валидирует токены сам.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleStaff = "staff"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity идентичность вызывающего, извлечённая из заголовков запроса.
// Анонимные запросы допустимы: гостевое бронирование не требует аккаунта.
type Identity struct {
	UserID string
	Staff  bool
}

// Anonymous возвращает true для запроса без идентификатора пользователя
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// Auth извлекает идентичность из заголовков и кладёт её в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := Identity{
			UserID: r.Header.Get(HeaderUserID),
			Staff:  r.Header.Get(HeaderUserRole) == RoleStaff,
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext возвращает идентичность вызывающего из контекста
func IdentityFromContext(ctx context.Context) Identity {
	if identity, ok := ctx.Value(identityKey).(Identity); ok {
		return identity
	}
	return Identity{}
}

// RequireStaff пропускает только запросы персонала
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFromContext(r.Context()).Staff {
			http.Error(w, `{"error":"acceso denegado"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
