package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// OwnerIDHeader заголовок с ID исполнителя, проставляемый шлюзом основного приложения
const OwnerIDHeader = "X-Owner-ID"

type ownerIDKey struct{}

// Auth извлекает ID владельца из заголовка и кладет его в контекст
// Запросы без заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := strings.TrimSpace(r.Header.Get(OwnerIDHeader))
		if ownerID == "" || len(ownerID) > domain.MaxIDLength {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code":    http.StatusUnauthorized,
				"message": "отсутствует ID владельца",
			})
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey{}, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOwnerID возвращает ID владельца из контекста
func GetOwnerID(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerIDKey{}).(string)
	return ownerID, ok && ownerID != ""
}

// WithOwnerID кладет ID владельца в контекст (CLI и тесты)
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey{}, ownerID)
}
