package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers"
)

const msgStaffRequired = "требуется заголовок X-Staff-ID"

type staffIDKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// StaffAuth проверяет наличие заголовка X-Staff-ID на защищённых маршрутах.
// Аутентификацию выполняет внешний шлюз, здесь заголовку только доверяем
// и прокидываем его в контекст для логирования.
func StaffAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-Staff-ID")
			staffID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || staffID <= 0 {
				logger.Warn("%s %s - missing or invalid X-Staff-ID %q", r.Method, r.URL.Path, raw)
				handlers.RespondForbidden(w, msgStaffRequired)
				return
			}

			ctx := context.WithValue(r.Context(), staffIDKey{}, staffID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffIDFromContext возвращает ID сотрудника, положенный StaffAuth
func StaffIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey{}).(int64)
	return id, ok
}
