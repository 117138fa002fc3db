package middleware

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

// RequestIDHeader - заголовок с идентификатором запроса. Если клиент его не передал,
// идентификатор генерируется.
const RequestIDHeader = "X-Request-Id"

// Log возвращает middleware, которое пишет в лог информацию о каждом запросе.
// Уровень записи зависит от кода ответа.
func Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		entry := logger.WithFields(logger.Fields{
			"requestId":  requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"statusCode": status,
			"latency":    time.Since(start).Microseconds(),
			"dataLength": ww.BytesWritten(),
			"clientIp":   r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		})

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("запрос обработан с ошибкой")
		case status >= http.StatusBadRequest:
			entry.Warn("запрос отклонен")
		default:
			entry.Info("запрос обработан")
		}
	})
}
