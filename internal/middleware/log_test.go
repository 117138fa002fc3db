package middleware

import (
	"bytes"
	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestLog(t *testing.T) {
	var (
		r    = chi.NewRouter()
		hook = test.NewGlobal()
	)

	logger.SetOutput(&bytes.Buffer{})
	defer logger.SetOutput(os.Stderr)
	defer hook.Reset()

	r.Use(Log)
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/bad", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ts := httptest.NewServer(r)
	defer ts.Close()

	tests := []struct {
		name      string
		path      string
		requestID string
		wantLevel logger.Level
	}{
		{
			name:      "успешный запрос",
			path:      "/ok",
			wantLevel: logger.InfoLevel,
		},
		{
			name:      "запрос с идентификатором",
			path:      "/ok",
			requestID: "request-id",
			wantLevel: logger.InfoLevel,
		},
		{
			name:      "некорректный запрос",
			path:      "/bad",
			wantLevel: logger.WarnLevel,
		},
		{
			name:      "ошибка сервера",
			path:      "/fail",
			wantLevel: logger.ErrorLevel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()
			req, err := http.NewRequest(http.MethodGet, ts.URL+tt.path, nil)
			require.NoError(t, err)
			if tt.requestID != "" {
				req.Header.Set(RequestIDHeader, tt.requestID)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())

			requestID := resp.Header.Get(RequestIDHeader)
			assert.NotEmpty(t, requestID)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, requestID)
			}

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, requestID, entry.Data["requestId"])
			assert.Equal(t, tt.path, entry.Data["path"])
		})
	}
}
