package repo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/require"
)

func TestTelegramIdentityService_ResolveName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/getChat") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.FormValue("chat_id") {
		case "42":
			w.Write([]byte(`{"ok":true,"result":{"id":42,"type":"private","first_name":"Ana","last_name":"Lee"}}`))
		case "43":
			w.Write([]byte(`{"ok":true,"result":{"id":43,"type":"private","username":"ana_l"}}`))
		default:
			w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
		}
	}))
	defer srv.Close()

	svc, err := NewTelegramIdentityService("123:test", bot.WithServerURL(srv.URL))
	require.NoError(t, err)

	t.Run("should join first and last name", func(t *testing.T) {
		req := require.New(t)
		name, err := svc.ResolveName(context.Background(), "42")
		req.NoError(err)
		req.Equal("Ana Lee", name)
	})

	t.Run("should fall back to the username", func(t *testing.T) {
		req := require.New(t)
		name, err := svc.ResolveName(context.Background(), "43")
		req.NoError(err)
		req.Equal("ana_l", name)
	})

	t.Run("should fail for an unknown chat", func(t *testing.T) {
		_, err := svc.ResolveName(context.Background(), "44")
		require.Error(t, err)
	})

	t.Run("should reject a non numeric id", func(t *testing.T) {
		_, err := svc.ResolveName(context.Background(), "psid-1")
		require.ErrorContains(t, err, "invalid telegram user id")
	})
}
