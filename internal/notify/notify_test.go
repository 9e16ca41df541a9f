package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldleaf/internal/notify"
)

func TestEmailSenderPostsTemplateParams(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := notify.NewEmailSender(srv.URL, "svc-1", "pk-1")
	err := s.Send(context.Background(), "tpl-buyer", "jane@example.com", notify.Params{
		"order_number": "ORD-1700000000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "svc-1", got["service_id"])
	assert.Equal(t, "tpl-buyer", got["template_id"])
	params := got["template_params"].(map[string]any)
	assert.Equal(t, "jane@example.com", params["to_email"])
	assert.Equal(t, "ORD-1700000000000", params["order_number"])
}

func TestEmailSenderReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := notify.NewEmailSender(srv.URL, "svc-1", "pk-1")
	err := s.Send(context.Background(), "tpl", "x@y.z", nil)
	assert.Error(t, err)
}
