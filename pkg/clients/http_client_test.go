package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHTTPClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":true}`))
	}))
	defer srv.Close()

	client := NewHTTPClient()
	code, body, headers, err := client.Get(context.Background(), srv.URL, http.Header{"Authorization": {"Bearer sk_test"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":true}`, string(body))
	assert.Equal(t, "1", headers.Get("Retry-After"))
}

func TestHTTPClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		payload, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"to":"x"}`, string(payload))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := WithHTTPClient(&http.Client{})
	code, _, err := client.Post(context.Background(), srv.URL, http.Header{"Content-Type": {"application/json"}}, []byte(`{"to":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, code)
}

func TestHTTPClient_SetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().Get(gomock.Any(), "http://paystack.test/ref", gomock.Any()).Return(http.StatusTooManyRequests, nil, http.Header{}, nil)

	client := NewHTTPClient()
	client.SetClient(mock)
	code, _, _, err := client.Get(context.Background(), "http://paystack.test/ref", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestHTTPClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := NewHTTPClient().Get(ctx, "http://127.0.0.1:0", nil)
	assert.Error(t, err)
}
