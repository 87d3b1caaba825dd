package odin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOdin(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "secret"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_ReturnsClaimsWithRole(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var body verifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-1", body.Token)

		_, _ = w.Write([]byte(`{"user_id":" vet-9 ","email":"vet@clinic.test","role":"Veterinarian"}`))
	})

	claims, err := v.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "vet-9", claims.UserID)
	assert.Equal(t, "veterinarian", claims.Role)
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOdinUnauthorized))
}

func TestVerify_UpstreamAndMissingUser(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"user_id":""}`))
	})

	_, err := v.Verify(context.Background(), "boom")
	assert.True(t, errors.Is(err, ErrOdinUpstream))

	_, err = v.Verify(context.Background(), "empty-user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing user_id")
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = NewVerifier(c).Verify(context.Background(), "tok")
	assert.True(t, errors.Is(err, ErrOdinNotConfigured))

	_, err = NewVerifier(c).Verify(context.Background(), "  ")
	assert.True(t, errors.Is(err, ErrTokenEmpty))
}
