package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridia/authgate/internal/binder"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func newRequest(t *testing.T, body, contentType string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, `{"email":"a@b.com","password":"p1"}`, "application/json"), &v)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", v.Email)
		assert.Equal(t, "p1", v.Password)
	})

	t.Run("accepts charset parameter", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, `{"email":"a@b.com"}`, "application/json; charset=utf-8"), &v)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", v.Email)
	})

	t.Run("accepts missing content type", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, `{"email":"a@b.com"}`, ""), &v)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", v.Email)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, `{"email":"a@b.com","extra":true}`, "application/json"), &v)
		assert.NoError(t, err)
	})

	t.Run("empty body binds zero value", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, "", "application/json"), &v)
		require.NoError(t, err)
		assert.Empty(t, v.Email)
	})

	t.Run("rejects non-JSON media type", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, "email=a@b.com", "application/x-www-form-urlencoded"), &v)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, `{"email":`, "application/json"), &v)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()
		var v loginBody
		err := binder.JSON(newRequest(t, `{"email":"a@b.com"}{"email":"c@d.com"}`, "application/json"), &v)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})
}
