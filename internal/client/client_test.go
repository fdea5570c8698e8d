package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSendsNoAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		_, _, ok := r.BasicAuth()
		assert.False(t, ok, "registration must not carry credentials")

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ann", body["name"])
		assert.NotContains(t, body, "phone")

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"result": "ok",
			"user":   map[string]interface{}{"id": 1, "name": "Ann", "email": "a@x.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	u, err := c.Register(context.Background(), "Ann", "a@x.com", "Passw0rd", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)
}

func TestAuthenticatedCallsCarryBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "a@x.com", email)
		assert.Equal(t, "Passw0rd", password)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"result": "ok",
			"users": []map[string]interface{}{
				{"id": 1, "name": "Ann", "email": "a@x.com"},
				{"id": 2, "name": "Bob", "email": "b@x.com"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetCredentials("a@x.com", "Passw0rd")

	users, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	me, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), me.ID)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"result":  "error",
			"message": "Недостаточно прав для выполнения операции",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetCredentials("b@x.com", "Passw0rd")

	_, err := c.Get(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Недостаточно прав")
}

func TestChangePasswordUpdatesStoredCredential(t *testing.T) {
	var seenPasswords []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, password, _ := r.BasicAuth()
		seenPasswords = append(seenPasswords, password)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"result": "ok", "message": "Пароль успешно изменён"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetCredentials("a@x.com", "OldPass12")

	require.NoError(t, c.ChangePassword(context.Background(), "NewPass34", "NewPass34"))
	_, err := c.List(context.Background())
	require.NoError(t, err)

	require.Len(t, seenPasswords, 2)
	assert.Equal(t, "OldPass12", seenPasswords[0])
	assert.Equal(t, "NewPass34", seenPasswords[1])
}
