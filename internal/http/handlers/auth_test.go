package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellaracademy/academy-be/internal/models/dto"
)

func TestRegisterLoginScenario(t *testing.T) {
	env := newTestEnv(t, nil)

	// Register succeeds with an empty body.
	resp := env.postJSON(t, "/register", "", map[string]string{
		"username": "ada",
		"email":    "ada@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, readBody(t, resp))
	assert.Equal(t, 1, env.store.UserCount())
	assert.Equal(t, 1, env.store.ProfileCount())

	// Same email again is rejected and creates nothing.
	resp = env.postJSON(t, "/register", "", map[string]string{
		"username": "ada2",
		"email":    "ada@x.com",
		"password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"User already exists"}, errorMessages(t, resp))
	assert.Equal(t, 1, env.store.UserCount())

	// Wrong password yields the generic credentials error.
	resp = env.postJSON(t, "/login", "", map[string]string{
		"email":    "ada@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Invalid Credentials"}, errorMessages(t, resp))

	// Correct credentials return a verifiable token.
	resp = env.postJSON(t, "/login", "", map[string]string{
		"email":    "ada@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[dto.LoginResponse](t, resp)
	require.NotEmpty(t, body.Token)

	claims, err := env.tokens.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "student", claims.Role)
	assert.WithinDuration(t, time.Now().Add(env.tokens.TTL()), claims.ExpiresAt.Time, time.Minute)
}

func TestRegisterAggregatesValidationErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.postJSON(t, "/register", "", map[string]string{
		"username": "",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	msgs := errorMessages(t, resp)
	assert.Len(t, msgs, 3, "every violated field rule is reported")
	assert.Contains(t, msgs, "Username is required")
	assert.Contains(t, msgs, "Please include a valid email")
	assert.Contains(t, msgs, "Please enter a password with 6 or more characters")
	assert.Equal(t, 0, env.store.UserCount())
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name    string
		payload map[string]string
		want    []string
	}{
		{
			name:    "bad email syntax",
			payload: map[string]string{"email": "nope", "password": "secret1"},
			want:    []string{"Please include a valid email"},
		},
		{
			name:    "missing password",
			payload: map[string]string{"email": "ada@x.com"},
			want:    []string{"Password is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.postJSON(t, "/login", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, errorMessages(t, resp))
		})
	}
}

func TestLoginUnknownEmailMatchesWrongPasswordShape(t *testing.T) {
	env := newTestEnv(t, nil)
	env.registerAndLogin(t, "ada", "ada@x.com", "secret1")

	unknown := env.postJSON(t, "/login", "", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	wrong := env.postJSON(t, "/login", "", map[string]string{
		"email": "ada@x.com", "password": "wrong",
	})

	assert.Equal(t, http.StatusBadRequest, unknown.StatusCode)
	assert.Equal(t, http.StatusBadRequest, wrong.StatusCode)
	assert.Equal(t, errorMessages(t, unknown), errorMessages(t, wrong))
}

func TestAuthEndpointsRejectNonPost(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{"/register", "/login"} {
		resp := env.get(t, path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, path)
		resp.Body.Close()
	}
}
