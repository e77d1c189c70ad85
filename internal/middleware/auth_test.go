package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"cartservice/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) VerifyToken(raw string) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}

// user_idをそのまま返すだけのhandler
func whoAmI(c echo.Context) error {
	id, _ := c.Get(CtxUserIDKey).(string)
	return c.String(http.StatusOK, id)
}

func runAuth(t *testing.T, auth Authenticator, authz string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile/cart", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Authenticate(auth)(whoAmI)(c)
	return rec, err
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestAuthenticate_Basic(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", mock.Anything, "alice", "pa:ss").Return("u-1", nil)

	rec, err := runAuth(t, auth, basic("alice", "pa:ss"))
	require.NoError(t, err)
	assert.Equal(t, "u-1", rec.Body.String())
	auth.AssertExpectations(t)
}

func TestAuthenticate_Bearer(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("VerifyToken", "tok").Return("u-2", nil)

	rec, err := runAuth(t, auth, "bearer tok")
	require.NoError(t, err)
	assert.Equal(t, "u-2", rec.Body.String())
}

func TestAuthenticate_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		authz string
		setup func(m *MockAuthenticator)
	}{
		{name: "no header", authz: ""},
		{name: "unknown scheme", authz: "Digest abc"},
		{name: "scheme only", authz: "Basic"},
		{name: "broken base64", authz: "Basic !!!"},
		{name: "no colon", authz: "Basic " + base64.StdEncoding.EncodeToString([]byte("alice"))},
		{
			name:  "wrong password",
			authz: basic("alice", "nope"),
			setup: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "alice", "nope").Return("", usecase.ErrUnauthorized)
			},
		},
		{
			name:  "bad token",
			authz: "Bearer bad",
			setup: func(m *MockAuthenticator) {
				m.On("VerifyToken", "bad").Return("", usecase.ErrUnauthorized)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			if tt.setup != nil {
				tt.setup(auth)
			}

			rec, err := runAuth(t, auth, tt.authz)
			require.Error(t, err)
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, he.Status)
			assert.Equal(t, `Basic realm="cart-service"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
			auth.AssertExpectations(t)
		})
	}
}

func TestAuthenticate_StoreError(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", mock.Anything, "alice", "pw").Return("", assert.AnError)

	rec, err := runAuth(t, auth, basic("alice", "pw"))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
}
