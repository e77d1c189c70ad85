package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"cartservice/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // string(uuid)

	basicRealm = `Basic realm="cart-service"`
)

// Basic / Bearer の検証先（AuthUsecase）
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	VerifyToken(raw string) (string, error)
}

// Authorizationヘッダからユーザーを特定してcontextに保存する
func Authenticate(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := resolveUser(c, auth)
			if err != nil {
				if he, ok := usecase.AsHTTPError(err); ok && he.Status == http.StatusUnauthorized {
					c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicRealm)
				}
				return err
			}

			c.Set(CtxUserIDKey, userID)
			return next(c)
		}
	}
}

func resolveUser(c echo.Context, auth Authenticator) (string, error) {
	authz := c.Request().Header.Get(echo.HeaderAuthorization)

	scheme, cred, ok := strings.Cut(authz, " ")
	cred = strings.TrimSpace(cred)
	if !ok || cred == "" {
		return "", usecase.ErrUnauthorized
	}

	switch {
	case strings.EqualFold(scheme, "Basic"):
		username, password, ok := decodeBasic(cred)
		if !ok {
			return "", usecase.ErrUnauthorized
		}
		return auth.Authenticate(c.Request().Context(), username, password)

	case strings.EqualFold(scheme, "Bearer"):
		return auth.VerifyToken(cred)

	default:
		return "", usecase.ErrUnauthorized
	}
}

// base64(username:password)
func decodeBasic(cred string) (string, string, bool) {
	raw, err := base64.StdEncoding.DecodeString(cred)
	if err != nil {
		return "", "", false
	}
	return strings.Cut(string(raw), ":")
}
