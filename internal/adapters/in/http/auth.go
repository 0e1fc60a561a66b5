package http

import (
	"net/http"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// actorContextKey stores the authenticated actor on the echo context.
const actorContextKey = "actor"

// Actor is the authenticated caller extracted from the JWT.
type Actor struct {
	UserID kernel.UUID
	Role   kernel.Role
}

// JWTAuth returns middleware that authenticates requests with an HS256
// bearer token. The token must carry "user_id" and "role" claims; the
// resolved actor is stored on the request context for handlers.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return c.JSON(http.StatusUnauthorized, errorBody("missing bearer token"))
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token claims"))
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token claims"))
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// RequireRoles returns middleware that rejects actors outside the given
// role set. Must run after JWTAuth.
func RequireRoles(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(actorContextKey).(Actor)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody("missing authentication"))
			}
			if !actor.Role.IsOneOf(roles...) {
				return c.JSON(http.StatusForbidden, errorBody("role may not perform this operation"))
			}
			return next(c)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) (Actor, error) {
	rawUserID, _ := claims["user_id"].(string)
	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return Actor{}, err
	}

	rawRole, _ := claims["role"].(string)
	role, err := kernel.ParseRole(rawRole)
	if err != nil {
		return Actor{}, err
	}

	return Actor{UserID: userID, Role: role}, nil
}

func actorFrom(c echo.Context) Actor {
	actor, _ := c.Get(actorContextKey).(Actor)
	return actor
}
