package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func runMiddleware(mw echo.MiddlewareFunc, authorization string) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	_ = mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, reached
}

func TestJWTAuth_ValidToken_SetsActor(t *testing.T) {
	userID := kernel.NewUUID()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    "customer",
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var actor Actor
	err := JWTAuth(testSecret)(func(c echo.Context) error {
		actor = actorFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, actor.UserID)
	assert.Equal(t, kernel.RoleCustomer, actor.Role)
}

func TestJWTAuth_MissingHeader_Returns401(t *testing.T) {
	rec, reached := runMiddleware(JWTAuth(testSecret), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuth_WrongSecret_Returns401(t *testing.T) {
	token := signToken(t, []byte("other-secret"), jwt.MapClaims{
		"user_id": kernel.NewUUID().String(),
		"role":    "customer",
	})

	rec, reached := runMiddleware(JWTAuth(testSecret), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuth_UnknownRoleClaim_Returns401(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": kernel.NewUUID().String(),
		"role":    "superuser",
	})

	rec, reached := runMiddleware(JWTAuth(testSecret), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  kernel.Role
		allowed    []kernel.Role
		wantStatus int
	}{
		{"role in set passes", kernel.RoleAdmin, []kernel.Role{kernel.RoleAdmin}, http.StatusOK},
		{"role outside set is forbidden", kernel.RoleCustomer,
			[]kernel.Role{kernel.RoleAdmin, kernel.RoleDelivery}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(actorContextKey, Actor{UserID: kernel.NewUUID(), Role: tt.actorRole})

			err := RequireRoles(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRoles_NoActor_Returns401(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireRoles(kernel.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWriteError_MapsSentinelsToStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", errs.NewObjectNotFoundError("order", kernel.NewUUID()), http.StatusNotFound},
		{"forbidden", errs.NewForbiddenError("customers may only cancel their own orders"), http.StatusForbidden},
		{"conflict", errs.NewConflictError("order already has a courier"), http.StatusConflict},
		{"invalid state", errs.NewInvalidStateError("pending order cannot be delivered"), http.StatusBadRequest},
		{"required value", errs.NewValueIsRequiredError("code"), http.StatusBadRequest},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, writeError(c, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
