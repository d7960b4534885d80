package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/auth"
	md "github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var userID = uuid.MustParse("4a1b6f1e-3c1d-4f7e-8a51-2d7c9e0b5c22")

func whoami(c echo.Context) error {
	p, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return c.String(http.StatusOK, "anonymous")
	}
	return c.String(http.StatusOK, string(p.Role)+":"+p.UserID.String())
}

func TestAuthContext(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		name         string
		optional     bool
		headers      map[string]string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "ok",
			headers:      map[string]string{auth.XUserIDHeader: userID.String(), auth.XUserRoleHeader: "student"},
			expectedCode: http.StatusOK,
			expectedBody: "student:" + userID.String(),
		},
		{
			name:         "ok. optional without headers",
			optional:     true,
			expectedCode: http.StatusOK,
			expectedBody: "anonymous",
		},
		{
			name:         "err. missing user",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"user-id is empty"}`,
		},
		{
			name:         "err. malformed user",
			optional:     true,
			headers:      map[string]string{auth.XUserIDHeader: "42", auth.XUserRoleHeader: "student"},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"user-id is invalid"}`,
		},
		{
			name:         "err. missing role",
			headers:      map[string]string{auth.XUserIDHeader: userID.String()},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"user-role is empty"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/me", whoami, md.AuthContext(tt.optional))

			r := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestJwtAuthentication(t *testing.T) {
	t.Parallel()
	secret := []byte("secret")
	sign := func(t *testing.T, method jwt.SigningMethod, key any, claims auth.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := auth.Claims{
		Role: auth.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	badSubject := valid
	badSubject.Subject = "admin"

	var tests = []struct {
		name          string
		authorization string
		expectedCode  int
		expectedBody  string
	}{
		{
			name:          "ok",
			authorization: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, valid),
			expectedCode:  http.StatusOK,
			expectedBody:  "admin:" + userID.String(),
		},
		{
			name:         "err. no header",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"no authorization header"}`,
		},
		{
			name:          "err. not bearer",
			authorization: "Basic dXNlcjpwYXNz",
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  `{"message":"invalid authorization header"}`,
		},
		{
			name:          "err. expired",
			authorization: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, expired),
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  `{"message":"invalid token"}`,
		},
		{
			name:          "err. expiry required",
			authorization: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, noExpiry),
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  `{"message":"invalid token"}`,
		},
		{
			name:          "err. other algorithm",
			authorization: "Bearer " + sign(t, jwt.SigningMethodHS512, secret, valid),
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  `{"message":"invalid token"}`,
		},
		{
			name:          "err. subject",
			authorization: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, badSubject),
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  `{"message":"invalid token subject"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.GET("/me", whoami, md.JwtAuthentication(secret, false))

			r := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
			if tt.authorization != "" {
				r.Header.Set(md.AuthorizationHeader, tt.authorization)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	e := echo.New()
	e.GET("/admin", whoami, md.AuthContext(true), md.RequireRole(auth.RoleAdmin))

	for _, tc := range []struct {
		role         string
		expectedCode int
	}{
		{role: "", expectedCode: http.StatusUnauthorized},
		{role: "student", expectedCode: http.StatusForbidden},
		{role: "admin", expectedCode: http.StatusOK},
	} {
		r := httptest.NewRequest(http.MethodGet, "/admin", http.NoBody)
		if tc.role != "" {
			r.Header.Set(auth.XUserIDHeader, userID.String())
			r.Header.Set(auth.XUserRoleHeader, tc.role)
		}
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)
		require.Equal(t, tc.expectedCode, w.Code, tc.role)
	}
}
