package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func protected() (http.Handler, *string) {
	var seen string
	h := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &seen
}

func call(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my-bookings", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	h, seen := protected()
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	rec := call(h, "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-42", *seen)
}

func TestAuth_UserIDClaim(t *testing.T) {
	h, seen := protected()
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{UserID: "legacy-7"})

	rec := call(h, "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "legacy-7", *seen)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{
			name:   "missing header",
			header: func(t *testing.T) string { return "" },
		},
		{
			name:   "not bearer",
			header: func(t *testing.T) string { return "Basic dXNlcjpwYXNz" },
		},
		{
			name:   "garbage token",
			header: func(t *testing.T) string { return "Bearer not.a.token" },
		},
		{
			name: "forged signature",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other-secret"),
					jwt.RegisteredClaims{Subject: "user-42"})
			},
		},
		{
			name: "expired",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
					Subject:   "user-42",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				})
			},
		},
		{
			name: "unexpected algorithm",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(testSecret),
					jwt.RegisteredClaims{Subject: "user-42"})
			},
		},
		{
			name: "no subject",
			header: func(t *testing.T) string {
				return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, seen := protected()

			rec := call(h, tt.header(t))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"code":"UNAUTHORIZED","message":"Authentication failed"}`, rec.Body.String())
			assert.Empty(t, *seen)
		})
	}
}
