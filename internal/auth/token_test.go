// internal/auth/token_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokenManager("a-very-long-test-secret-for-hs256", "growingtogether", time.Hour)

	signed, err := tokens.Issue("user-1", "member")
	require.NoError(t, err)

	actor, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", actor.ID)
	assert.Equal(t, "member", actor.Role)
	assert.False(t, actor.IsAdmin())
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	tokens := NewTokenManager("a-very-long-test-secret-for-hs256", "growingtogether", time.Hour)

	_, err := tokens.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signed with a different secret.
	other := NewTokenManager("some-completely-different-secret", "growingtogether", time.Hour)
	signed, err := other.Issue("user-1", "member")
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Wrong issuer.
	foreign := NewTokenManager("a-very-long-test-secret-for-hs256", "someone-else", time.Hour)
	signed, err = foreign.Issue("user-1", "member")
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenManager("a-very-long-test-secret-for-hs256", "growingtogether", -time.Minute)

	signed, err := tokens.Issue("user-1", "member")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddlewareAndRequireAdmin(t *testing.T) {
	tokens := NewTokenManager("a-very-long-test-secret-for-hs256", "growingtogether", time.Hour)

	var seen Actor
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ActorFromContext(r.Context())
	})

	protected := Middleware(tokens)(inner)
	admin := Middleware(tokens)(RequireAdmin(inner))

	// No token.
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid member token.
	memberToken, err := tokens.Issue("member-1", "member")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "member-1", seen.ID)

	// Member hitting an admin route.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	rec = httptest.NewRecorder()
	admin.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin passes.
	adminToken, err := tokens.Issue("admin-1", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	admin.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", seen.ID)
}
