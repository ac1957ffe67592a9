package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ezzleads/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignAndParseJWT(t *testing.T) {
	u := models.SessionUser{ID: "u-1", Email: "a@b.co", Name: "Ann", Role: models.RoleAgent, Status: models.StatusActive}

	tok, exp, err := SignJWT("secret", u, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := ParseJWT("secret", tok)
	require.NoError(t, err)
	s := c.Session()
	assert.Equal(t, u, s.User)
	assert.NotEmpty(t, c.ID)
	assert.WithinDuration(t, exp, s.ExpiresAt, time.Second)
}

func TestParseJWTRejectsWrongSecretAndExpired(t *testing.T) {
	u := models.SessionUser{ID: "u-1", Role: models.RoleBuyer, Status: models.StatusActive}

	tok, _, err := SignJWT("secret", u, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT("other", tok)
	assert.Error(t, err)

	expired, _, err := SignJWT("secret", u, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT("secret", expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPasswordCost("Secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "Secret123"))
	assert.False(t, CheckPassword(h, "secret123"))
}

func TestQueryIntAndPage(t *testing.T) {
	q := url.Values{"limit": {"25"}, "offset": {"x"}}
	assert.Equal(t, 25, QueryInt(q, "limit", 10))
	assert.Equal(t, 7, QueryInt(q, "offset", 7))

	l, o := Page(url.Values{}, 20)
	assert.Equal(t, 20, l)
	assert.Equal(t, 0, o)
}

func TestErrorWritesJSONBody(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusForbidden, "forbidden")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"forbidden"}`, rr.Body.String())
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var in struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &in))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &in))
	assert.Equal(t, "x", in.Name)
}
