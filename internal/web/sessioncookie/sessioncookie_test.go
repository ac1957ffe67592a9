package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, "tok", time.Now().Add(time.Hour), true)

	c, err := http.ParseSetCookie(rec.Header().Get("Set-Cookie"))
	require.NoError(t, err)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	v, ok := Read(req)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestReadMissingOrBlank(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := Read(req)
	assert.False(t, ok)

	req.AddCookie(&http.Cookie{Name: Name, Value: "  "})
	_, ok = Read(req)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	rec := httptest.NewRecorder()
	Clear(rec, false)
	c, err := http.ParseSetCookie(rec.Header().Get("Set-Cookie"))
	require.NoError(t, err)
	assert.Equal(t, -1, c.MaxAge)
}
