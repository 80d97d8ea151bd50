package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies-superset.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"session","value":"abc","domain":".joinsuperset.com","path":"/","expires":1893456000,"httpOnly":true,"secure":true,"sameSite":"Lax"},
		{"name":"pref","value":"1","domain":"app.joinsuperset.com","sameSite":"no_restriction"},
		{"name":"","value":"broken","domain":"x"}
	]`), 0600))

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	session := cookies[0]
	assert.Equal(t, "session", session.Name)
	assert.Equal(t, ".joinsuperset.com", *session.Domain)
	assert.Equal(t, 1893456000.0, *session.Expires)
	assert.True(t, *session.HttpOnly)
	assert.True(t, *session.Secure)
	assert.Equal(t, playwright.SameSiteAttributeLax, session.SameSite)

	pref := cookies[1]
	assert.Equal(t, "/", *pref.Path)
	assert.Nil(t, pref.Expires)
	assert.Nil(t, pref.HttpOnly)
	assert.Equal(t, playwright.SameSiteAttributeNone, pref.SameSite)
}

func TestLoadCookies_Errors(t *testing.T) {
	_, err := LoadCookies(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"not an array"}`), 0600))
	_, err = LoadCookies(path)
	assert.Error(t, err)
}

func TestSaveCookies_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, SaveCookies(path, []playwright.Cookie{{
		Name:     "session",
		Value:    "abc",
		Domain:   ".joinsuperset.com",
		Path:     "/",
		Expires:  -1,
		HttpOnly: true,
		SameSite: playwright.SameSiteAttributeStrict,
	}}))

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Nil(t, cookies[0].Expires, "session cookies keep no expiry")
	assert.Equal(t, playwright.SameSiteAttributeStrict, cookies[0].SameSite)
}
