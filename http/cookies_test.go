package http_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/vidinfo"
	vidinfohttp "github.com/fwojciec/vidinfo/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookiesTxt = "# Netscape HTTP Cookie File\n" +
	"\n" +
	"#HttpOnly_.kick.com\tTRUE\t/\tTRUE\t4102444800\tsession_token\tsecret-token\n" +
	"dzen.ru\tFALSE\t/\tFALSE\t0\tyandexuid\t12345\n" +
	".kick.com\tTRUE\t/\tTRUE\t946684800\texpired\tgone\n"

func TestCookieStore_ReadCookies(t *testing.T) {
	t.Parallel()

	t.Run("parses Netscape cookies", func(t *testing.T) {
		t.Parallel()

		store, err := vidinfohttp.NewCookieStore()
		require.NoError(t, err)
		require.NoError(t, store.ReadCookies(strings.NewReader(cookiesTxt)))

		token, ok := store.Cookie("kick.com", "session_token")
		assert.True(t, ok)
		assert.Equal(t, "secret-token", token)

		uid, ok := store.Cookie("dzen.ru", "yandexuid")
		assert.True(t, ok)
		assert.Equal(t, "12345", uid)
	})

	t.Run("domain cookies apply to subdomains", func(t *testing.T) {
		t.Parallel()

		store, err := vidinfohttp.NewCookieStore()
		require.NoError(t, err)
		require.NoError(t, store.ReadCookies(strings.NewReader(cookiesTxt)))

		_, ok := store.Cookie("www.kick.com", "session_token")
		assert.True(t, ok)

		_, ok = store.Cookie("www.dzen.ru", "yandexuid")
		assert.False(t, ok, "host-only cookie should not match subdomain")
	})

	t.Run("skips expired cookies", func(t *testing.T) {
		t.Parallel()

		store, err := vidinfohttp.NewCookieStore()
		require.NoError(t, err)
		require.NoError(t, store.ReadCookies(strings.NewReader(cookiesTxt)))

		_, ok := store.Cookie("kick.com", "expired")
		assert.False(t, ok)
	})

	t.Run("rejects malformed lines", func(t *testing.T) {
		t.Parallel()

		store, err := vidinfohttp.NewCookieStore()
		require.NoError(t, err)

		err = store.ReadCookies(strings.NewReader("kick.com\tTRUE\t/\n"))
		require.Error(t, err)
		assert.Equal(t, vidinfo.EINVALID, vidinfo.ErrorCode(err))
	})
}

func TestCookieStore_SetCookie(t *testing.T) {
	t.Parallel()

	store, err := vidinfohttp.NewCookieStore()
	require.NoError(t, err)

	_, ok := store.Cookie("kick.com", "session_token")
	assert.False(t, ok)

	store.SetCookie("kick.com", "session_token", "abc")

	token, ok := store.Cookie("kick.com", "session_token")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.NotNil(t, store.Jar())
}

func TestLoadCookieStore(t *testing.T) {
	t.Parallel()

	t.Run("loads cookies from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cookies.txt")
		require.NoError(t, os.WriteFile(path, []byte(cookiesTxt), 0o600))

		store, err := vidinfohttp.LoadCookieStore(path)
		require.NoError(t, err)

		_, ok := store.Cookie("kick.com", "session_token")
		assert.True(t, ok)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := vidinfohttp.LoadCookieStore(filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, err)
	})
}
