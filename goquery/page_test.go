package goquery_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/vidinfo/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const embedPage = `<!DOCTYPE html>
<html>
<head>
<title>  Dzen player  </title>
<meta property="og:title" content="Обзор SWED HOUSE">
<meta property="og:image" content="https://avatars.dzeninfra.ru/thumb.jpg">
<meta name="description" content="  ">
<meta name="og:description" content="About the video">
</head>
<body>
<script>window.analytics = {"id": 1};</script>
<script>
  Dzen.player.init ({"data": {"content": {"streams": [
    {"title": "Обзор", "url": "https://vd.dzeninfra.ru/a/master.mpd"},
    {"url": "https://vd.dzeninfra.ru/a/master.m3u8"}
  ]}, "duration": 120}});
  console.log("ready");
</script>
</body>
</html>`

func TestPage_ScriptJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes the call argument", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.ParsePage([]byte(embedPage))
		require.NoError(t, err)

		v, ok := page.ScriptJSON("Dzen.player.init")
		require.True(t, ok)

		m, ok := v.(map[string]any)
		require.True(t, ok)
		data, ok := m["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, json.Number("120"), data["duration"])
	})

	t.Run("absent when no script calls the function", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.ParsePage([]byte(`<html><script>other()</script></html>`))
		require.NoError(t, err)

		_, ok := page.ScriptJSON("Dzen.player.init")
		assert.False(t, ok)
	})

	t.Run("skips mentions that are not calls", func(t *testing.T) {
		t.Parallel()

		html := `<html><script>var f = Dzen.player.init; Dzen.player.init({"data": 1});</script></html>`
		page, err := goquery.ParsePage([]byte(html))
		require.NoError(t, err)

		v, ok := page.ScriptJSON("Dzen.player.init")
		require.True(t, ok)
		assert.Equal(t, map[string]any{"data": json.Number("1")}, v)
	})

	t.Run("absent when the argument is not JSON", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.ParsePage([]byte(`<html><script>Dzen.player.init(config)</script></html>`))
		require.NoError(t, err)

		_, ok := page.ScriptJSON("Dzen.player.init")
		assert.False(t, ok)
	})
}

func TestPage_Meta(t *testing.T) {
	t.Parallel()

	page, err := goquery.ParsePage([]byte(embedPage))
	require.NoError(t, err)

	title, ok := page.Meta("og:title")
	assert.True(t, ok)
	assert.Equal(t, "Обзор SWED HOUSE", title)

	desc, ok := page.Meta("og:description")
	assert.True(t, ok, "falls back to the name attribute")
	assert.Equal(t, "About the video", desc)

	_, ok = page.Meta("description")
	assert.False(t, ok, "blank content is absent")

	_, ok = page.Meta("og:video")
	assert.False(t, ok)
}

func TestPage_Title(t *testing.T) {
	t.Parallel()

	page, err := goquery.ParsePage([]byte(embedPage))
	require.NoError(t, err)

	title, ok := page.Title()
	assert.True(t, ok)
	assert.Equal(t, "Dzen player", title)

	empty, err := goquery.ParsePage([]byte(`<html><body></body></html>`))
	require.NoError(t, err)
	_, ok = empty.Title()
	assert.False(t, ok)
}
