package vidinfo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/vidinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := vidinfo.Errorf(vidinfo.EUNSUPPORTED, "no handler for %q", "https://example.com")

	assert.Equal(t, vidinfo.EUNSUPPORTED, vidinfo.ErrorCode(err))
	assert.Equal(t, "no handler for \"https://example.com\"", vidinfo.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, vidinfo.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, vidinfo.ErrorMessage(nil))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, vidinfo.EINTERNAL, vidinfo.ErrorCode(err))
	assert.Equal(t, "Internal error.", vidinfo.ErrorMessage(err))
}

func TestErrorCode_FetchError(t *testing.T) {
	t.Parallel()

	t.Run("reports EFETCH for a bare fetch error", func(t *testing.T) {
		t.Parallel()

		err := &vidinfo.FetchError{Status: 404, URL: "https://example.com/x"}

		assert.Equal(t, vidinfo.EFETCH, vidinfo.ErrorCode(err))
		assert.Equal(t, "HTTP 404 for https://example.com/x", vidinfo.ErrorMessage(err))
	})

	t.Run("reports EFETCH through fmt wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("loading: %w", &vidinfo.FetchError{URL: "https://example.com", Err: errors.New("refused")})

		assert.Equal(t, vidinfo.EFETCH, vidinfo.ErrorCode(err))
	})

	t.Run("outer application code wins over wrapped fetch error", func(t *testing.T) {
		t.Parallel()

		err := &vidinfo.Error{
			Code:    vidinfo.EMANIFEST,
			Message: "manifest unreachable",
			Err:     &vidinfo.FetchError{Status: 500, URL: "https://example.com/a.m3u8"},
		}

		assert.Equal(t, vidinfo.EMANIFEST, vidinfo.ErrorCode(err))
		var fe *vidinfo.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 500, fe.Status)
	})
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, vidinfo.WithContext(nil, "https://kick.com/video/x", vidinfo.StageFetch))
	})

	t.Run("fills locator and stage without changing code", func(t *testing.T) {
		t.Parallel()

		err := vidinfo.WithContext(vidinfo.Errorf(vidinfo.EEXTRACT, "no manifest"), "https://kick.com/video/x", vidinfo.StageParse)

		var e *vidinfo.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, vidinfo.EEXTRACT, e.Code)
		assert.Equal(t, "https://kick.com/video/x", e.Locator)
		assert.Equal(t, vidinfo.StageParse, e.Stage)
		assert.Contains(t, err.Error(), "stage=parse")
	})

	t.Run("keeps stage already recorded", func(t *testing.T) {
		t.Parallel()

		inner := vidinfo.WithContext(vidinfo.Errorf(vidinfo.EMANIFEST, "bad playlist"), "", vidinfo.StageManifest)
		err := vidinfo.WithContext(inner, "https://kick.com/video/x", vidinfo.StageAssemble)

		var e *vidinfo.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, vidinfo.StageManifest, e.Stage)
		assert.Equal(t, "https://kick.com/video/x", e.Locator)
	})

	t.Run("wraps fetch errors as EFETCH", func(t *testing.T) {
		t.Parallel()

		fe := &vidinfo.FetchError{Status: 503, URL: "https://kick.com/api/v1/video/x"}
		err := vidinfo.WithContext(fe, "https://kick.com/video/x", vidinfo.StageFetch)

		assert.Equal(t, vidinfo.EFETCH, vidinfo.ErrorCode(err))
		assert.Equal(t, "HTTP 503 for https://kick.com/api/v1/video/x", vidinfo.ErrorMessage(err))
		assert.ErrorIs(t, err, fe)
	})
}
