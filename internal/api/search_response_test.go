package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProviderShape(t *testing.T) {
	raw := json.RawMessage(`{"results":[{"id":99,"title":"Avengers","poster_path":"/x.jpg","release_date":"2012-04-25"}],"page":1}`)

	got := DecodeSearchResponse(raw)

	assert.Equal(t, ShapeProvider, got.Shape)
	require.Len(t, got.Provider, 1)
	assert.Equal(t, ProviderMovie{
		ID:          99,
		Title:       "Avengers",
		PosterPath:  "/x.jpg",
		ReleaseDate: "2012-04-25",
	}, got.Provider[0])
}

func TestDecodeListShape(t *testing.T) {
	raw := json.RawMessage(`[{"tmdb_id":7,"title":"Inception","poster_url":"https://img.example/a.jpg"}]`)

	got := DecodeSearchResponse(raw)

	assert.Equal(t, ShapeList, got.Shape)
	require.Len(t, got.List, 1)
	assert.Equal(t, 7, got.List[0].TMDBID)
}

func TestDecodeObjectWithoutResults(t *testing.T) {
	got := DecodeSearchResponse(json.RawMessage(`{"unexpected":true}`))
	assert.Equal(t, ShapeUnrecognized, got.Shape)
}

// 判定顺序固定：带 results 的对象优先于数组判定
func TestDecodeChecksObjectFirst(t *testing.T) {
	raw := json.RawMessage(`{"results":[]}`)

	got := DecodeSearchResponse(raw)

	assert.Equal(t, ShapeProvider, got.Shape)
	assert.Empty(t, got.Provider)
}

func TestDecodeMalformedResultsDegradesToEmpty(t *testing.T) {
	got := DecodeSearchResponse(json.RawMessage(`{"results":"oops"}`))

	assert.Equal(t, ShapeProvider, got.Shape)
	assert.Empty(t, got.Provider)
}

func TestDecodeScalarsUnrecognized(t *testing.T) {
	for _, raw := range []string{`42`, `"text"`, `true`} {
		got := DecodeSearchResponse(json.RawMessage(raw))
		assert.Equal(t, ShapeUnrecognized, got.Shape, "raw=%s", raw)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	got := DecodeSearchResponse(json.RawMessage(`[]`))

	assert.Equal(t, ShapeList, got.Shape)
	assert.Empty(t, got.List)
}
