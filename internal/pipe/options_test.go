package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, int64(2<<20), opts.MaxFileBytes)
	assert.Equal(t, 50, opts.HubHeadLines)
	assert.Equal(t, 20, opts.FileHeadLines)
	assert.Equal(t, 20, opts.MaxFiles)
	assert.Equal(t, 10, opts.HubTailLines)
	assert.False(t, opts.CodeRelations)
}

func TestParseOptionsJSON(t *testing.T) {
	opts := DefaultOptions()
	raw := `{"code_relations": true, "code_n1": 100, "code_n2": 30, "code_nf": 5, "code_nt": 15}`
	require.NoError(t, ParseOptionsJSON(&opts, raw))

	assert.True(t, opts.CodeRelations)
	assert.Equal(t, 100, opts.HubHeadLines)
	assert.Equal(t, 30, opts.FileHeadLines)
	assert.Equal(t, 5, opts.MaxFiles)
	assert.Equal(t, 15, opts.HubTailLines)
}

func TestParseOptionsJSON_Partial(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, ParseOptionsJSON(&opts, `{"code_relations": true}`))

	assert.True(t, opts.CodeRelations)
	assert.Equal(t, 50, opts.HubHeadLines, "untouched tunables keep defaults")
	assert.Equal(t, 20, opts.MaxFiles)
}

func TestParseOptionsJSON_Empty(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, ParseOptionsJSON(&opts, ""))
	assert.Equal(t, DefaultOptions(), opts)
}

func TestParseOptionsJSON_Invalid(t *testing.T) {
	opts := DefaultOptions()
	err := ParseOptionsJSON(&opts, `{"code_relations": tru`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --options JSON")
}

func TestParseOptionsJSON_NonPositiveFallsBack(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, ParseOptionsJSON(&opts, `{"code_n1": 0, "code_nf": -3}`))

	assert.Equal(t, 50, opts.HubHeadLines)
	assert.Equal(t, 20, opts.MaxFiles)
}

func TestParseOptionsJSON_UnknownKeysIgnored(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, ParseOptionsJSON(&opts, `{"future_option": "x"}`))
	assert.Equal(t, DefaultOptions(), opts)
}
