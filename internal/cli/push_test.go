package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestWritePayload(t *testing.T) {
	cmd := &PushCmd{
		Title: "Build done",
		Body:  "All tests passed",
		Badge: 3,
		Sound: "default",
	}

	path, err := cmd.writePayload()
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	raw := string(data)
	assert.Equal(t, "Build done", gjson.Get(raw, "aps.alert.title").String())
	assert.Equal(t, "All tests passed", gjson.Get(raw, "aps.alert.body").String())
	assert.Equal(t, int64(3), gjson.Get(raw, "aps.badge").Int())
	assert.Equal(t, "default", gjson.Get(raw, "aps.sound").String())
}

func TestWritePayload_MinimalOmitsOptionals(t *testing.T) {
	cmd := &PushCmd{Title: "Hi", Badge: -1}

	path, err := cmd.writePayload()
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	raw := string(data)
	assert.Equal(t, "Hi", gjson.Get(raw, "aps.alert.title").String())
	assert.False(t, gjson.Get(raw, "aps.badge").Exists())
	assert.False(t, gjson.Get(raw, "aps.sound").Exists())
}
