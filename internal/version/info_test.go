package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInfo(t *testing.T) {
	info := NewInfo("dwapp")
	assert.Equal(t, "dwapp", info.Name)
	assert.Equal(t, Version, info.Version)
	assert.Contains(t, info.GoVersion, "go version")

	s := info.String()
	assert.Contains(t, s, "dwapp version "+Version)
	assert.Contains(t, s, "commit:")
}

func TestInfo_Formats(t *testing.T) {
	info := NewInfo("dwapp")

	out, err := info.JSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "dwapp", decoded["name"])

	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(info.LongString()), &fromYAML))
	assert.Equal(t, Version, fromYAML["version"])
}

func TestNewCmd(t *testing.T) {
	cmd := NewCmd("dwapp")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "dwapp", decoded["name"])
}
