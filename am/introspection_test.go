package am

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenSettingsWithSources(t *testing.T) {
	settings := map[string]interface{}{
		"server": map[string]interface{}{"port": 8787, "burst": 40},
		"parse":  map[string]interface{}{"locale": "en_GB"},
	}
	sources := map[string]SourceInfo{
		"parse.locale": {Source: SourceProject, Path: "/work/dims.toml"},
	}
	t.Setenv("QNTX_DIMS_SERVER_BURST", "80")

	var got ConfigIntrospection
	flattenSettingsWithSources(settings, "", &got, sources)

	require.Len(t, got.Settings, 3)
	assert.Equal(t, []string{"parse.locale", "server.burst", "server.port"},
		[]string{got.Settings[0].Key, got.Settings[1].Key, got.Settings[2].Key})

	assert.Equal(t, SourceProject, got.Settings[0].Source)
	assert.Equal(t, "/work/dims.toml", got.Settings[0].SourcePath)
	assert.Equal(t, SourceEnvironment, got.Settings[1].Source)
	assert.Equal(t, "QNTX_DIMS_SERVER_BURST", got.Settings[1].SourcePath)
	assert.Equal(t, SourceDefault, got.Settings[2].Source)
}

func TestGetConfigIntrospectionCoversDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	got := GetConfigIntrospection()
	keys := make(map[string]bool)
	for _, s := range got.Settings {
		keys[s.Key] = true
	}
	for _, want := range []string{"parse.locale", "parse.max_rounds", "server.port", "log.json"} {
		assert.True(t, keys[want], "missing %s", want)
	}
}
