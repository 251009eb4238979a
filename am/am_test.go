package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/locale"
)

func intPtr(i int) *int { return &i }

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "en_US", cfg.Parse.Locale)
	assert.Equal(t, "UTC", cfg.Parse.Timezone)
	assert.Equal(t, dimension.DefaultMaxAlternatives, cfg.Parse.MaxAlternatives)
	assert.Equal(t, DefaultMaxRounds, cfg.Parse.MaxRounds)
	assert.Equal(t, DefaultServerPort, cfg.GetServerPort())
	assert.False(t, cfg.Log.JSON)
	require.NoError(t, cfg.Validate())
}

func TestAccessors(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	loc, err := cfg.GetLocale()
	require.NoError(t, err)
	assert.Equal(t, locale.Default, loc)

	dims, err := cfg.GetDims()
	require.NoError(t, err)
	assert.Equal(t, dimension.AllKinds(), dims)

	cfg.Parse.Dims = []string{"time", "money"}
	dims, err = cfg.GetDims()
	require.NoError(t, err)
	assert.Equal(t, []dimension.Kind{dimension.Time, dimension.AmountOfMoney}, dims)

	zone, err := cfg.GetLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", zone.String())

	assert.Equal(t, int64(60), int64(cfg.GetCacheTTL().Seconds()))
	assert.Equal(t, dimension.DefaultMaxAlternatives, cfg.GetOptions().Alternatives())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Parse:  ParseConfig{Locale: "en_GB", Timezone: "Europe/London", MaxRounds: 64},
			Server: ServerConfig{Port: intPtr(8080), RatePerSecond: 5, Burst: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unsupported locale", func(c *Config) { c.Parse.Locale = "fr_FR" }, true},
		{"unknown timezone", func(c *Config) { c.Parse.Timezone = "Mars/Olympus" }, true},
		{"unknown dimension", func(c *Config) { c.Parse.Dims = []string{"time", "mood"} }, true},
		{"negative alternatives mean none", func(c *Config) { c.Parse.MaxAlternatives = -1 }, false},
		{"negative rounds", func(c *Config) { c.Parse.MaxRounds = -1 }, true},
		{"zero port", func(c *Config) { c.Server.Port = intPtr(0) }, true},
		{"port out of range", func(c *Config) { c.Server.Port = intPtr(70000) }, true},
		{"nil port uses default", func(c *Config) { c.Server.Port = nil }, false},
		{"negative rate", func(c *Config) { c.Server.RatePerSecond = -1 }, true},
		{"rate without burst", func(c *Config) { c.Server.Burst = 0 }, true},
		{"unlimited rate without burst", func(c *Config) { c.Server.RatePerSecond, c.Server.Burst = 0, 0 }, false},
		{"negative cache ttl", func(c *Config) { c.Server.CacheTTLSeconds = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[parse]
locale = "en_GB"
dims = ["time"]

[server]
port = 9090
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "en_GB", cfg.Parse.Locale)
	assert.Equal(t, []string{"time"}, cfg.Parse.Dims)
	assert.Equal(t, 9090, cfg.GetServerPort())
	assert.Equal(t, "UTC", cfg.Parse.Timezone, "unset keys keep defaults")

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("[parse]\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	found := findProjectConfig()
	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	resolvedFound, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resolvedRoot, ConfigFileName), resolvedFound)
	assert.Contains(t, ConfigFiles(), found)
}

func TestMergeConfigFilesTracksSources(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	project := filepath.Join(dir, "project.toml")
	require.NoError(t, os.WriteFile(user, []byte("[parse]\nlocale = \"en_AU\"\ntimezone = \"Australia/Sydney\"\n"), 0644))
	require.NoError(t, os.WriteFile(project, []byte("[parse]\nlocale = \"en_GB\"\n"), 0644))

	v := viper.New()
	SetDefaults(v)
	sources := mergeConfigFiles(v, []configPath{
		{filepath.Join(dir, "absent.toml"), SourceSystem},
		{user, SourceUser},
		{project, SourceProject},
	})

	assert.Equal(t, "en_GB", v.GetString("parse.locale"), "project overrides user")
	assert.Equal(t, "Australia/Sydney", v.GetString("parse.timezone"))
	assert.Equal(t, SourceInfo{Source: SourceProject, Path: project}, sources["parse.locale"])
	assert.Equal(t, SourceInfo{Source: SourceUser, Path: user}, sources["parse.timezone"])
	_, tracked := sources["server.port"]
	assert.False(t, tracked)
}

func TestSetInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ConfigFileName)

	require.NoError(t, SetInFile(path, "parse.locale", "en_CA"))
	require.NoError(t, SetInFile(path, "server.port", 9191))
	require.NoError(t, SetInFile(path, "parse.with_latent", true))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "en_CA", cfg.Parse.Locale)
	assert.Equal(t, 9191, cfg.GetServerPort())
	assert.True(t, cfg.Parse.WithLatent)

	assert.FileExists(t, path+".back1")
	assert.FileExists(t, path+".back2")
	assert.Error(t, SetInFile(path, "parse..locale", "x"))
}
