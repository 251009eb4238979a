package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[parse]\nlocale = \"en_US\"\n"), 0644))

	cw, err := NewConfigWatcher(path)
	require.NoError(t, err)
	cw.debouncePeriod = 10 * time.Millisecond
	cw.load = func() (*Config, error) { return LoadFromFile(path) }

	reloaded := make(chan *Config, 4)
	cw.OnReload(func(c *Config) error {
		reloaded <- c
		return nil
	})
	cw.Start()
	t.Cleanup(func() { cw.Stop() })

	require.NoError(t, os.WriteFile(path, []byte("[parse]\nlocale = \"en_GB\"\n"), 0644))

	select {
	case c := <-reloaded:
		assert.Equal(t, "en_GB", c.Parse.Locale)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config change")
	}
}

func TestWatcherRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[parse]\nlocale = \"fr_FR\"\n"), 0644))

	cw, err := NewConfigWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { cw.Stop() })
	cw.load = func() (*Config, error) { return LoadFromFile(path) }

	called := false
	cw.OnReload(func(*Config) error {
		called = true
		return nil
	})

	assert.Error(t, cw.reload())
	assert.False(t, called)
}

func TestWatcherIgnoresOwnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cw, err := NewConfigWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { cw.Stop() })

	cw.MarkOwnWrite()
	assert.True(t, cw.checkOwnWrite())
	assert.False(t, cw.checkOwnWrite())
	assert.True(t, backupFile.MatchString(path+".back2"))
	assert.False(t, backupFile.MatchString(path))
}
