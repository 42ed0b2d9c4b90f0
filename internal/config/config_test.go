package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), "config.toml"), nil).(*configService)
	cs.getenv = func(string) string { return "" }

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.UI.PageSize)
	assert.Equal(t, 5, cfg.UI.SuggestionLimit)
	assert.Equal(t, 2, cfg.UI.SuggestionMinChars)
	assert.Equal(t, "Taka", cfg.UI.Currency)
	assert.Equal(t, 10*time.Second, cfg.Refresh.BalanceInterval.Duration)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigServiceAt(path, nil)

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://market.example"
	cfg.Server.Username = "rahim"
	cfg.UI.PageSize = 9
	cfg.Refresh.BalanceInterval = Duration{3 * time.Second}
	cfg.Password = "secret"

	require.NoError(t, cs.SaveToPath(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `balance_interval = '3s'`)
	assert.NotContains(t, string(data), "secret")

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://market.example", loaded.Server.BaseURL)
	assert.Equal(t, "rahim", loaded.Server.Username)
	assert.Equal(t, 9, loaded.UI.PageSize)
	assert.Equal(t, 3*time.Second, loaded.Refresh.BalanceInterval.Duration)
	assert.Empty(t, loaded.Password)
}

func TestLoadFromPathFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nbase_url = \"http://x\"\n[ui]\npage_size = 0\n"), 0600))

	cfg, err := NewConfigServiceAt(path, nil).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://x", cfg.Server.BaseURL)
	assert.Equal(t, 15, cfg.UI.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Refresh.NotificationsInterval.Duration)
}

func TestLoadFromPathRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[refresh]\nbalance_interval = \"soon\"\n"), 0600))

	_, err := NewConfigServiceAt(path, nil).LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPathMissing(t *testing.T) {
	_, err := NewConfigServiceAt("", nil).LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvURL:      "http://env",
		EnvUser:     "karim",
		EnvPassword: "pw",
	}
	cfg := DefaultConfig()
	ApplyEnv(cfg, func(k string) string { return env[k] })

	assert.Equal(t, "http://env", cfg.Server.BaseURL)
	assert.Equal(t, "karim", cfg.Server.Username)
	assert.Equal(t, "pw", cfg.Password)
}

func TestLoadPublishesConfigLoaded(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.ConfigLoadedEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.ConfigLoadedEvent)
	})

	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), "config.toml"), bus).(*configService)
	cs.getenv = func(k string) string {
		if k == EnvUser {
			return "nadia"
		}
		return ""
	}
	_, err := cs.Load()
	require.NoError(t, err)

	select {
	case e := <-got:
		assert.Equal(t, "nadia", e.Username)
	case <-time.After(time.Second):
		t.Fatal("ConfigLoaded not published")
	}
}
