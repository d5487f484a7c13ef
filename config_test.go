package toggler_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tomasbasham/toggler"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		cfg, err := toggler.LoadConfig(strings.NewReader("taskOneDelay: 150\ntaskTwoDelay: 300ms\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg.TaskOneDelay)
		require.NotNil(t, cfg.TaskTwoDelay)
		require.Equal(t, 150*time.Millisecond, cfg.TaskOneDelay.Duration)
		require.Equal(t, 300*time.Millisecond, cfg.TaskTwoDelay.Duration)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		cfg, err := toggler.LoadConfig(strings.NewReader(`{"taskTwoDelay": "1s"}`))
		require.NoError(t, err)
		require.Nil(t, cfg.TaskOneDelay)
		require.Equal(t, time.Second, cfg.TaskTwoDelay.Duration)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		cfg, err := toggler.LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, toggler.Config{}, cfg)
	})

	t.Run("invalid delay", func(t *testing.T) {
		t.Parallel()

		_, err := toggler.LoadConfig(strings.NewReader("taskOneDelay: whenever\n"))
		require.Error(t, err)
		require.True(t, errors.Is(err, toggler.ErrInvalidDelay))
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		_, err := toggler.LoadConfig(strings.NewReader("taskThreeDelay: 10\n"))
		require.ErrorContains(t, err, "toggler: decode config")
	})
}

func TestConfig_MarshalYAML(t *testing.T) {
	t.Parallel()

	cfg := toggler.Config{TaskOneDelay: &toggler.Delay{Duration: 150 * time.Millisecond}}

	b, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Equal(t, "taskOneDelay: 150ms\n", string(b))

	got, err := toggler.LoadConfig(strings.NewReader(string(b)))
	require.NoError(t, err)
	require.Equal(t, cfg.TaskOneDelay.Duration, got.TaskOneDelay.Duration)
}
