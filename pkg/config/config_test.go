package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avltr/personal_ledger_app/pkg/config"
)

func TestLoadConfig_WeekStartsOnSundayByDefault(t *testing.T) {
	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, time.Sunday, cfg.FirstDayOfWeek)
}

func TestLoadConfig_WeekStartOverride(t *testing.T) {
	t.Setenv("FIRST_DAY_OF_WEEK", "1")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, time.Monday, cfg.FirstDayOfWeek)
}

func TestLoadConfig_WeekStartOutOfRangeFallsBackToSunday(t *testing.T) {
	t.Setenv("FIRST_DAY_OF_WEEK", "9")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, time.Sunday, cfg.FirstDayOfWeek)
}
