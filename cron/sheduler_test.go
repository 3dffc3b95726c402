package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dashboard.GO/core/registry"
)

func unlockAfter(t *testing.T) {
	t.Cleanup(func() { registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron) })
}

func TestMerge_RegisteredOverridesBuiltin(t *testing.T) {
	Register("mergejob", "@daily", func(...string) {})
	defer Unregister("mergejob")

	all := Merge(map[string]Job{
		"mergejob": {Schedule: "@hourly", Run: func(...string) {}},
		"onlyhere": {Schedule: "@every 5m", Run: func(...string) {}},
	})

	assert.Equal(t, "@daily", all["mergejob"].Schedule)
	assert.Equal(t, "@every 5m", all["onlyhere"].Schedule)
}

func TestStartCron_InvalidSchedule(t *testing.T) {
	unlockAfter(t)
	_, err := StartCron(zap.NewNop(), map[string]Job{
		"broken": {Schedule: "not a schedule", Run: func(...string) {}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestStartCron_Schedules(t *testing.T) {
	unlockAfter(t)
	c, err := StartCron(zap.NewNop(), map[string]Job{
		"tick": {Schedule: "@every 1h", Run: func(...string) {}},
	})
	require.NoError(t, err)
	defer c.Stop()
	assert.NotEmpty(t, c.Entries())
}
