package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SchedulerConfigTestSuite struct {
	suite.Suite
}

func (suite *SchedulerConfigTestSuite) writeConfig(contents string) string {
	path := filepath.Join(suite.T().TempDir(), "scheduler.toml")
	assert.NoError(suite.T(), os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func (suite *SchedulerConfigTestSuite) TestDefaults() {
	cfg := DefaultSchedulerConfig()

	assert.True(suite.T(), cfg.Scheduler.Enabled)
	assert.Equal(suite.T(), 60, cfg.Scheduler.OverdueSweepMinutes)
	assert.True(suite.T(), cfg.Reminders.Enabled)
	assert.Equal(suite.T(), 3, cfg.Reminders.LeadDays)
	assert.Equal(suite.T(), 24, cfg.Reminders.IntervalHours)
}

func (suite *SchedulerConfigTestSuite) TestLoadOverridesDefaults() {
	path := suite.writeConfig(`
[scheduler]
enabled = true
overdue_sweep_minutes = 15

[reminders]
enabled = false
lead_days = 5
interval_hours = 12
`)

	cfg, err := LoadSchedulerConfig(path)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 15, cfg.Scheduler.OverdueSweepMinutes)
	assert.False(suite.T(), cfg.Reminders.Enabled)
	assert.Equal(suite.T(), 5, cfg.Reminders.LeadDays)
	assert.Equal(suite.T(), 12, cfg.Reminders.IntervalHours)
}

func (suite *SchedulerConfigTestSuite) TestPartialFileKeepsDefaults() {
	path := suite.writeConfig(`
[reminders]
lead_days = 7
`)

	cfg, err := LoadSchedulerConfig(path)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 60, cfg.Scheduler.OverdueSweepMinutes)
	assert.True(suite.T(), cfg.Reminders.Enabled)
	assert.Equal(suite.T(), 7, cfg.Reminders.LeadDays)
}

func (suite *SchedulerConfigTestSuite) TestRejectsNonPositiveSweepInterval() {
	path := suite.writeConfig(`
[scheduler]
overdue_sweep_minutes = 0
`)

	_, err := LoadSchedulerConfig(path)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "overdue_sweep_minutes")
}

func (suite *SchedulerConfigTestSuite) TestMissingFileFails() {
	_, err := LoadSchedulerConfig(filepath.Join(suite.T().TempDir(), "missing.toml"))
	assert.Error(suite.T(), err)
}

func TestSchedulerConfigTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerConfigTestSuite))
}
