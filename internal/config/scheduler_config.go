package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// SchedulerConfig represents the background scheduler configuration
type SchedulerConfig struct {
	Scheduler SchedulerSettings `toml:"scheduler"`
	Reminders ReminderSettings  `toml:"reminders"`
}

// SchedulerSettings controls the overdue payment sweep
type SchedulerSettings struct {
	Enabled             bool `toml:"enabled"`
	OverdueSweepMinutes int  `toml:"overdue_sweep_minutes"`
}

// ReminderSettings controls rent-due reminder notifications
type ReminderSettings struct {
	Enabled       bool `toml:"enabled"`
	LeadDays      int  `toml:"lead_days"`
	IntervalHours int  `toml:"interval_hours"`
}

// DefaultSchedulerConfig returns the configuration used when no TOML
// file is supplied.
func DefaultSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		Scheduler: SchedulerSettings{
			Enabled:             true,
			OverdueSweepMinutes: 60,
		},
		Reminders: ReminderSettings{
			Enabled:       true,
			LeadDays:      3,
			IntervalHours: 24,
		},
	}
}

// LoadSchedulerConfig loads configuration from a TOML file
func LoadSchedulerConfig(filename string) (*SchedulerConfig, error) {
	config := DefaultSchedulerConfig()
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if config.Scheduler.OverdueSweepMinutes <= 0 {
		return nil, fmt.Errorf("overdue_sweep_minutes must be positive")
	}
	if config.Reminders.LeadDays <= 0 {
		return nil, fmt.Errorf("lead_days must be positive")
	}
	if config.Reminders.IntervalHours <= 0 {
		return nil, fmt.Errorf("interval_hours must be positive")
	}
	return config, nil
}
