package config

import "time"

// Theme names accepted by ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds terminal UI configuration.
type UIConfig struct {
	// Theme is auto, light or dark. Auto consults the environment.
	Theme string `yaml:"theme"`

	// CurrentUserID is the member the client acts as.
	CurrentUserID string `yaml:"current_user_id"`

	// GraphTick is the interval between published layout frames.
	GraphTick string `yaml:"graph_tick"`
}

// GetGraphTick returns the graph tick as a duration.
func (c *Config) GetGraphTick() time.Duration {
	d, err := time.ParseDuration(c.UI.GraphTick)
	if err != nil || d <= 0 {
		return 30 * time.Millisecond
	}
	return d
}
