package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Preferences holds the CLI defaults stored in config.toml
type Preferences struct {
	Output OutputPreferences `toml:"output"`
	Norms  NormPreferences   `toml:"norms"`
	Payoff PayoffPreferences `toml:"payoff"`
}

// OutputPreferences holds report settings
type OutputPreferences struct {
	Format    string `toml:"format"`
	OutputDir string `toml:"output_dir,omitempty"`
}

// NormPreferences points the CLI at a custom norm file
type NormPreferences struct {
	File string `toml:"file,omitempty"`
}

// PayoffPreferences overrides simulator parameters
type PayoffPreferences struct {
	HorizonMonths *int `toml:"horizon_months,omitempty"`
}

// DefaultPreferences returns the preferences used when no file exists
func DefaultPreferences() Preferences {
	return Preferences{
		Output: OutputPreferences{
			Format: "console",
		},
	}
}

// PreferencesDir returns the XDG-compliant config directory
func PreferencesDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "konsensi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "konsensi")
}

// PreferencesPath returns the full path to the preferences file
func PreferencesPath() string {
	return filepath.Join(PreferencesDir(), "config.toml")
}

// LoadPreferences reads the preferences file, returning defaults if it doesn't exist
func LoadPreferences() (Preferences, error) {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(PreferencesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("reading preferences: %w", err)
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("parsing preferences: %w", err)
	}
	if prefs.Payoff.HorizonMonths != nil && *prefs.Payoff.HorizonMonths <= 0 {
		return prefs, fmt.Errorf("payoff.horizon_months must be greater than 0")
	}

	return prefs, nil
}

// SavePreferences writes the preferences to disk
func SavePreferences(prefs Preferences) error {
	dir := PreferencesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(PreferencesPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating preferences file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(prefs)
}
