package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file
const ConfigType = "yaml"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ARCTOOLS_*)
// 3. User config file (~/.config/arctools/config.yaml)
// 4. System config file (/etc/arctools/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "arctools"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".arctools"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/arctools")

	// Current directory (for development)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("ARCTOOLS")
	viper.AutomaticEnv()

	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("qsub_bin", "")
	viper.SetDefault("julia_bin", "")
	viper.SetDefault("submit_job", true)
	viper.SetDefault("account", "")
	viper.SetDefault("modules", []string{})
	viper.SetDefault("walltime", "01:00:00")
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".arctools", ConfigFilename+"."+ConfigType), nil
	}
	return filepath.Join(userConfigDir, "arctools", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to the user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateBinary checks if a binary exists and is executable
func ValidateBinary(binPath string) bool {
	if binPath == "" {
		return false
	}

	if filepath.IsAbs(binPath) {
		info, err := os.Stat(binPath)
		if err != nil {
			return false
		}
		return info.Mode()&0111 != 0
	}

	_, err := exec.LookPath(binPath)
	return err == nil
}

// DetectQsubBin attempts to find the qsub binary in PATH.
// Returns the full absolute path if found, empty string otherwise.
func DetectQsubBin() string {
	if path, err := exec.LookPath("qsub"); err == nil {
		return path
	}
	return ""
}

// DetectJuliaBin attempts to find the julia binary in PATH.
// Returns the full absolute path if found, empty string otherwise.
func DetectJuliaBin() string {
	if path, err := exec.LookPath("julia"); err == nil {
		return path
	}
	return ""
}

// AutoDetectAndSave auto-detects binaries and saves to config if needed
// Returns true if config was updated
func AutoDetectAndSave() (bool, error) {
	updated := false

	qsubBin := viper.GetString("qsub_bin")
	if !ValidateBinary(qsubBin) {
		if detected := DetectQsubBin(); detected != "" {
			viper.Set("qsub_bin", detected)
			updated = true
		}
	}

	juliaBin := viper.GetString("julia_bin")
	if !ValidateBinary(juliaBin) {
		if detected := DetectJuliaBin(); detected != "" {
			viper.Set("julia_bin", detected)
			updated = true
		}
	}

	if updated {
		if err := SaveConfig(); err != nil {
			return false, err
		}
	}

	return updated, nil
}

// ForceDetectAndSave always re-detects binaries from the current environment
// and saves, creating the config file even when nothing changed.
// Returns true if config was updated
func ForceDetectAndSave() (bool, error) {
	updated := false

	if detected := DetectQsubBin(); detected != "" && viper.GetString("qsub_bin") != detected {
		viper.Set("qsub_bin", detected)
		updated = true
	}
	if detected := DetectJuliaBin(); detected != "" && viper.GetString("julia_bin") != detected {
		viper.Set("julia_bin", detected)
		updated = true
	}

	if err := SaveConfig(); err != nil {
		return false, err
	}

	return updated, nil
}

// LoadFromViper loads config from Viper into the Global struct
func LoadFromViper() {
	if bin := viper.GetString("qsub_bin"); bin != "" {
		Global.QsubBin = bin
	}
	if bin := viper.GetString("julia_bin"); bin != "" {
		Global.JuliaBin = bin
	}
	if submitJob := viper.GetBool("submit_job"); !submitJob {
		Global.SubmitJob = submitJob
	}
	if account := viper.GetString("account"); account != "" {
		Global.Account = account
	}
	if modules := viper.GetStringSlice("modules"); len(modules) > 0 {
		Global.Modules = modules
	}
	if walltime := viper.GetString("walltime"); walltime != "" {
		Global.Walltime = walltime
	}
}
