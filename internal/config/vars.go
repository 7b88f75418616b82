package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	apiBaseURLKey     = "api_base_url"
	requestTimeoutKey = "request_timeout"
	credentialsDirKey = "credentials_dir"
	passphraseKey     = "credentials_passphrase"
	logLevelKey       = "log_level"
	appNameKey        = "app_name"
	envKey            = "env"

	defaultAPIBaseURL = "http://localhost:3000/api/v1"
)

// vars is the viper-backed implementation of Config. Values resolve in order:
// explicit config file (~/.config/bandung/config.yaml), BANDUNG_* environment
// variables, then defaults.
type vars struct {
	v *viper.Viper
}

var _ Config = vars{}

func newVars() vars {
	v := viper.New()

	v.SetDefault(apiBaseURLKey, defaultAPIBaseURL)
	v.SetDefault(requestTimeoutKey, time.Duration(0))
	v.SetDefault(credentialsDirKey, defaultCredentialsDir())
	v.SetDefault(passphraseKey, "")
	v.SetDefault(logLevelKey, "info")
	v.SetDefault(appNameKey, "Bandung Journal")
	v.SetDefault(envKey, "DEV")

	v.SetEnvPrefix("BANDUNG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultCredentialsDir())
	v.AddConfigPath(".")

	// A missing config file is fine; env vars and defaults cover everything.
	_ = v.ReadInConfig()

	return vars{v: v}
}

func (c vars) GetAppName() string {
	return c.v.GetString(appNameKey)
}

func (c vars) GetLogLevel() string {
	return c.v.GetString(logLevelKey)
}

func (c vars) GetEnv() string {
	return c.v.GetString(envKey)
}

func (c vars) GetAPIBaseURL() string {
	return strings.TrimRight(c.v.GetString(apiBaseURLKey), "/")
}

func (c vars) GetRequestTimeout() time.Duration {
	return c.v.GetDuration(requestTimeoutKey)
}

func (c vars) GetUserAgent() string {
	return "bandung-client/1.0"
}

func (c vars) GetCredentialsDir() string {
	return c.v.GetString(credentialsDirKey)
}

func (c vars) GetCredentialsPassphrase() string {
	return c.v.GetString(passphraseKey)
}

// defaultCredentialsDir resolves to the per-user config directory
// (e.g. ~/.config/bandung on Linux), falling back to a dotdir in $HOME.
func defaultCredentialsDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "bandung")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bandung"
	}
	return filepath.Join(home, ".bandung")
}
