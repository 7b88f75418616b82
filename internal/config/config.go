package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetLogLevel() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetUserAgent() string
}

type StorageConfig interface {
	GetCredentialsDir() string
	GetCredentialsPassphrase() string
}

func New() Config {
	return newVars()
}
