package config

const (
	defaultConfigPath      = "~/.config/asslrc/config.toml"
	defaultLogDir          = "~/.local/share/asslrc/logs"
	defaultHistoryDB       = "~/.local/share/asslrc/history.db"
	defaultRemainderPolicy = "truncate"
	defaultWorkers         = 1
	maxWorkers             = 64
	defaultOutputExtension = ".lrc"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	// LogLevelEnv overrides logging.level when set.
	LogLevelEnv = "ASSLRC_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Convert: Convert{
			RemainderPolicy: defaultRemainderPolicy,
			Workers:         defaultWorkers,
			IncludeComments: true,
			OutputExtension: defaultOutputExtension,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}
