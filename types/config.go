package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose     bool              `mapstructure:"verbose"`
	Config      string            `mapstructure:"config"`
	Taskwarrior TaskwarriorConfig `mapstructure:"taskwarrior" validate:"required"`
	Backup      BackupConfig      `mapstructure:"backup" validate:"required"`
}

// TaskwarriorConfig selects the task binary and its data environment.
type TaskwarriorConfig struct {
	Bin     string            `mapstructure:"bin" validate:"required"`
	DataDir string            `mapstructure:"dataDir"`
	Taskrc  string            `mapstructure:"taskrc"`
	Env     map[string]string `mapstructure:"env"`
}

// BackupConfig holds snapshot settings for the backup command.
type BackupConfig struct {
	Dir           string `mapstructure:"dir" validate:"required"`
	RetentionDays int    `mapstructure:"retentionDays" validate:"min=1"`
}
