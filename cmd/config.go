package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tasktools/taskwarrior-mcp/types"
)

const (
	configName = ".taskwarrior-mcp"
	envPrefix  = "TASKWARRIOR_MCP"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present
	if err := godotenv.Load(); err != nil {
		// It's okay if .env file doesn't exist.
	}

	// Environment variable handling must be set up BEFORE reading the config
	// file so env vars can influence loading.
	viper.SetEnvPrefix(envPrefix) // e.g., TASKWARRIOR_MCP_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Legacy env names kept for deployments that predate the prefix scheme.
	_ = viper.BindEnv("taskwarrior.dataDir", "TASKWARRIOR_MCP_TASKWARRIOR_DATADIR", "TASKWARRIOR_DATA_DIR", "TASKDATA")
	_ = viper.BindEnv("taskwarrior.taskrc", "TASKWARRIOR_MCP_TASKWARRIOR_TASKRC", "TASKRC")
	_ = viper.BindEnv("backup.dir", "TASKWARRIOR_MCP_BACKUP_DIR", "BACKUP_DIR")
	_ = viper.BindEnv("backup.retentionDays", "TASKWARRIOR_MCP_BACKUP_RETENTIONDAYS", "BACKUP_RETENTION_DAYS")

	cfgFileFlag := viper.GetString("config")

	if cfgFileFlag != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home) // $HOME/.taskwarrior-mcp.yaml
		viper.AddConfigPath(".")  // ./.taskwarrior-mcp.yaml
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault("taskwarrior.bin", "task")
	viper.SetDefault("taskwarrior.dataDir", "")
	viper.SetDefault("taskwarrior.taskrc", "")
	viper.SetDefault("backup.dir", "/backups")
	viper.SetDefault("backup.retentionDays", 7)

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
