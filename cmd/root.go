package cmd

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/RJBOGA/JAP/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jap"

	defaultSessionTTL = 24 * time.Hour
)

type SchedulingConfig struct {
	DurationMinutes int `mapstructure:"duration-minutes"`
	WindowDays      int `mapstructure:"window-days"`
}

type Config struct {
	Endpoint     string            `mapstructure:"endpoint"`
	UserAgent    string            `mapstructure:"user-agent"`
	SessionFile  string            `mapstructure:"session-file"`
	SessionTTL   time.Duration     `mapstructure:"session-ttl"`
	PasswordFile string            `mapstructure:"password-file"`
	Scheduling   *SchedulingConfig `mapstructure:"scheduling"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jap is a conversational cli for the JAP recruiting backend: ask for jobs, candidates and interviews in plain English",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("session-file", "JAP_SESSION_FILE"); err != nil {
		log.Fatalf("binding JAP_SESSION_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("password-file", "JAP_PASSWORD_FILE"); err != nil {
		log.Fatalf("binding JAP_PASSWORD_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jap.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("session-ttl", defaultSessionTTL)
	viper.SetDefault("scheduling.duration-minutes", 30)
	viper.SetDefault("scheduling.window-days", 7)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// Without an explicit --config the file is optional; every key has a
	// usable default or an environment binding.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = defaultSessionTTL
	}
	if config.Scheduling == nil {
		config.Scheduling = &SchedulingConfig{DurationMinutes: 30, WindowDays: 7}
	}

	return config, nil
}

// newSessionStore builds the session store for the configured (or default)
// state file location.
func newSessionStore(config *Config) *session.Store {
	path := config.SessionFile
	if path == "" {
		path = viper.GetString("session-file")
	}
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, "."+app, "session.json")
		} else {
			path = app + "-session.json"
		}
	}

	return session.NewStore(path)
}
