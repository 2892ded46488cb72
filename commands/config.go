package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/anki-tools/anki-sheets/cards"
)

// Config is the configuration file, overridden by ANKI_ environment variables e.g.
// ANKI_GOOGLE_SHEET_ID.
type Config struct {
	SpreadsheetID   string `mapstructure:"google_sheet_id"`
	Worksheet       string `mapstructure:"google_sheet_name"`
	Credentials     string `mapstructure:"credentials"`
	Tokens          string `mapstructure:"tokens"`
	Workdir         string `mapstructure:"workdir"`
	Output          string `mapstructure:"output"`
	ArchiveOnExport bool   `mapstructure:"archive_on_export"`
	LogRange        string `mapstructure:"log_range"`
}

func loadConfig(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("google_sheet_id", "")
	v.SetDefault("google_sheet_name", "")
	v.SetDefault("worksheet", "")
	v.SetDefault("credentials", "")
	v.SetDefault("tokens", "")
	v.SetDefault("workdir", "")
	v.SetDefault("output", "")
	v.SetDefault("archive_on_export", true)
	v.SetDefault("log_range", "")

	v.SetEnvPrefix("ANKI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file = strings.TrimSpace(file); file != "" {
		v.SetConfigFile(file)
		if filepath.Ext(file) == "" {
			v.SetConfigType("json")
		}

		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || file != DEFAULT_CONFIG {
				return nil, fmt.Errorf("%w: could not load configuration file %s (%v)", cards.ErrConfiguration, file, err)
			}
		}
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: invalid configuration (%v)", cards.ErrConfiguration, err)
	}

	if config.Worksheet == "" {
		config.Worksheet = v.GetString("worksheet")
	}

	return &config, nil
}

// merge fills in any options not set on the command line from the configuration.
func (c *command) merge(config *Config) {
	if strings.TrimSpace(c.credentials) == "" {
		c.credentials = config.Credentials
	}

	if strings.TrimSpace(c.tokens) == "" {
		c.tokens = config.Tokens
	}

	if strings.TrimSpace(c.workdir) == "" {
		c.workdir = config.Workdir
	}

	if strings.TrimSpace(c.url) == "" {
		c.url = config.SpreadsheetID
	}

	if strings.TrimSpace(c.credentials) == "" {
		c.credentials = DEFAULT_CREDENTIALS
	}

	if strings.TrimSpace(c.workdir) == "" {
		c.workdir = DEFAULT_WORKDIR
	}
}

// validate checks the options common to all the Google Sheets commands and returns the
// spreadsheet ID.
func (c *command) validate() (string, error) {
	if strings.TrimSpace(c.credentials) == "" {
		return "", fmt.Errorf("%w: --credentials is a required option", cards.ErrConfiguration)
	}

	if strings.TrimSpace(c.url) == "" {
		return "", fmt.Errorf("%w: --url (or 'google_sheet_id') is a required option", cards.ErrConfiguration)
	}

	id, err := spreadsheetID(c.url)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cards.ErrConfiguration, err)
	}

	return id, nil
}
