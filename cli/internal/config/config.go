// Package config loads the pure-orm CLI configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/pure-orm/connection"
)

// AppFs is the filesystem used to locate dotenv files.
var AppFs = afero.NewOsFs()

const (
	// FileName is the config file name without extension.
	FileName = ".pure-orm"
	// EnvPrefix prefixes every environment override, e.g.
	// PURE_ORM_DATABASE_HOST.
	EnvPrefix = "PURE_ORM"
)

var settingKeys = []string{
	connection.KeyType,
	connection.KeyHost,
	connection.KeyPort,
	connection.KeyName,
	connection.KeyUsername,
	connection.KeyPassword,
	connection.KeyFilename,
	connection.KeyCharset,
}

// Config holds the CLI configuration.
type Config struct {
	// File is the config file that was read, empty when none was found.
	File     string
	Debug    bool
	Database *connection.Settings
}

// Load reads the configuration. Dotenv files are loaded first so that
// their variables can override the config file. An explicit path must
// exist; otherwise the file is searched in the working directory, the
// home directory and ~/.config/pure-orm.
func Load(path string) (*Config, error) {
	loadDotenv()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("debug", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "pure-orm"))

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	settings, err := settingsFrom(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		File:     v.ConfigFileUsed(),
		Debug:    v.GetBool("debug"),
		Database: settings,
	}, nil
}

// settingsFrom maps the database.* keys onto connection settings.
func settingsFrom(v *viper.Viper) (*connection.Settings, error) {
	m := make(map[string]any)
	for _, k := range settingKeys {
		key := "database." + k
		if v.IsSet(key) {
			m[k] = v.Get(key)
		}
	}
	// Option names come back lower-cased.
	if v.IsSet("database.options") {
		m[connection.KeyOptions] = v.GetStringMapString("database.options")
	}

	s, err := connection.FromMap(m)
	if err != nil {
		return nil, fmt.Errorf("invalid database settings: %w", err)
	}
	return s, nil
}

func loadDotenv() {
	if _, err := AppFs.Stat(".env"); err == nil {
		// A malformed .env is ignored like a missing one.
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}

// Save writes the database settings to ~/.config/pure-orm/.pure-orm.yaml.
// The password is never written.
func Save(s *connection.Settings) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "pure-orm")
	if err := AppFs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.Set("database.type", string(s.Dialect()))
	if s.Dialect().Embedded() {
		v.Set("database.filename", s.Filename)
	} else {
		v.Set("database.host", s.Host)
		v.Set("database.port", s.Port)
		v.Set("database.name", s.Name)
		v.Set("database.username", s.Username)
	}
	if s.Charset != "" {
		v.Set("database.charset", s.Charset)
	}
	if len(s.Options) > 0 {
		v.Set("database.options", s.Options)
	}

	file := filepath.Join(dir, FileName+".yaml")
	if err := v.WriteConfigAs(file); err != nil {
		return "", err
	}
	return file, nil
}
