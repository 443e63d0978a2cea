package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"enigmatick/internal/logging"
)

const (
	configName = "config"
	configType = "toml"
	// ConfigFilename is the config file inside the home directory.
	ConfigFilename = configName + "." + configType

	envPrefix   = "ENIGMATICK"
	homeEnv     = envPrefix + "_HOME"
	defaultHome = "~/.enigmatick"

	keyStoreBackend    = "store.backend"
	keyStorePath       = "store.path"
	keyStorePassphrase = "store.passphrase"
	keyPickleKey       = "pickle.key"
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"
)

// Snapshot backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string // config directory, e.g. $HOME/.enigmatick
	Store     StoreConfig
	PickleKey string // base64 32-byte key; empty stores pickles unsealed
	Log       logging.Config
}

// StoreConfig selects where the state snapshot lives between runs.
type StoreConfig struct {
	Backend    string // file, badger or redis
	Path       string // directory for file and badger; defaults to Home
	Passphrase string // seals the file backend when set
}

// ResolveHome returns the home directory: flag when set, else
// $ENIGMATICK_HOME, else ~/.enigmatick.
func ResolveHome(flag string) (string, error) {
	home := flag
	if home == "" {
		home = os.Getenv(homeEnv)
	}
	if home == "" {
		home = defaultHome
	}
	expanded, err := homedir.Expand(home)
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Clean(expanded), nil
}

// DefaultConfig returns the configuration used when no file sets a key.
func DefaultConfig(home string) Config {
	return Config{
		Home:  home,
		Store: StoreConfig{Backend: BackendFile, Path: home},
		Log:   logging.Config{Level: "warn", Format: "text"},
	}
}

// LoadConfig reads home/config.toml, if present, and ENIGMATICK_* variables
// into v and returns the resulting Config.
func LoadConfig(v *viper.Viper, home string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	def := DefaultConfig(home)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(home)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyStoreBackend, def.Store.Backend)
	v.SetDefault(keyStorePath, def.Store.Path)
	v.SetDefault(keyStorePassphrase, "")
	v.SetDefault(keyPickleKey, "")
	v.SetDefault(keyLogLevel, def.Log.Level)
	v.SetDefault(keyLogFormat, def.Log.Format)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	storePath, err := homedir.Expand(v.GetString(keyStorePath))
	if err != nil {
		return Config{}, fmt.Errorf("resolve store path: %w", err)
	}
	cfg := Config{
		Home: home,
		Store: StoreConfig{
			Backend:    strings.ToLower(v.GetString(keyStoreBackend)),
			Path:       storePath,
			Passphrase: v.GetString(keyStorePassphrase),
		},
		PickleKey: v.GetString(keyPickleKey),
		Log: logging.Config{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
		},
	}
	switch cfg.Store.Backend {
	case BackendFile, BackendBadger, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return cfg, nil
}

// configFile is the on-disk shape of config.toml.
type configFile struct {
	Store struct {
		Backend    string `toml:"backend"`
		Path       string `toml:"path"`
		Passphrase string `toml:"passphrase,omitempty"`
	} `toml:"store"`
	Pickle struct {
		Key string `toml:"key,omitempty"`
	} `toml:"pickle"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

// WriteConfigFile writes cfg to home/config.toml. It refuses to overwrite an
// existing file unless force is set.
func WriteConfigFile(cfg Config, force bool) (string, error) {
	path := filepath.Join(cfg.Home, ConfigFilename)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists", path)
		}
	}

	var file configFile
	file.Store.Backend = cfg.Store.Backend
	file.Store.Path = cfg.Store.Path
	file.Store.Passphrase = cfg.Store.Passphrase
	file.Pickle.Key = cfg.PickleKey
	file.Log.Level = cfg.Log.Level
	file.Log.Format = cfg.Log.Format

	data, err := toml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
