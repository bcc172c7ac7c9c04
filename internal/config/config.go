package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jscyril/golang_video_player/internal/media"
	playerrors "github.com/jscyril/golang_video_player/pkg/errors"
)

// appName names the config directory under XDG_CONFIG_HOME
const appName = "golang_video_player"

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
	usage        string
}

var (
	source = configVar[string]{
		envKey:  "PLAYER_SOURCE",
		flagKey: "source",
		usage:   "Media file to play (also the first argument)",
	}
	configFile = configVar[string]{
		envKey:  "PLAYER_CONFIG",
		flagKey: "config",
		usage:   "Config file (default $XDG_CONFIG_HOME/" + appName + "/config.yaml)",
	}
	envFile = configVar[string]{
		flagKey:      "env-file",
		defaultValue: ".env",
		usage:        "Dotenv file loaded before reading the environment",
	}
	logPath = configVar[string]{
		envKey:  "PLAYER_LOG_PATH",
		flagKey: "log-path",
		usage:   "Log file path (empty disables logging)",
	}
	logLevel = configVar[string]{
		envKey:       "PLAYER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
		usage:        "Logging level",
	}
	seekStep = configVar[time.Duration]{
		envKey:       "PLAYER_SEEK_STEP",
		flagKey:      "seek-step",
		defaultValue: 5 * time.Second,
		usage:        "Seek distance of the arrow keys",
	}
	volumeStep = configVar[float64]{
		envKey:       "PLAYER_VOLUME_STEP",
		flagKey:      "volume-step",
		defaultValue: 0.05,
		usage:        "Volume change of the arrow keys and mouse wheel",
	}
	fade = configVar[time.Duration]{
		envKey:       "PLAYER_FADE",
		flagKey:      "fade",
		defaultValue: 200 * time.Millisecond,
		usage:        "Duration of the controls fade",
	}
	color = configVar[string]{
		envKey:       "PLAYER_COLOR",
		flagKey:      "color",
		defaultValue: "#ff87d7",
		usage:        "Accent color of the controls (hex)",
	}
)

// Config holds application configuration
type Config struct {
	Source     string
	ConfigFile string
	LogPath    string
	LogLevel   slog.Level
	SeekStep   time.Duration
	VolumeStep float64
	Fade       time.Duration
	Color      string
}

// Load resolves configuration from, in order of precedence, the positional
// argument, flags, the environment (including the dotenv file), the config
// file and the defaults.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.String(source.flagKey, source.defaultValue, source.usage)
	flags.String(configFile.flagKey, configFile.defaultValue, configFile.usage)
	flags.String(envFile.flagKey, envFile.defaultValue, envFile.usage)
	flags.String(logPath.flagKey, logPath.defaultValue, logPath.usage)
	flags.String(logLevel.flagKey, logLevel.defaultValue, logLevel.usage)
	flags.Duration(seekStep.flagKey, seekStep.defaultValue, seekStep.usage)
	flags.Float64(volumeStep.flagKey, volumeStep.defaultValue, volumeStep.usage)
	flags.Duration(fade.flagKey, fade.defaultValue, fade.usage)
	flags.String(color.flagKey, color.defaultValue, color.usage)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	dotenv, _ := flags.GetString(envFile.flagKey)
	if err := loadDotEnv(dotenv); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	v.BindEnv(source.flagKey, source.envKey)
	v.BindEnv(configFile.flagKey, configFile.envKey)
	v.BindEnv(logPath.flagKey, logPath.envKey)
	v.BindEnv(logLevel.flagKey, logLevel.envKey)
	v.BindEnv(seekStep.flagKey, seekStep.envKey)
	v.BindEnv(volumeStep.flagKey, volumeStep.envKey)
	v.BindEnv(fade.flagKey, fade.envKey)
	v.BindEnv(color.flagKey, color.envKey)

	v.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	v.SetDefault(seekStep.flagKey, seekStep.defaultValue)
	v.SetDefault(volumeStep.flagKey, volumeStep.defaultValue)
	v.SetDefault(fade.flagKey, fade.defaultValue)
	v.SetDefault(color.flagKey, color.defaultValue)

	if err := readConfigFile(v, v.GetString(configFile.flagKey)); err != nil {
		return nil, err
	}

	if flags.NArg() > 0 {
		v.Set(source.flagKey, flags.Arg(0))
	}

	cfg := &Config{
		Source:     v.GetString(source.flagKey),
		ConfigFile: v.ConfigFileUsed(),
		LogPath:    v.GetString(logPath.flagKey),
		SeekStep:   v.GetDuration(seekStep.flagKey),
		VolumeStep: v.GetFloat64(volumeStep.flagKey),
		Fade:       v.GetDuration(fade.flagKey),
		Color:      v.GetString(color.flagKey),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v.GetString(logLevel.flagKey)))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the resolved values
func (cfg *Config) Validate() error {
	if cfg.Source == "" {
		return playerrors.ErrNoSource
	}
	if !media.IsSupported(cfg.Source) {
		return fmt.Errorf("%w: %s", playerrors.ErrUnsupportedSource, cfg.Source)
	}
	if cfg.SeekStep <= 0 {
		return fmt.Errorf("seek step must be greater than 0")
	}
	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 1 {
		return fmt.Errorf("volume step must be in (0, 1]")
	}
	if cfg.Fade < 0 {
		return fmt.Errorf("fade must not be negative")
	}
	if _, err := colorful.Hex(cfg.Color); err != nil {
		return fmt.Errorf("color %q: %w", cfg.Color, err)
	}
	return nil
}

// loadDotEnv exports the file's variables without overriding the
// environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// readConfigFile reads path, or config.yaml from the XDG config directory
// when path is empty. Only an explicit path must exist.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// configDir returns the XDG config directory for the player
func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName)
}
