package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spacemeshos/smutil"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/Fahedshaikh32/Steganography/frame"
)

const (
	DefaultConfigDirName  = ".stego"
	DefaultConfigFileName = "config.yaml"

	DefaultMagic              = frame.DefaultMagic
	DefaultMaxExtensionLength = frame.DefaultMaxExtensionLength
	DefaultValidateCarrier    = true
	DefaultCheckDiskSpace     = true
	DefaultOutput             = "output.bmp"
	DefaultSecretName         = "decoded"
	DefaultLogLevel           = "info"

	MaxMagicLength = 16
	CarrierSuffix  = ".bmp"
)

var (
	DefaultConfigFile = filepath.Join(smutil.GetUserHomeDirectory(), DefaultConfigDirName, DefaultConfigFileName)

	// DefaultAllowedExtensions are the secret file types accepted for hiding.
	DefaultAllowedExtensions = []string{".txt", ".c", ".h", ".sh"}
)

type Config struct {
	Magic              string   `mapstructure:"magic"`
	MaxExtensionLength int      `mapstructure:"max-extension-length"`
	AllowedExtensions  []string `mapstructure:"allowed-extensions"`
	ValidateCarrier    bool     `mapstructure:"validate-carrier"`
	CheckDiskSpace     bool     `mapstructure:"check-disk-space"`
	DefaultOutput      string   `mapstructure:"default-output"`
	DefaultSecretName  string   `mapstructure:"default-secret-name"`
	LogLevel           string   `mapstructure:"log-level"`
}

func DefaultConfig() *Config {
	return &Config{
		Magic:              DefaultMagic,
		MaxExtensionLength: DefaultMaxExtensionLength,
		AllowedExtensions:  append([]string(nil), DefaultAllowedExtensions...),
		ValidateCarrier:    DefaultValidateCarrier,
		CheckDiskSpace:     DefaultCheckDiskSpace,
		DefaultOutput:      DefaultOutput,
		DefaultSecretName:  DefaultSecretName,
		LogLevel:           DefaultLogLevel,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Magic == "" || len(cfg.Magic) > MaxMagicLength {
		return fmt.Errorf("invalid `magic`; expected: 1..%d characters, given: %q", MaxMagicLength, cfg.Magic)
	}

	if cfg.MaxExtensionLength < 1 || cfg.MaxExtensionLength > frame.MaxLength {
		return fmt.Errorf("invalid `max-extension-length`; expected: 1..%d, given: %d", frame.MaxLength, cfg.MaxExtensionLength)
	}

	for _, ext := range cfg.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid `allowed-extensions`; expected: entries like \".txt\", given: %q", ext)
		}
		if len(ext) > cfg.MaxExtensionLength {
			return fmt.Errorf("invalid `allowed-extensions`; expected: entries of <= %d characters, given: %q", cfg.MaxExtensionLength, ext)
		}
	}

	if !strings.HasSuffix(cfg.DefaultOutput, CarrierSuffix) {
		return fmt.Errorf("invalid `default-output`; expected: a %s file name, given: %q", CarrierSuffix, cfg.DefaultOutput)
	}

	if cfg.DefaultSecretName == "" {
		return errors.New("invalid `default-secret-name`; expected: a non-empty file name")
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid `log-level`: %w", err)
	}

	return nil
}

// FrameOptions returns the frame protocol options described by cfg.
func (cfg *Config) FrameOptions() []frame.OptionFunc {
	return []frame.OptionFunc{
		frame.WithMagic(cfg.Magic),
		frame.WithMaxExtensionLength(cfg.MaxExtensionLength),
	}
}

// IsAllowedExtension reports whether a secret with extension ext may be hidden.
// An empty allow list permits any extension.
func (cfg *Config) IsAllowedExtension(ext string) bool {
	if len(cfg.AllowedExtensions) == 0 {
		return true
	}
	for _, allowed := range cfg.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// Load returns the default config overridden by the config file at path and
// by any value bound to vip (e.g. command line flags). A missing file at the
// default location is not an error.
func Load(vip *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	} else {
		path = smutil.GetCanonicalPath(path)
	}

	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		_, statErr := os.Stat(path)
		if path != DefaultConfigFile || !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Lists given by the file or flags replace the defaults instead of
	// being merged into them element by element.
	cfg := DefaultConfig()
	if err := vip.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) { dc.ZeroFields = true }); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
