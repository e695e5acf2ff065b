package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Fahedshaikh32/Steganography/config"
	"github.com/Fahedshaikh32/Steganography/shared"
	"github.com/Fahedshaikh32/Steganography/stego"
)

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""
)

// app holds the state shared by the commands of one invocation.
type app struct {
	vip          *viper.Viper
	cfgFile      string
	printConfig  bool
	showProgress bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd returns the stego command tree.
func NewRootCmd() *cobra.Command {
	a := &app{vip: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "stego",
		Short: "Hide files inside bitmap images",
		Long: `stego hides a secret file in the least-significant bits of the pixel data
of an uncompressed BMP image, and recovers it later. The image header is kept
intact and every pixel changes by at most one unit per color channel.`,
		Version:           fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", fmt.Sprintf("path to configuration file (default %s)", config.DefaultConfigFile))
	flags.BoolVar(&a.printConfig, "print-config", false, "print the used config")
	flags.BoolVar(&a.showProgress, "progress", true, "show a progress bar while hiding or recovering data")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("magic", config.DefaultMagic, "marker identifying carriers holding a secret")
	flags.Int("max-extension-length", config.DefaultMaxExtensionLength, "longest secret file extension accepted")
	flags.StringSlice("allowed-extensions", config.DefaultAllowedExtensions, "secret file extensions accepted for hiding (empty allows any)")
	flags.Bool("validate-carrier", config.DefaultValidateCarrier, "reject carriers that are not uncompressed bitmaps")
	flags.Bool("check-disk-space", config.DefaultCheckDiskSpace, "verify free disk space before writing outputs")
	flags.String("default-output", config.DefaultOutput, "output image used when none is given")
	flags.String("default-secret-name", config.DefaultSecretName, "base name of recovered secrets when none is given")
	if err := bindFlags(a.vip, flags, "log-level", "magic", "max-extension-length", "allowed-extensions",
		"validate-carrier", "check-disk-space", "default-output", "default-secret-name"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		a.encodeCmd(),
		a.decodeCmd(),
		a.inspectCmd(),
		a.capacityCmd(),
	)
	return rootCmd
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if kind := shared.KindOf(err); kind != nil {
			fmt.Fprintf(os.Stderr, "stego: FAILED: %v\n", kind)
		}
		fmt.Fprintf(os.Stderr, "stego: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.vip, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	a.logger = logger

	if a.printConfig {
		spew.Fdump(cmd.ErrOrStderr(), cfg)
	}
	return nil
}

// stegoOptions returns the options for one operation, reporting progress to
// bar when not nil.
func (a *app) stegoOptions(bar *progressBar) []stego.OptionFunc {
	opts := []stego.OptionFunc{
		stego.WithConfig(a.cfg),
		stego.WithLogger(a.logger),
	}
	if bar != nil {
		opts = append(opts, stego.WithProgress(bar.Update))
	}
	return opts
}

func (a *app) progressBar(cmd *cobra.Command, label string) *progressBar {
	if !a.showProgress {
		return nil
	}
	return newProgressBar(cmd.ErrOrStderr(), label)
}

// bindFlags makes the named flags override the matching config keys.
func bindFlags(vip *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if err := vip.BindPFlag(name, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}
