package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/Fahedshaikh32/Steganography/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"empty magic", func(c *config.Config) { c.Magic = "" }},
		{"long magic", func(c *config.Config) { c.Magic = "0123456789abcdefg" }},
		{"zero extension length", func(c *config.Config) { c.MaxExtensionLength = 0 }},
		{"extension without dot", func(c *config.Config) { c.AllowedExtensions = []string{"txt"} }},
		{"extension too long", func(c *config.Config) { c.MaxExtensionLength = 3 }},
		{"output not bitmap", func(c *config.Config) { c.DefaultOutput = "out.png" }},
		{"empty secret name", func(c *config.Config) { c.DefaultSecretName = "" }},
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			tc.modify(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestIsAllowedExtension(t *testing.T) {
	cfg := config.DefaultConfig()
	require.True(t, cfg.IsAllowedExtension(".txt"))
	require.True(t, cfg.IsAllowedExtension(".SH"))
	require.False(t, cfg.IsAllowedExtension(".exe"))

	cfg.AllowedExtensions = nil
	require.True(t, cfg.IsAllowedExtension(".exe"))
}

func TestFrameOptions(t *testing.T) {
	require.Len(t, config.DefaultConfig().FrameOptions(), 2)
}

func TestLoad(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "stego.yaml")
	req.NoError(os.WriteFile(path, []byte(`
magic: "ST"
max-extension-length: 8
allowed-extensions: [".txt", ".md"]
validate-carrier: false
`), 0o600))

	cfg, err := config.Load(viper.New(), path)
	req.NoError(err)
	req.Equal("ST", cfg.Magic)
	req.Equal(8, cfg.MaxExtensionLength)
	req.Equal([]string{".txt", ".md"}, cfg.AllowedExtensions)
	req.False(cfg.ValidateCarrier)
	req.True(cfg.CheckDiskSpace)
	req.Equal(config.DefaultOutput, cfg.DefaultOutput)
}

func TestLoad_AllowedExtensions(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		args    []string
		want    []string
		allowed []string
		denied  []string
	}{
		{
			name:    "defaults",
			file:    "magic: \"#*\"\n",
			want:    config.DefaultAllowedExtensions,
			allowed: []string{".txt", ".c", ".h", ".sh"},
			denied:  []string{".md", ".exe"},
		},
		{
			name:    "replaced by file",
			file:    "allowed-extensions: [\".md\"]\n",
			want:    []string{".md"},
			allowed: []string{".md"},
			denied:  []string{".txt", ".c", ".h", ".sh"},
		},
		{
			name:    "emptied by file",
			file:    "allowed-extensions: []\n",
			want:    []string{},
			allowed: []string{".exe", ".txt", ".md"},
		},
		{
			name:    "replaced by flag",
			file:    "allowed-extensions: [\".txt\", \".md\"]\n",
			args:    []string{"--allowed-extensions", ".go"},
			want:    []string{".go"},
			allowed: []string{".go"},
			denied:  []string{".txt", ".md", ".sh"},
		},
		{
			name:    "emptied by flag",
			file:    "magic: \"#*\"\n",
			args:    []string{"--allowed-extensions="},
			want:    []string{},
			allowed: []string{".exe"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			path := filepath.Join(t.TempDir(), "stego.yaml")
			req.NoError(os.WriteFile(path, []byte(tc.file), 0o600))

			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.StringSlice("allowed-extensions", config.DefaultAllowedExtensions, "")
			req.NoError(flags.Parse(tc.args))

			vip := viper.New()
			req.NoError(vip.BindPFlag("allowed-extensions", flags.Lookup("allowed-extensions")))

			cfg, err := config.Load(vip, path)
			req.NoError(err)
			req.Equal(tc.want, cfg.AllowedExtensions)
			for _, ext := range tc.allowed {
				req.True(cfg.IsAllowedExtension(ext), ext)
			}
			for _, ext := range tc.denied {
				req.False(cfg.IsAllowedExtension(ext), ext)
			}
		})
	}
}

func TestLoad_KeepsDefaultsIntact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stego.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allowed-extensions: [\".md\"]\n"), 0o600))

	_, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, []string{".txt", ".c", ".h", ".sh"}, config.DefaultAllowedExtensions)
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stego.yaml")
	require.NoError(t, os.WriteFile(path, []byte("magic: \"ST\"\n"), 0o600))

	vip := viper.New()
	vip.Set("magic", "XY")
	cfg, err := config.Load(vip, path)
	require.NoError(t, err)
	require.Equal(t, "XY", cfg.Magic)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "stego.yaml")
	require.NoError(t, os.WriteFile(path, []byte("magic: \"\"\n"), 0o600))
	_, err = config.Load(viper.New(), path)
	require.Error(t, err)
}
