package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fahedshaikh32/Steganography/config"
	"github.com/Fahedshaikh32/Steganography/persistence"
	"github.com/Fahedshaikh32/Steganography/shared"
	"github.com/Fahedshaikh32/Steganography/stego"
)

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <source.bmp> <secret> [output.bmp]",
		Short: "Hide a secret file inside a bitmap",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			src, secretPath := args[0], args[1]
			dst := a.cfg.DefaultOutput
			if len(args) == 3 {
				dst = args[2]
			} else {
				a.logger.Info("no output given, using default", zap.String("output", dst))
			}
			if !strings.EqualFold(filepath.Ext(dst), config.CarrierSuffix) {
				return fmt.Errorf("%w: output %q must be a %s file", shared.ErrOutputCreateFailed, dst, config.CarrierSuffix)
			}

			c, err := persistence.OpenCarrier(src)
			if err != nil {
				return err
			}
			secret, err := persistence.OpenSecret(secretPath, a.cfg.IsAllowedExtension)
			if err != nil {
				_ = c.Close()
				return err
			}
			defer func() {
				if cerr := persistence.CloseAll(c, secret); err == nil {
					err = cerr
				}
			}()

			if a.cfg.CheckDiskSpace {
				info, err := c.Stat()
				if err != nil {
					return fmt.Errorf("%w: %w", shared.ErrCarrierOpenFailed, err)
				}
				if err := persistence.CheckAvailableSpace(dst, uint64(info.Size())); err != nil {
					return err
				}
			}

			out, err := persistence.CreateOutput(dst)
			if err != nil {
				return err
			}

			bar := a.progressBar(cmd, "encoding")
			res, err := stego.Encode(c, stego.Secret{
				Reader:    secret,
				Size:      secret.Size,
				Extension: secret.Extension,
			}, out, a.stegoOptions(bar)...)
			bar.Finish()
			if err != nil {
				out.Abort()
				return err
			}
			if err := out.Commit(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "hid %s (%s) in %s: %s of %s carrier bytes used\n",
				secretPath, bytefmt.ByteSize(uint64(res.Metadata.PayloadLength)), dst,
				bytefmt.ByteSize(res.Required), bytefmt.ByteSize(res.Capacity))
			return nil
		},
	}
}
