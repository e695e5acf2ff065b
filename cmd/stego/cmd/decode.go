package cmd

import (
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fahedshaikh32/Steganography/persistence"
	"github.com/Fahedshaikh32/Steganography/stego"
)

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <encoded.bmp> [output_basename]",
		Short: "Recover a secret file hidden in a bitmap",
		Long: `Recover a secret file hidden in a bitmap. The recovered file is named after
output_basename, with any extension replaced by the one stored in the image.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			name := a.cfg.DefaultSecretName
			if len(args) == 2 {
				name = args[1]
			} else {
				a.logger.Info("no output given, using default", zap.String("output", name))
			}

			c, err := persistence.OpenCarrier(args[0])
			if err != nil {
				return err
			}
			defer func() {
				if cerr := persistence.CloseAll(c); err == nil {
					err = cerr
				}
			}()

			sink := &persistence.SecretSink{
				BaseName:   persistence.SecretBaseName(name),
				CheckSpace: a.cfg.CheckDiskSpace,
			}
			bar := a.progressBar(cmd, "decoding")
			res, err := stego.Decode(c, sink, a.stegoOptions(bar)...)
			bar.Finish()
			if err != nil {
				sink.Abort()
				return err
			}
			if err := sink.Commit(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "recovered %s (%s) from %s\n",
				sink.Path(), bytefmt.ByteSize(uint64(res.Metadata.PayloadLength)), args[0])
			return nil
		},
	}
}
