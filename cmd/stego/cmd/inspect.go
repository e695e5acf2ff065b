package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fahedshaikh32/Steganography/persistence"
	"github.com/Fahedshaikh32/Steganography/stego"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <encoded.bmp>",
		Short: "Describe the secret hidden in a bitmap without recovering it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := persistence.OpenCarrier(args[0])
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := stego.Inspect(c, a.stegoOptions(nil)...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "extension: %s\n", res.Metadata.Extension)
			fmt.Fprintf(w, "size:      %d\n", res.Metadata.PayloadLength)
			fmt.Fprintf(w, "geometry:  %v\n", res.Geometry)
			return nil
		},
	}
}
