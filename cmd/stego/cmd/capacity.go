package cmd

import (
	"fmt"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Fahedshaikh32/Steganography/carrier"
	"github.com/Fahedshaikh32/Steganography/frame"
	"github.com/Fahedshaikh32/Steganography/persistence"
	"github.com/Fahedshaikh32/Steganography/shared"
)

func (a *app) capacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <source.bmp> [secret]",
		Short: "Report how much data a bitmap can hide",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := persistence.OpenCarrier(args[0])
			if err != nil {
				return err
			}
			defer c.Close()

			h, err := carrier.ReadHeader(c)
			if err != nil {
				return err
			}
			if a.cfg.ValidateCarrier {
				if err := carrier.Validate(h); err != nil {
					return err
				}
			}
			geom := h.Geometry()
			capacity := geom.Capacity()
			magicLen := uint64(len(a.cfg.Magic))

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Property", "Value", "Bytes"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.Append([]string{"geometry", geom.String(), ""})
			table.Append(sizeRow("carrier capacity", capacity))
			table.Append(sizeRow("max secret size",
				frame.MaxPayload(capacity, magicLen, uint64(a.cfg.MaxExtensionLength))))

			var fitErr error
			if len(args) == 2 {
				secret, err := persistence.OpenSecret(args[1], a.cfg.IsAllowedExtension)
				if err != nil {
					return err
				}
				_ = secret.Close()

				extLen := uint64(len(secret.Extension))
				required := frame.RequiredBytes(magicLen, extLen, uint64(secret.Size))
				fitErr = frame.CheckCapacity(capacity, magicLen, extLen, uint64(secret.Size))

				table.Append(sizeRow("secret size", uint64(secret.Size)))
				table.Append(sizeRow("required carrier bytes", required))
				if required <= capacity {
					table.Append(sizeRow("free carrier bytes", capacity-required))
				}
				fits := "yes"
				if fitErr != nil {
					fits = fmt.Sprintf("no (%v)", shared.KindOf(fitErr))
				}
				table.Append([]string{"fits", fits, ""})
			}
			table.Render()
			return fitErr
		},
	}
}

func sizeRow(name string, n uint64) []string {
	return []string{name, bytefmt.ByteSize(n), strconv.FormatUint(n, 10)}
}
