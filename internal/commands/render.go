package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/estado/internal/convert"
	"github.com/cleared-dev/estado/internal/logger"
)

func newRenderCommand(g *globals) *cobra.Command {
	var output string
	var hdr headerFlags

	cmd := &cobra.Command{
		Use:   "render <records.csv>",
		Short: "Render a PDF from a records CSV produced by extract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := convert.ReadRecordsFile(args[0])
			if err != nil {
				return err
			}

			header := hdr.header()
			if output == "" {
				account := header.Account
				if account == "" {
					account = g.cfg.Client.Account
				}
				output = filepath.Join(filepath.Dir(args[0]), convert.OutputName(g.cfg.OutputPrefix, account, time.Now()))
			}

			var buf bytes.Buffer
			c := convert.New(g.cfg, logger.FromContext(cmd.Context()))
			summary, err := c.Render(cmd.Context(), records, header, &buf)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d records, %d pages)\n", output, summary.Records, summary.Pages)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path")
	hdr.register(cmd)

	return cmd
}
