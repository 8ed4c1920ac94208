package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/estado/internal/convert"
	"github.com/cleared-dev/estado/internal/export"
	"github.com/cleared-dev/estado/internal/logger"
	"github.com/cleared-dev/estado/internal/render"
)

// headerFlags override the client section of the configuration.
type headerFlags struct {
	client  string
	account string
	period  string
}

func (h *headerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&h.client, "client", "", "client name printed on every page")
	cmd.Flags().StringVar(&h.account, "account", "", "account number printed on every page")
	cmd.Flags().StringVar(&h.period, "period", "", "statement period, e.g. \"31 de enero de 2025\"")
}

func (h *headerFlags) header() render.Header {
	return render.Header{Client: h.client, Account: h.account, Period: h.period}
}

func newConvertCommand(g *globals) *cobra.Command {
	var job convert.Job
	var hdr headerFlags

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a statement export (xlsx, xls, csv, txt, pdf) into a clean PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job.Input = args[0]
			job.Header = hdr.header()

			log := logger.FromContext(cmd.Context())
			res, err := convert.New(g.cfg, log).Convert(cmd.Context(), job)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%d records, %d pages)\n", res.Output, len(res.Records), res.Summary.Pages)
			for _, f := range res.Findings {
				fmt.Fprintf(out, "  warning: %s\n", f.Error())
			}
			if job.RecordsOut != "" {
				fmt.Fprintf(out, "Records written to %s\n", job.RecordsOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&job.Output, "output", "o", "", "output PDF path (default <prefix>_<account>_<YYYYMMDD>.pdf next to the input)")
	cmd.Flags().StringVar(&job.Format, "format", "", "input format: xlsx, xls, csv, txt or pdf (default detect)")
	cmd.Flags().StringVar(&job.RecordsOut, "records", "", "also write the reconstructed records as CSV to this path")
	cmd.Flags().StringVar(&job.LogRoot, "log-dir", "", "record the run in <dir>/logs/conversions.csv")
	hdr.register(cmd)

	return cmd
}

func newExtractCommand(g *globals) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "extract <input>",
		Short: "Reconstruct transaction records and write them as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := convert.New(g.cfg, logger.FromContext(cmd.Context()))
			records, _, err := c.Extract(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			if output == "" {
				return export.WriteRecords(cmd.OutOrStdout(), records)
			}
			if err := convert.WriteRecordsFile(output, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: xlsx, xls, csv, txt or pdf (default detect)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (default stdout)")

	return cmd
}
