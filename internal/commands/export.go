package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the board to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		buf, filename, err := e.svc.Export.ExportProjects(cmd.Context())
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = filename
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s (%d bytes)\n", out, buf.Len())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default projects_YYYYMMDD.xlsx)")
}
