package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codescan-report/internal/app"
)

type inspectOptions struct {
	Workbook string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the sheets of a generated workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Workbook, "workbook", app.DefaultOutputPath, "Workbook path")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := app.NewOfflineService()
	result, err := service.Inspect(app.InspectRequest{Path: opts.Workbook})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, sheet := range result.Sheets {
		fmt.Fprintf(out, "- %s: %d rows x %d columns\n", sheet.Name, sheet.Rows, sheet.Columns)
	}
	return nil
}
