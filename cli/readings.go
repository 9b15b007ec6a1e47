// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cmdReadings = []cobra.Command{
	{
		Use:   "latest",
		Short: "Get latest reading",
		Long: "Get the most recent sensor reading\n" +
			"Usage:\n" +
			"\thybridfuel-cli readings latest\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			r, err := sdk.LatestReading()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, r)
		},
	},
	{
		Use:   "list",
		Short: "List recent readings",
		Long: "List the most recent readings in arrival order\n" +
			"Usage:\n" +
			"\thybridfuel-cli readings list --limit 50\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			page, err := sdk.Readings(Limit)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, page)
		},
	},
	{
		Use:   "current",
		Short: "Get current reading with trends",
		Long: "Get the latest reading with per-field deltas against an earlier reading\n" +
			"Usage:\n" +
			"\thybridfuel-cli readings current --back 5\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			snap, err := sdk.CurrentReading(Back)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, snap)
		},
	},
	{
		Use:   "summary",
		Short: "Summarize recent readings",
		Long: "Mean, standard deviation, minimum and maximum per field\n" +
			"Usage:\n" +
			"\thybridfuel-cli readings summary --limit 100\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			sum, err := sdk.Summary(Limit)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, sum)
		},
	},
	{
		Use:   "import <file>",
		Short: "Import history file",
		Long: "Import a history CSV file, merging it with or replacing the current history\n" +
			"Usage:\n" +
			"\thybridfuel-cli readings import history.csv --mode replace\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			res, err := sdk.ImportReadings(data, Mode)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, res)
		},
	},
	{
		Use:   "export [file]",
		Short: "Export history file",
		Long: "Export the full history as CSV to a file or standard output\n" +
			"Usage:\n" +
			"\thybridfuel-cli readings export history.csv\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			data, err := sdk.ExportReadings()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
}

// NewReadingsCmd returns readings command.
func NewReadingsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "readings [latest | list | current | summary | import | export]",
		Short: "Sensor readings",
		Long:  `Read, import and export sensor telemetry history`,
	}

	for i := range cmdReadings {
		cmd.AddCommand(&cmdReadings[i])
	}

	return &cmd
}
