// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import "github.com/spf13/cobra"

// NewFeedstockCmd returns the feedstock map command.
func NewFeedstockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feedstock",
		Short: "Feedstock sites",
		Long: "Regional feedstock sites and the map viewport\n" +
			"usage:\n" +
			"\thybridfuel-cli feedstock",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			m, err := sdk.Feedstock()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, m)
		},
	}
}
