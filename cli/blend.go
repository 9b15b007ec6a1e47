// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/spf13/cobra"
)

// Remote sends blend commands to the service instead of computing them
// locally.
var Remote = false

var cmdBlend = []cobra.Command{
	{
		Use:   "predict <coal_mw> <biogas_pct>",
		Short: "Predict blend",
		Long: "Estimate power and particulate emissions of a co-firing blend\n" +
			"Usage:\n" +
			"\thybridfuel-cli blend predict 200 10\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			coal, err := parseFloatArg(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			biogas, err := parseFloatArg(args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			var p blend.Prediction
			if Remote {
				p, err = sdk.PredictBlend(coal, biogas)
			} else {
				p, err = blend.Predict(coal, biogas)
			}
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, p)
		},
	},
	{
		Use:   "optimize <coal_mw>",
		Short: "Optimize blend",
		Long: "Find the safe biogas share with the best power to pollution score\n" +
			"Usage:\n" +
			"\thybridfuel-cli blend optimize 200\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}
			coal, err := parseFloatArg(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			var o blend.Optimum
			if Remote {
				o, err = sdk.OptimizeBlend(coal)
			} else {
				o, err = blend.Optimize(coal)
			}
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, o)
		},
	},
}

// NewBlendCmd returns blend command.
func NewBlendCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "blend [predict | optimize]",
		Short: "Blend calculator",
		Long:  `Predict and optimize biogas-coal co-firing blends`,
	}

	for i := range cmdBlend {
		cmd.AddCommand(&cmdBlend[i])
	}

	return &cmd
}
