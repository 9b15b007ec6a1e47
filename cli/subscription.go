// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import "github.com/spf13/cobra"

type subscriptionRes struct {
	Topic string `json:"topic"`
}

var cmdSubscription = []cobra.Command{
	{
		Use:   "get",
		Short: "Get subscription topic",
		Long: "Get the broker topic the listener is subscribed to\n" +
			"Usage:\n" +
			"\thybridfuel-cli subscription get\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			topic, err := sdk.Subscription()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, subscriptionRes{Topic: topic})
		},
	},
	{
		Use:   "switch <topic>",
		Short: "Switch subscription topic",
		Long: "Move the listener to another broker topic\n" +
			"Usage:\n" +
			"\thybridfuel-cli subscription switch plant/unit-2/sensors\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			topic, err := sdk.SwitchSubscription(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, subscriptionRes{Topic: topic})
		},
	},
}

// NewSubscriptionCmd returns subscription command.
func NewSubscriptionCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "subscription [get | switch]",
		Short: "Broker subscription",
		Long:  `View or switch the broker topic the listener consumes`,
	}

	for i := range cmdSubscription {
		cmd.AddCommand(&cmdSubscription[i])
	}

	return &cmd
}
