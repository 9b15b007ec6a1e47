// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains cli main function to run HybridFuel CLI.
package main

import (
	"log"

	"github.com/hybridfuel/hybridfuel/cli"
	sdk "github.com/hybridfuel/hybridfuel/pkg/sdk/go"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
)

const defURL = "http://localhost:9030"

func main() {
	sdkConf := sdk.Config{
		URL:             defURL,
		TLSVerification: false,
	}

	// Root
	rootCmd := &cobra.Command{
		Use: "hybridfuel-cli",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			flagURL := sdkConf.URL
			cfg, err := cli.ParseConfig(sdkConf)
			if err != nil {
				log.Fatalf("Failed to parse config: %s", err)
			}
			if cmd.Flags().Changed("url") {
				cfg.URL = flagURL
			}
			sdkConf = cfg

			s := sdk.NewSDK(sdkConf)
			cli.SetSDK(s)
		},
	}

	// API commands
	healthCmd := cli.NewHealthCmd()
	readingsCmd := cli.NewReadingsCmd()
	subscriptionCmd := cli.NewSubscriptionCmd()
	blendCmd := cli.NewBlendCmd()
	configCmd := cli.NewConfigCmd()
	feedstockCmd := cli.NewFeedstockCmd()

	// Root Commands
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(readingsCmd)
	rootCmd.AddCommand(subscriptionCmd)
	rootCmd.AddCommand(blendCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(feedstockCmd)

	// Root Flags
	rootCmd.PersistentFlags().StringVarP(
		&sdkConf.URL,
		"url",
		"u",
		sdkConf.URL,
		"HybridFuel service URL",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&sdkConf.TLSVerification,
		"tls-verification",
		"T",
		sdkConf.TLSVerification,
		"Verify the service TLS certificate",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&sdkConf.CurlFlag,
		"curl",
		"x",
		false,
		"Convert HTTP request to cURL command",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.ConfigPath,
		"config",
		"c",
		"",
		"Config path",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"r",
		cli.RawOutput,
		"Enables raw output mode for easier parsing of output",
	)

	rootCmd.PersistentFlags().IntVarP(
		&cli.Limit,
		"limit",
		"l",
		cli.Limit,
		"Limit query parameter",
	)

	rootCmd.PersistentFlags().IntVarP(
		&cli.Back,
		"back",
		"b",
		cli.Back,
		"Number of readings to look back for deltas",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.Mode,
		"mode",
		"m",
		cli.Mode,
		"Import mode: merge or replace",
	)

	rootCmd.PersistentFlags().BoolVar(
		&cli.Remote,
		"remote",
		cli.Remote,
		"Compute blends on the service instead of locally",
	)

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
