// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"bytes"
	"testing"

	"github.com/hybridfuel/hybridfuel/cli"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type outputLog uint8

const (
	usageLog outputLog = iota
	errLog
	entityLog
	okLog
)

func executeCommand(t *testing.T, root *cobra.Command, args ...string) string {
	buffer := new(bytes.Buffer)
	root.SetOut(buffer)
	root.SetErr(buffer)
	root.SetArgs(args)
	err := root.Execute()
	assert.NoError(t, err, "Error executing command")
	return buffer.String()
}

func setFlags(rootCmd *cobra.Command) *cobra.Command {
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
		20,
		"Limit query parameter",
	)

	rootCmd.PersistentFlags().IntVarP(
		&cli.Back,
		"back",
		"b",
		1,
		"Back query parameter",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.Mode,
		"mode",
		"m",
		"",
		"Import mode",
	)

	rootCmd.PersistentFlags().BoolVar(
		&cli.Remote,
		"remote",
		false,
		"Compute blends on the service",
	)

	return rootCmd
}
