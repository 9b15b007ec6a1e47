// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to w at the given level.
func New(w io.Writer, levelText string) (*slog.Logger, error) {
	var level Level
	if err := level.UnmarshalText(levelText); err != nil {
		return nil, fmt.Errorf("%w: %q", err, levelText)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level.Slog(),
	})

	return slog.New(handler), nil
}

// ExitWithError exits the process with the given code if it is non-zero.
// It is meant to be deferred at the top of main so other deferred calls
// run before the process exits.
func ExitWithError(code *int) {
	if code != nil && *code != 0 {
		os.Exit(*code)
	}
}
