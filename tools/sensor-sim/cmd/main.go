// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains the entry point of the sensor-sim tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hokaccha/go-prettyjson"
	"github.com/hybridfuel/hybridfuel/logger"
	"github.com/hybridfuel/hybridfuel/pkg/ticker"
	"github.com/hybridfuel/hybridfuel/pkg/uuid"
	sim "github.com/hybridfuel/hybridfuel/tools/sensor-sim"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
)

func main() {
	var (
		confFile string
		logLevel string
		cfg      = sim.DefaultConfig()
	)

	rootCmd := &cobra.Command{
		Use:   "sensor-sim",
		Short: "sensor-sim publishes simulated plant sensor readings",
		Long: `Tool that publishes random temperature, gas and dust readings to the MQTT
broker the HybridFuel service listens on.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if confFile != "" {
				data, err := os.ReadFile(confFile)
				if err != nil {
					log.Fatalf("Failed to read config file: %s", err)
				}
				if err := toml.Unmarshal(data, &cfg); err != nil {
					log.Fatalf("Failed to decode config file: %s", err)
				}
			}

			l, err := logger.New(os.Stderr, logLevel)
			if err != nil {
				log.Fatalf("Failed to init logger: %s", err)
			}

			gen, err := sim.NewGenerator(cfg.Ranges, cfg.Seed)
			if err != nil {
				log.Fatalf("Failed to create generator: %s", err)
			}

			pub, err := sim.NewPublisher(cfg, gen, uuid.New(), l, nil)
			if err != nil {
				log.Fatalf("Failed to create publisher: %s", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := pub.Run(ctx, ticker.NewTicker(cfg.Interval))
			out, merr := prettyjson.Marshal(res)
			if merr == nil {
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			if err != nil {
				log.Fatalf("Simulation failed: %s", err)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfg.URL, "broker", "b", cfg.URL, "MQTT broker URL")
	flags.StringVarP(&cfg.Topic, "topic", "t", cfg.Topic, "Topic readings are published to")
	flags.Uint8VarP(&cfg.QoS, "qos", "q", cfg.QoS, "QoS for published messages, values 0 1 2")
	flags.StringVarP(&cfg.Format, "format", "f", cfg.Format, "Payload format: json|senml")
	flags.DurationVarP(&cfg.Interval, "interval", "i", cfg.Interval, "Delay between readings")
	flags.IntVarP(&cfg.Count, "count", "n", cfg.Count, "Number of readings to publish, 0 runs until interrupted")
	flags.Uint64VarP(&cfg.Seed, "seed", "s", cfg.Seed, "Random seed")
	flags.BoolVarP(&cfg.Retain, "retain", "r", cfg.Retain, "Retain published messages")
	flags.StringVarP(&cfg.Username, "username", "u", cfg.Username, "Broker username")
	flags.StringVarP(&cfg.Password, "password", "p", cfg.Password, "Broker password")
	flags.StringVarP(&logLevel, "log-level", "l", "info", "Log level")
	flags.StringVarP(&confFile, "config", "c", "", "TOML config file, overrides flags")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
