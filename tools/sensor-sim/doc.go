// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package sim publishes simulated plant sensor readings to the MQTT broker
// so the telemetry pipeline can be exercised without field hardware.
package sim
