// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package telemetry contains the ingestion core of the HybridFuel service:
// the payload decoders, the handoff buffer between the broker callback and
// the consumer, the ordered reading history and the service that exposes
// them.
package telemetry
