//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry holds the global tracer used to instrument task
// dispatch and polling. It defaults to a noop tracer; applications wire a
// real OpenTelemetry provider through SetTracerProvider.
package telemetry

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentName identifies this library in exported spans.
const InstrumentName = "trpc.group/trpc-go/trpc-canvas-go"

// TracerProvider is the global tracer provider.
var TracerProvider trace.TracerProvider = noop.NewTracerProvider()

// Tracer is the global tracer instance.
var Tracer trace.Tracer = TracerProvider.Tracer(InstrumentName)

// SetTracerProvider installs a tracer provider, replacing the noop default.
func SetTracerProvider(tp trace.TracerProvider) {
	TracerProvider = tp
	Tracer = tp.Tracer(InstrumentName)
}
