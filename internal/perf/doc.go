// Package perf exposes the Prometheus collectors that count frame pipeline
// work: layout and render tasks, skipped passes, and hit tests.
package perf
