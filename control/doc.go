// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection for the Loader: batches served,
// item counts and occupancy counters are published here so Loader.Metrics
// has something to snapshot without reaching into pipeline internals.
//
// Provides concurrent-safe state handling primitives including:
//   - MetricsRegistry: keyed metric values with copy-out snapshots
//   - DebugProbes: named probe registration and state dumps
//   - RegisterPlatformProbes: per-OS probes such as the CPU count
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
