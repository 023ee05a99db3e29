// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu re-exports the CPU compute backend.
package cpu

import "github.com/ember-ml/ember/internal/backend/cpu"

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend = cpu.CPUBackend

// New creates a new CPU backend.
func New() *CPUBackend {
	return cpu.New()
}
