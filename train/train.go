// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the mixed-precision training step driver: scale
// the loss, run the caller's backward pass, check gradients for overflow,
// and apply or skip the optimizer step.
//
// # Basic Usage
//
//	scaler, _ := amp.New(backend, amp.ForFP16())
//	optimizer := optim.NewAdam(params, optim.AdamConfig{LR: 0.001})
//	trainer, _ := train.New(scaler, optimizer, train.Config{ClipNorm: 1.0})
//
//	for batch := range batches {
//	    loss := forward(batch)
//	    res, err := trainer.Step(loss, func(scaled *tensor.RawTensor) (map[string]*tensor.RawTensor, error) {
//	        return backward(scaled)
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    if res.Skipped {
//	        continue
//	    }
//	}
package train

import (
	"github.com/rs/zerolog"

	"github.com/ember-ml/ember/internal/tensor"
	"github.com/ember-ml/ember/internal/train"
)

// Trainer drives the mixed-precision step loop.
type Trainer = train.Trainer

// Config holds trainer tunables.
type Config = train.Config

// StepResult summarizes one training step.
type StepResult = train.StepResult

// BackwardFunc runs the caller's backward pass for one step.
type BackwardFunc = train.BackwardFunc

// Option configures a Trainer at construction.
type Option = train.Option

// New creates a Trainer around a scaler and an optimizer.
var New = train.New

// WithLogger attaches a structured logger for step outcomes.
func WithLogger(log zerolog.Logger) Option {
	return train.WithLogger(log)
}

// GlobalNorm returns the L2 norm over every gradient in the mapping.
func GlobalNorm(grads map[string]*tensor.RawTensor) float64 {
	return train.GlobalNorm(grads)
}

// ClipByGlobalNorm rescales gradients in place so their global L2 norm
// does not exceed maxNorm, returning the pre-clip norm.
func ClipByGlobalNorm(grads map[string]*tensor.RawTensor, maxNorm float64) float64 {
	return train.ClipByGlobalNorm(grads, maxNorm)
}
