// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package amp provides automatic mixed-precision support: dynamic loss
// scaling for training in reduced-precision formats.
//
// # Overview
//
// Training in float16 loses small gradient values to underflow. The loss
// scaler multiplies the loss by a large factor before the backward pass so
// gradients stay representable, divides the factor back out before the
// optimizer step, and adapts the factor from observed overflow: backoff on
// Inf/NaN gradients (skipping that step), growth after a long overflow-free
// run.
//
// # Basic Usage
//
//	import (
//	    "github.com/ember-ml/ember/amp"
//	    "github.com/ember-ml/ember/backend/cpu"
//	)
//
//	backend := cpu.New()
//	scaler, err := amp.New(backend, amp.ForFP16())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for step := range steps {
//	    scaledLoss, _ := scaler.ScaleLoss(loss)
//	    grads := backwardPass(scaledLoss)
//
//	    skip, _ := scaler.CheckOverflowAndUpdate(grads)
//	    if skip {
//	        continue // gradients corrupted by overflow, try again
//	    }
//
//	    unscaled, _ := scaler.UnscaleGrads(grads)
//	    optimizer.Step(unscaled)
//	}
//
// # Disabled Mode
//
// A scaler built from a Config with Enabled false is a strict pass-through:
// losses and gradient maps come back untouched by identity, overflow checks
// report false and no step is ever skipped. Disabling the scaler is
// equivalent to training without mixed precision.
//
// # Observability
//
// Stats returns a point-in-time snapshot of the scale and its counters;
// poll it from the training loop. With a zerolog logger attached via
// WithLogger, scale changes are also logged as structured events.
package amp
