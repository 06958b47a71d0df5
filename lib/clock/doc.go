// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock injects time so that scheduling code is testable.
//
// Anything that calls time.Now, time.After, or time.Sleep takes a
// [Clock] instead, usually as a struct field set at construction.
// Production wiring passes [Real]; tests pass [Fake] and move time by
// hand:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	runner := cron.NewRunner(fake, logger)
//	// start the runner goroutine ...
//	fake.WaitForTimers(1)
//	fake.Advance(24 * time.Hour)
//
// The WaitForTimers call is what makes the pattern deterministic:
// After and Sleep on a [FakeClock] park a timer, and a test that
// advances before the timer parks would strand the goroutine waiting
// for a moment that already passed. Waiting for the registration
// count first removes that race without real sleeps.
package clock
