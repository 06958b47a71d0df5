// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Real returns the Clock backed by the time package. This is the only
// Clock production code ever sees.
func Real() Clock {
	return systemClock{}
}

// systemClock delegates straight to the time package.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
