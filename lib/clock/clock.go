// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source injected into anything that schedules or
// measures. Production wiring passes Real(); tests pass Fake() and
// drive it explicitly. The cron runner, the Slack reconnect backoff,
// and service uptime reporting all go through this interface rather
// than the time package.
type Clock interface {
	// Now reports the current time.
	Now() time.Time

	// After behaves like time.After: the returned channel receives
	// once d has elapsed. Non-positive d delivers immediately.
	After(d time.Duration) <-chan time.Time

	// Sleep behaves like time.Sleep, pausing the caller for at
	// least d.
	Sleep(d time.Duration)
}
