// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// failer is the slice of testing.TB these helpers need. Taking the
// interface keeps them usable from benchmarks and fuzz targets.
type failer interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive reads one value from ch, failing the test if nothing
// arrives within timeout or the channel closes first. It is the one
// sanctioned place for wall-clock waits in the test suite; code under
// test takes an injected clock instead.
//
//	reply := testutil.RequireReceive(t, replies, 5*time.Second, "karma reply for %s", subject)
func RequireReceive[T any](t failer, ch <-chan T, timeout time.Duration, msgAndArgs ...any) T {
	t.Helper()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed before delivering a value: %s", describe(msgAndArgs))
		}
		return v
	case <-deadline.C:
		t.Fatalf("nothing received in %v: %s", timeout, describe(msgAndArgs))
	}
	panic("unreachable")
}

// RequireClosed waits for ch to close (a readiness signal), failing
// the test after timeout. A value received counts as the signal too.
//
//	testutil.RequireClosed(t, serverReady, 5*time.Second, "admin socket up")
func RequireClosed(t failer, ch <-chan struct{}, timeout time.Duration, msgAndArgs ...any) {
	t.Helper()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case <-ch:
	case <-deadline.C:
		t.Fatalf("not closed in %v: %s", timeout, describe(msgAndArgs))
	}
}

// describe renders the trailing msgAndArgs: a bare string, a format
// string with arguments, or anything else via %v.
func describe(msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return "(no context)"
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs...)
}
