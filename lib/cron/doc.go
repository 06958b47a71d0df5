// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron parses standard 5-field cron expressions, computes the
// next matching time, and runs jobs on schedule.
//
// Expression layout:
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12)
//	│ │ │ │ ┌───────────── day of week (0-7, 0 and 7 both Sunday)
//	│ │ │ │ │
//	* * * * *
//
// Fields take single values (5), ranges (1-5), lists (1,3,5), steps
// (*/15, 1-30/5), and the * wildcard. Following crontab convention,
// an expression that restricts both day fields fires on days matching
// either one; with at most one day field restricted, that field alone
// decides.
//
// All times are UTC. There is no seconds field, no @daily shortcut
// family, and no named days or months. Chameleon schedules fixed
// wall-clock events (nightly ledger backups, periodic karma digests),
// so the minimal dialect is enough.
//
// [Parse] turns an expression into a [Schedule]; [Runner] fires
// [Job] functions at the times their schedules match, using an
// injected [clock.Clock] so tests control time deterministically.
package cron
