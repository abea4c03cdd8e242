// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that stamps records (the archive's archived_at field) accepts a
// Clock instead of calling time.Now directly. In production Real()
// provides the standard library behavior; in tests Fake() returns a
// clock that only moves when told to:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	writer, _ := archive.Open(path, archive.Options{Clock: c})
//	c.Advance(5 * time.Second)
package clock
