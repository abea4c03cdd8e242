// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer.
//
//	txnID := testutil.UniqueID("txn")  // "txn-1", "txn-2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// UniqueEventID returns an event ID of the form "$eN:server".
func UniqueEventID(server string) string {
	return fmt.Sprintf("$e%d:%s", uniqueCounter.Add(1), server)
}
