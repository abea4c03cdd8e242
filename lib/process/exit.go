// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry a process exit status.
type exitCoder interface {
	ExitCode() int
}

// Exit reports err on stderr (unless it carries its own exit status)
// and exits. Use it in main() for the error from run().
func Exit(err error) {
	os.Exit(report(os.Stderr, err))
}

// report writes err to w when it has no exit status of its own and
// returns the status to exit with.
func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
