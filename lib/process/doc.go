// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. It centralizes
// the one legitimate raw I/O pattern that exists outside the
// structured logger: reporting the error returned by run() in main()
// and exiting.
//
// Errors that carry their own exit status (any error with an
// ExitCode() int method, such as cli.ExitError) have already been
// reported by the command that returned them, so [Exit] exits with
// that status silently. Every other error is printed once as
// "error: ..." and exits 1.
package process
