// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Roomevents decodes, inspects, redacts, and archives Matrix room
// events from the command line.
//
// Run "roomevents --help" for the command list.
package main
