// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts pre-redaction originals for audit. It wraps
// filippo.io/age for the operations the archive needs: generate x25519
// keypairs, encrypt to one or more auditor public keys, and decrypt
// with an auditor's private key.
//
// Ciphertext is base64-encoded so it can sit in a text field of an
// archive record or be pasted between terminals. Callers pass plaintext
// []byte to [Encrypt] and receive a base64 string; [Decrypt] reverses
// it.
//
// Key exports:
//
//   - [GenerateKeypair] -- new age x25519 keypair
//   - [Encrypt] / [Decrypt] -- seal to recipients, open with a private key
//   - [ParsePublicKey] / [ParsePrivateKey] -- key validation
//   - [ReadPrivateKey] -- load an age identity file (comments allowed)
package sealed
