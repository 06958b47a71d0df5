// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed provides age encryption for Slack token bundles. It
// wraps filippo.io/age for the operations chameleon needs: generate
// x25519 keypairs, seal the bot and app tokens to recipient public
// keys, and open the sealed bundle with the service identity.
//
// Ciphertext is base64-encoded for storage in the sealed token file.
// Callers pass plaintext []byte to [Encrypt] and receive a base64
// string; [Decrypt] accepts a base64 string and returns plaintext.
// Private keys and decrypted plaintext are returned as [secret.Buffer]
// values backed by mmap memory outside the Go heap (locked against
// swap, excluded from core dumps, zeroed on Close).
//
// Key exports:
//
//   - [GenerateKeypair] -- new age x25519 keypair in a secret.Buffer
//   - [SealBundle] / [OpenBundle] -- token bundle lifecycle
//   - [Encrypt] / [Decrypt] -- raw payloads to/from base64 ciphertext
//   - [ParsePublicKey] / [ParsePrivateKey] -- key validation
//
// Used by "chameleon keygen" and "chameleon seal" on the operator
// side, and by chameleon-service to open the bundle at startup.
//
// Depends on lib/secret for secure memory allocation.
package sealed
