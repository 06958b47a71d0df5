// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"

	"github.com/bureau-foundation/chameleon/lib/secret"
)

// Keypair holds an age x25519 keypair. The private key is stored in a
// secret.Buffer (mmap-backed, locked against swap, excluded from core
// dumps). The public key is a plain string (safe to publish).
//
// The caller must call Close when the keypair is no longer needed.
type Keypair struct {
	// PrivateKey is the secret key in AGE-SECRET-KEY-1... format,
	// stored in mmap memory outside the Go heap. Must never be
	// logged or included in CLI arguments. "chameleon keygen"
	// writes it to the identity file with 0600 permissions.
	PrivateKey *secret.Buffer

	// PublicKey is the corresponding public key in age1... format.
	// Safe to publish; "chameleon seal" encrypts token bundles to it.
	PublicKey string
}

// Close releases the private key memory (zeros, unlocks, unmaps).
// Idempotent — safe to call multiple times.
func (k *Keypair) Close() error {
	if k.PrivateKey != nil {
		return k.PrivateKey.Close()
	}
	return nil
}

// GenerateKeypair generates a new age x25519 keypair. The private key
// is returned in a secret.Buffer.
//
// The caller must call Close on the returned Keypair when done.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age keypair: %w", err)
	}

	// Move the private key string into mmap-backed memory immediately.
	privateKeyBytes := []byte(identity.String())
	privateKey, err := secret.NewFromBytes(privateKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("protecting private key: %w", err)
	}
	// privateKeyBytes is zeroed by NewFromBytes. The identity's
	// internal string is on the heap and will be GC'd — unavoidable
	// since age.GenerateX25519Identity exposes string methods. The
	// mmap buffer is the durable copy.

	return &Keypair{
		PrivateKey: privateKey,
		PublicKey:  identity.Recipient().String(),
	}, nil
}

// Encrypt encrypts plaintext to one or more recipients specified by
// their age public key strings (age1... format). Returns the ciphertext
// as a standard base64-encoded string suitable for writing to the
// sealed token file.
//
// At least one recipient is required. For token bundles, recipients are
// typically the service identity's public key plus an operator backup
// key.
func Encrypt(plaintext []byte, recipientKeys []string) (string, error) {
	if len(recipientKeys) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return "", fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	var ciphertextBuffer bytes.Buffer
	writer, err := age.Encrypt(&ciphertextBuffer, recipients...)
	if err != nil {
		return "", fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return "", fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing age encryption: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertextBuffer.Bytes()), nil
}

// Decrypt decrypts a base64-encoded ciphertext string using the given
// private key. Returns the plaintext in a secret.Buffer (mmap-backed,
// zeroed on close).
//
// The private key is borrowed (read via .String() to parse the age
// identity) and is NOT closed by this function.
//
// The caller must call Close on the returned buffer when the plaintext
// is no longer needed.
func Decrypt(ciphertext string, privateKey *secret.Buffer) (*secret.Buffer, error) {
	// Convert the buffer to a string at the API boundary —
	// age.ParseX25519Identity requires a string. The heap copy is
	// brief and call-scoped.
	identity, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	rawCiphertext, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 ciphertext: %w", err)
	}

	reader, err := age.Decrypt(bytes.NewReader(rawCiphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}

	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted plaintext: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("decrypted plaintext is empty")
	}

	// Move the decrypted plaintext into mmap-backed memory.
	// NewFromBytes zeros the heap copy.
	buffer, err := secret.NewFromBytes(plaintext)
	if err != nil {
		secret.Zero(plaintext)
		return nil, fmt.Errorf("protecting decrypted plaintext: %w", err)
	}
	return buffer, nil
}

// ParsePublicKey validates an age public key string. Returns an error
// if the key is not a valid age x25519 public key. Used to validate
// recipient keys before sealing.
func ParsePublicKey(publicKey string) error {
	_, err := age.ParseX25519Recipient(publicKey)
	if err != nil {
		return fmt.Errorf("invalid age public key: %w", err)
	}
	return nil
}

// ParsePrivateKey validates an age private key stored in a
// secret.Buffer. Returns an error if the key is not a valid age x25519
// private key.
func ParsePrivateKey(privateKey *secret.Buffer) error {
	_, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return fmt.Errorf("invalid age private key: %w", err)
	}
	return nil
}

// RecipientFromIdentity derives the age public key from a private key
// held in a secret.Buffer. Lets "chameleon seal --identity" seal to
// the service's own identity file without tracking the public key
// separately.
func RecipientFromIdentity(privateKey *secret.Buffer) (string, error) {
	identity, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return "", fmt.Errorf("parsing private key: %w", err)
	}
	return identity.Recipient().String(), nil
}

// Bundle is the plaintext form of a sealed token file: the Slack bot
// and app tokens as a single JSON document. It exists transiently on
// both sides of the seal boundary; the durable representations are the
// age ciphertext on disk and the secret.Buffer copies in Tokens.
type Bundle struct {
	BotToken string `json:"bot_token"`
	AppToken string `json:"app_token"`
}

// SealBundle encrypts a token bundle to the given recipient public
// keys and returns the base64 ciphertext for the sealed token file.
// The JSON intermediate is zeroed before return.
func SealBundle(bundle *Bundle, recipientKeys []string) (string, error) {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("encoding token bundle: %w", err)
	}
	ciphertext, err := Encrypt(payload, recipientKeys)
	secret.Zero(payload)
	if err != nil {
		return "", err
	}
	return ciphertext, nil
}

// Tokens holds opened Slack tokens in protected memory. The caller
// must call Close once the platform session holds its own copies.
type Tokens struct {
	BotToken *secret.Buffer
	AppToken *secret.Buffer
}

// Close releases both token buffers. Idempotent.
func (t *Tokens) Close() error {
	var firstError error
	if t.BotToken != nil {
		if err := t.BotToken.Close(); err != nil && firstError == nil {
			firstError = err
		}
	}
	if t.AppToken != nil {
		if err := t.AppToken.Close(); err != nil && firstError == nil {
			firstError = err
		}
	}
	return firstError
}

// OpenBundle decrypts a sealed token file's contents with the given
// identity and returns the tokens in secret.Buffers. Both tokens must
// be present in the bundle; a file sealed without one of them is
// rejected rather than half-starting the service.
func OpenBundle(ciphertext string, privateKey *secret.Buffer) (*Tokens, error) {
	plaintext, err := Decrypt(ciphertext, privateKey)
	if err != nil {
		return nil, err
	}
	defer plaintext.Close()

	// The unmarshalled strings are brief heap copies; the buffers
	// below are the durable representations.
	var bundle Bundle
	if err := json.Unmarshal(plaintext.Bytes(), &bundle); err != nil {
		return nil, fmt.Errorf("decoding token bundle: %w", err)
	}
	if bundle.BotToken == "" {
		return nil, fmt.Errorf("token bundle has no bot_token")
	}
	if bundle.AppToken == "" {
		return nil, fmt.Errorf("token bundle has no app_token")
	}

	botToken, err := secret.NewFromBytes([]byte(bundle.BotToken))
	if err != nil {
		return nil, fmt.Errorf("protecting bot token: %w", err)
	}
	appToken, err := secret.NewFromBytes([]byte(bundle.AppToken))
	if err != nil {
		botToken.Close()
		return nil, fmt.Errorf("protecting app token: %w", err)
	}
	return &Tokens{BotToken: botToken, AppToken: appToken}, nil
}

// FormatRecipients formats a list of recipient public keys as a
// multi-line string suitable for display (no private keys involved).
func FormatRecipients(recipientKeys []string) string {
	return strings.Join(recipientKeys, "\n")
}
