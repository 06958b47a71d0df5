// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds a secret in memory the kernel will not swap out or
// write into core dumps. The backing pages come from an anonymous
// mmap, so they live outside the Go heap and the collector never
// copies them around. Close scrubs and unmaps the pages; any use
// after Close panics.
type Buffer struct {
	mu       sync.Mutex
	region   []byte
	size     int
	released bool
}

// New allocates a locked, dump-excluded buffer of size bytes, zero
// filled. The caller owns the buffer and must Close it.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size %d, want positive", size)
	}

	region, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: allocating buffer: %w", err)
	}

	// The pages must be resident (no swap) and invisible to core
	// dumps before any secret lands in them. Failure of either is
	// failure of the whole allocation.
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: locking buffer: %w", err)
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: excluding buffer from dumps: %w", err)
	}

	return &Buffer{region: region, size: size}, nil
}

// NewFromBytes moves source into a protected buffer: the bytes are
// copied in and the source slice is zeroed, so the secret stops
// existing in unprotected memory.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, errors.New("secret: empty source")
	}
	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.region, source)
	Zero(source)
	return buffer, nil
}

// Zero scrubs a plain byte slice that held secret material, typically
// an intermediate read on its way into a Buffer.
func Zero(data []byte) {
	clear(data)
}

// guard panics when the buffer has been released. Callers hold mu.
func (b *Buffer) guard() {
	if b.released {
		panic("secret: use of closed buffer")
	}
}

// Bytes returns the secret. The slice aliases the protected pages:
// read it, pass it on, but do not retain it past Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.guard()
	return b.region[:b.size]
}

// String copies the secret into an ordinary heap string. Only for API
// boundaries that demand a string; the copy is outside the buffer's
// protection, so prefer Bytes.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.guard()
	return string(b.region[:b.size])
}

// Len returns the secret's size in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Close zeroes the secret and returns the pages to the kernel. Safe
// to call more than once.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return nil
	}
	b.released = true

	Zero(b.region)

	err := errors.Join(unix.Munlock(b.region), unix.Munmap(b.region))
	b.region = nil
	if err != nil {
		return fmt.Errorf("secret: releasing buffer: %w", err)
	}
	return nil
}
