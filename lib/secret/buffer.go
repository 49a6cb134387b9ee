// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds a secret in an anonymous mmap region outside the Go
// heap. The garbage collector never sees the region, so the secret is
// not copied around by the runtime and is gone once Close zeros it.
//
// A Buffer must not be copied after creation. Every accessor panics
// after Close.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	locked bool
	closed bool
}

// New allocates a zero-filled secret buffer of size bytes.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	buffer := &Buffer{data: data}

	// mlock needs RLIMIT_MEMLOCK headroom that many container runtimes
	// do not grant. The buffer is still outside the heap without it.
	if err := unix.Mlock(data); err == nil {
		buffer.locked = true
	}

	// Best effort: older kernels reject MADV_DONTDUMP.
	_ = unix.Madvise(data, unix.MADV_DONTDUMP)

	return buffer, nil
}

// NewFromString copies value into a new secret buffer. Go strings are
// immutable, so the caller's string cannot be zeroed; callers should
// drop their reference as soon as this returns.
func NewFromString(value string) (*Buffer, error) {
	if len(value) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(value))
	if err != nil {
		return nil, err
	}
	copy(buffer.data, value)
	return buffer, nil
}

// Bytes returns the secret data. The slice points into the mmap
// region and is invalid after Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen()
	return b.data
}

// String returns a heap copy of the secret. Tests and API boundaries
// only; prefer Bytes or WriteTo.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen()
	return string(b.data)
}

// Len returns the size of the secret in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.data)
}

// Locked reports whether the pages were successfully mlock'd.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.locked
}

// WriteTo writes the secret to writer. Implements io.WriterTo.
func (b *Buffer) WriteTo(writer io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen()
	written, err := writer.Write(b.data)
	if err == nil && written != len(b.data) {
		err = io.ErrShortWrite
	}
	return int64(written), err
}

// Close zeros, unlocks, and unmaps the buffer. Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	clear(b.data)

	var firstError error
	if b.locked {
		if err := unix.Munlock(b.data); err != nil {
			firstError = fmt.Errorf("secret: munlock failed: %w", err)
		}
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}

	b.data = nil
	return firstError
}

func (b *Buffer) mustBeOpen() {
	if b.closed {
		panic("secret: read from closed buffer")
	}
}
