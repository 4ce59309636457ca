/*
 * Copyright (c) 2024 shenjunzheng@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package bin

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/sjzar/ip2bin/pkg/errors"

	"lukechampine.com/uint128"
)

// Blob is an immutable byte-addressable view of a complete BIN file.
//
// All offsets are 1-based: offset 1 is the first byte of the file. Every read
// is bounds-checked and fails with errors.ErrOutOfBounds when any touched byte
// lies outside the blob, so a truncated or hostile file surfaces as an error
// instead of an out-of-range access.
type Blob struct {
	data []byte
}

// NewBlob wraps data as a read-only blob. The caller must not modify data
// afterwards; strings returned by ReadString alias it.
func NewBlob(data []byte) *Blob {
	return &Blob{data: data}
}

// Len returns the blob length in bytes.
func (b *Blob) Len() int64 {
	return int64(len(b.data))
}

// ReadU8 returns the byte at offset.
func (b *Blob) ReadU8(offset int64) (uint8, error) {
	if offset < 1 || offset > int64(len(b.data)) {
		return 0, errors.ErrOutOfBounds
	}
	return b.data[offset-1], nil
}

// ReadU32 returns the little-endian unsigned 32-bit integer at offset.
func (b *Blob) ReadU32(offset int64) (uint32, error) {
	if offset < 1 || offset+3 > int64(len(b.data)) {
		return 0, errors.ErrOutOfBounds
	}
	return binary.LittleEndian.Uint32(b.data[offset-1:]), nil
}

// ReadF32 returns the little-endian IEEE-754 32-bit float at offset.
func (b *Blob) ReadF32(offset int64) (float32, error) {
	u, err := b.ReadU32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// ReadIPv6 returns the 16-byte address at offset as an unsigned 128-bit
// integer. On-disk order is least-significant octet first, which is exactly
// the little-endian layout uint128 decodes.
func (b *Blob) ReadIPv6(offset int64) (uint128.Uint128, error) {
	if offset < 1 || offset+15 > int64(len(b.data)) {
		return uint128.Zero, errors.ErrOutOfBounds
	}
	return uint128.FromBytes(b.data[offset-1 : offset+15]), nil
}

// ReadString resolves a string-pool pointer: one length byte at offset+1,
// then that many UTF-8 bytes. Valid UTF-8 is returned as a no-copy view into
// the blob; invalid bytes are repaired with the Unicode replacement
// character, which allocates.
func (b *Blob) ReadString(offset int64) (string, error) {
	n, err := b.ReadU8(offset + 1)
	if err != nil {
		return "", err
	}
	start := offset + 1 // 0-based index of the first string byte
	end := start + int64(n)
	if end > int64(len(b.data)) {
		return "", errors.ErrOutOfBounds
	}
	s := b.data[start:end]
	if !utf8.Valid(s) {
		return strings.ToValidUTF8(string(s), string(utf8.RuneError)), nil
	}
	return bytesToString(s), nil
}

// bytesToString provides a no-copy []byte to string conversion.
// This implementation is adopted by official strings.Builder.
// Reference: https://github.com/golang/go/issues/25484
func bytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
