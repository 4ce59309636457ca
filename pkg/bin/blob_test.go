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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/ip2bin/pkg/errors"
)

func TestBlobReadU8(t *testing.T) {
	b := NewBlob([]byte{0x11, 0x22, 0x33})

	v, err := b.ReadU8(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x11), v)

	v, err = b.ReadU8(3)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x33), v)

	_, err = b.ReadU8(0)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
	_, err = b.ReadU8(4)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestBlobReadU32(t *testing.T) {
	b := NewBlob([]byte{0x78, 0x56, 0x34, 0x12, 0xFF})

	v, err := b.ReadU32(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	v, err = b.ReadU32(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFF123456), v)

	_, err = b.ReadU32(3)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
	_, err = b.ReadU32(0)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestBlobReadF32(t *testing.T) {
	bits := math.Float32bits(12.5)
	b := NewBlob([]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)})

	v, err := b.ReadF32(1)
	require.NoError(t, err)
	assert.Equal(t, float32(12.5), v)
}

func TestBlobReadIPv6(t *testing.T) {
	// on-disk order is least-significant octet first
	data := make([]byte, 16)
	data[15] = 0x20 // most significant octet
	data[0] = 0x01  // least significant octet
	b := NewBlob(data)

	v, err := b.ReadIPv6(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2000000000000000), v.Hi)
	assert.Equal(t, uint64(0x0000000000000001), v.Lo)

	_, err = b.ReadIPv6(2)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestBlobReadString(t *testing.T) {
	// pointer 1: length byte at offset 2, bytes at 3..4
	b := NewBlob([]byte{0x00, 0x02, 'I', 'N'})

	s, err := b.ReadString(1)
	require.NoError(t, err)
	assert.Equal(t, "IN", s)
}

func TestBlobReadStringInvalidUTF8(t *testing.T) {
	b := NewBlob([]byte{0x00, 0x03, 0xFF, 'o', 'k'})

	s, err := b.ReadString(1)
	require.NoError(t, err)
	assert.Equal(t, "�ok", s)
}

func TestBlobReadStringTruncated(t *testing.T) {
	// claimed length runs past the end of the blob
	b := NewBlob([]byte{0x00, 0x10, 'x'})

	_, err := b.ReadString(1)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)

	_, err = b.ReadString(100)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestBlobReadStringZeroCopy(t *testing.T) {
	data := []byte{0x00, 0x02, 'o', 'k'}
	b := NewBlob(data)

	s, err := b.ReadString(1)
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
	assert.Equal(t, int64(len(data)), b.Len())

	// the returned string aliases the blob bytes instead of copying them
	data[2] = 'O'
	assert.Equal(t, "Ok", s)
}
