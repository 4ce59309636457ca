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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/ip2bin/internal/bintest"
	"github.com/sjzar/ip2bin/pkg/errors"
)

func TestReadHeader(t *testing.T) {
	builder := bintest.New(1, 2, ProductLocation)
	builder.Year, builder.Month, builder.Day = 24, 6, 15
	ptr := builder.Country("IN", "India")
	builder.Range4(0, ptr)
	blob := NewBlob(builder.Bytes())

	h, err := ReadHeader(blob)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), h.Type)
	assert.Equal(t, uint8(2), h.Column)
	assert.Equal(t, uint8(24), h.Year)
	assert.Equal(t, uint8(6), h.Month)
	assert.Equal(t, uint8(15), h.Day)
	assert.Equal(t, uint32(1), h.IPv4Count)
	assert.NotZero(t, h.IPv4Base)
	assert.Zero(t, h.IPv6Count)
	assert.Equal(t, uint8(ProductLocation), h.ProductCode)
	assert.Equal(t, int64(8), h.RowWidth4())
	assert.Equal(t, int64(20), h.RowWidth6())
}

func TestReadHeaderTruncated(t *testing.T) {
	_, err := ReadHeader(NewBlob(make([]byte, 10)))
	assert.ErrorIs(t, err, errors.ErrUnknownDatabase)

	_, err = ReadHeader(NewBlob(nil))
	assert.ErrorIs(t, err, errors.ErrUnknownDatabase)
}

func TestValidateFamily(t *testing.T) {
	h := &Header{ProductCode: ProductLocation, Year: 24}
	assert.NoError(t, h.ValidateFamily(ProductLocation))
	assert.Error(t, h.ValidateFamily(ProductProxy))

	// legacy files carry no product code and are accepted up to the cut-off
	legacy := &Header{ProductCode: ProductLegacy, Year: 20}
	assert.NoError(t, legacy.ValidateFamily(ProductLocation))
	assert.NoError(t, legacy.ValidateFamily(ProductProxy))

	tooNew := &Header{ProductCode: ProductLegacy, Year: 21}
	err := tooNew.ValidateFamily(ProductLocation)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidDatabase)

	var invalid *errors.InvalidDatabaseError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, uint8(21), invalid.Year)
	assert.Equal(t, uint8(0), invalid.Product)
}

func TestValidateLayout(t *testing.T) {
	builder := bintest.New(1, 2, ProductLocation)
	ptr := builder.Country("IN", "India")
	builder.Range4(0, ptr)
	blob := NewBlob(builder.Bytes())

	h, err := ReadHeader(blob)
	require.NoError(t, err)
	assert.NoError(t, h.ValidateLayout(blob, 25))

	// schema variant outside the family's tables
	bad := *h
	bad.Type = 26
	assert.ErrorIs(t, bad.ValidateLayout(blob, 25), errors.ErrUnknownDatabase)
	bad.Type = 0
	assert.ErrorIs(t, bad.ValidateLayout(blob, 25), errors.ErrUnknownDatabase)

	// column count below the range-begin column
	bad = *h
	bad.Column = 0
	assert.ErrorIs(t, bad.ValidateLayout(blob, 25), errors.ErrUnknownDatabase)

	// claimed row table extends past the end of the blob
	bad = *h
	bad.IPv4Count = 1 << 20
	assert.ErrorIs(t, bad.ValidateLayout(blob, 25), errors.ErrOutOfBounds)

	bad = *h
	bad.IPv6Count = 1
	bad.IPv6Base = uint32(blob.Len())
	assert.ErrorIs(t, bad.ValidateLayout(blob, 25), errors.ErrOutOfBounds)
}
