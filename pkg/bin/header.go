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
	"github.com/sjzar/ip2bin/pkg/errors"
)

// Header is the decoded 35-byte file header shared by both product families.
type Header struct {
	Type   uint8 // schema variant, selects the column layout
	Column uint8 // columns per row, range-begin column included
	Year   uint8 // two-digit year
	Month  uint8
	Day    uint8

	IPv4Count uint32 // number of IPv4 range rows
	IPv4Base  uint32 // offset of the first IPv4 row
	IPv6Count uint32 // number of IPv6 range rows
	IPv6Base  uint32 // offset of the first IPv6 row

	IPv4IndexBase uint32 // 0, or offset of the IPv4 prefix index
	IPv6IndexBase uint32 // 0, or offset of the IPv6 prefix index

	ProductCode  uint8
	LicenseCode  uint8
	DatabaseSize uint32
}

// ReadHeader decodes the header from the start of the blob.
func ReadHeader(b *Blob) (*Header, error) {
	if b.Len() < HeaderLength {
		return nil, errors.ErrUnknownDatabase
	}
	var h Header
	var err error
	if h.Type, err = b.ReadU8(1); err != nil {
		return nil, err
	}
	if h.Column, err = b.ReadU8(2); err != nil {
		return nil, err
	}
	if h.Year, err = b.ReadU8(3); err != nil {
		return nil, err
	}
	if h.Month, err = b.ReadU8(4); err != nil {
		return nil, err
	}
	if h.Day, err = b.ReadU8(5); err != nil {
		return nil, err
	}
	if h.IPv4Count, err = b.ReadU32(6); err != nil {
		return nil, err
	}
	if h.IPv4Base, err = b.ReadU32(10); err != nil {
		return nil, err
	}
	if h.IPv6Count, err = b.ReadU32(14); err != nil {
		return nil, err
	}
	if h.IPv6Base, err = b.ReadU32(18); err != nil {
		return nil, err
	}
	if h.IPv4IndexBase, err = b.ReadU32(22); err != nil {
		return nil, err
	}
	if h.IPv6IndexBase, err = b.ReadU32(26); err != nil {
		return nil, err
	}
	if h.ProductCode, err = b.ReadU8(30); err != nil {
		return nil, err
	}
	if h.LicenseCode, err = b.ReadU8(31); err != nil {
		return nil, err
	}
	if h.DatabaseSize, err = b.ReadU32(32); err != nil {
		return nil, err
	}
	return &h, nil
}

// RowWidth4 returns the on-disk size of one IPv4 row.
func (h *Header) RowWidth4() int64 {
	return int64(h.Column) * 4
}

// RowWidth6 returns the on-disk size of one IPv6 row. The leading 16-byte
// address field is counted by the format as 4 columns of 4, hence the extra
// 12 bytes over the column total.
func (h *Header) RowWidth6() int64 {
	return int64(h.Column)*4 + 12
}

// ValidateFamily accepts the header for the family identified by product:
// either the product code matches, or the file is a legacy one (zero product
// code and a year at or before the compatibility cut-off).
func (h *Header) ValidateFamily(product uint8) error {
	if h.ProductCode == product {
		return nil
	}
	if h.ProductCode == ProductLegacy && h.Year <= legacyYearMax {
		return nil
	}
	return &errors.InvalidDatabaseError{Year: h.Year, Product: h.ProductCode}
}

// ValidateLayout rejects headers whose schema variant falls outside the
// family's table range or whose column count is zero, and headers whose
// claimed range tables extend past the end of the blob.
func (h *Header) ValidateLayout(b *Blob, maxType uint8) error {
	if h.Type < 1 || h.Type > maxType || h.Column < 1 {
		return errors.ErrUnknownDatabase
	}
	if h.IPv4Count >= 1 {
		if h.IPv4Base < 1 || int64(h.IPv4Base)-1+int64(h.IPv4Count)*h.RowWidth4() > b.Len() {
			return errors.ErrOutOfBounds
		}
	}
	if h.IPv6Count >= 1 {
		if h.IPv6Base < 1 || int64(h.IPv6Base)-1+int64(h.IPv6Count)*h.RowWidth6() > b.Len() {
			return errors.ErrOutOfBounds
		}
	}
	return nil
}
