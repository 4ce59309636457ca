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
	"net/netip"

	"github.com/sjzar/ip2bin/pkg/errors"

	"lukechampine.com/uint128"
)

// IP is the canonical form of a query address: either a 32-bit number to be
// searched in the IPv4 range table, or a 128-bit number for the IPv6 table.
// IPv4-mapped, 6to4 and Teredo addresses fold onto the IPv4 form.
type IP struct {
	V4  uint32
	V6  uint128.Uint128
	Is6 bool
}

// Canonical reduces addr to its searchable form.
func Canonical(addr netip.Addr) IP {
	if addr.Is4() || addr.Is4In6() {
		v4 := addr.As4()
		return IP{V4: binary.BigEndian.Uint32(v4[:])}
	}
	o := addr.As16()
	u := uint128.New(binary.BigEndian.Uint64(o[8:]), binary.BigEndian.Uint64(o[:8]))
	switch {
	case o[0] == 0x20 && o[1] == 0x02:
		// 6to4: the embedded IPv4 address occupies bits 80..111
		return IP{V4: uint32(u.Rsh(80).Lo)}
	case o[0] == 0x20 && o[1] == 0x01 && o[2] == 0x00 && o[3] == 0x00:
		// Teredo: the client IPv4 address is the inverted low 32 bits
		return IP{V4: uint32(^u.Lo)}
	}
	return IP{V6: u, Is6: true}
}

// FindIPv4 binary-searches the IPv4 range table for ip and returns the
// 1-based offset of the matching row's first column. The prefix index, when
// present, narrows the search window before any row is probed.
func FindIPv4(b *Blob, h *Header, ip uint32) (int64, error) {
	if h.IPv4Count == 0 {
		return 0, errors.ErrRecordNotFound
	}
	if ip == math.MaxUint32 {
		// ip_to is stored exclusively as the next row's ip_from, so the
		// maximum address would fall outside every representable range
		ip--
	}
	low, high := int64(0), int64(h.IPv4Count)
	if h.IPv4IndexBase > 0 {
		pos := int64(h.IPv4IndexBase) + int64(ip>>16)<<3
		l, err := b.ReadU32(pos)
		if err != nil {
			return 0, err
		}
		r, err := b.ReadU32(pos + 4)
		if err != nil {
			return 0, err
		}
		low, high = int64(l), int64(r)
	}
	width := h.RowWidth4()
	for low <= high {
		mid := (low + high) >> 1
		off := int64(h.IPv4Base) + mid*width
		from, err := b.ReadU32(off)
		if err != nil {
			return 0, err
		}
		to, err := b.ReadU32(off + width)
		if err != nil {
			return 0, err
		}
		switch {
		case ip >= from && ip < to:
			return off, nil
		case ip < from:
			high = mid - 1
		default:
			low = mid + 1
		}
	}
	return 0, errors.ErrRecordNotFound
}

// FindIPv6 binary-searches the IPv6 range table for ip and returns the
// 1-based offset of the matching row's first column, 12 bytes past the row
// start to skip the embedded address field.
func FindIPv6(b *Blob, h *Header, ip uint128.Uint128) (int64, error) {
	if h.IPv6Count == 0 {
		return 0, errors.ErrRecordNotFound
	}
	low, high := int64(0), int64(h.IPv6Count)
	if h.IPv6IndexBase > 0 {
		pos := int64(h.IPv6IndexBase) + int64(ip.Hi>>48)<<3
		l, err := b.ReadU32(pos)
		if err != nil {
			return 0, err
		}
		r, err := b.ReadU32(pos + 4)
		if err != nil {
			return 0, err
		}
		low, high = int64(l), int64(r)
	}
	width := h.RowWidth6()
	for low <= high {
		mid := (low + high) >> 1
		off := int64(h.IPv6Base) + mid*width
		from, err := b.ReadIPv6(off)
		if err != nil {
			return 0, err
		}
		to, err := b.ReadIPv6(off + width)
		if err != nil {
			return 0, err
		}
		switch {
		case ip.Cmp(from) >= 0 && ip.Cmp(to) < 0:
			return off + 12, nil
		case ip.Cmp(from) < 0:
			high = mid - 1
		default:
			low = mid + 1
		}
	}
	return 0, errors.ErrRecordNotFound
}
