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

// Package bintest assembles small, well-formed BIN databases in memory so
// tests run without proprietary database files.
package bintest

import (
	"encoding/binary"
	"net/netip"
)

// poolStart is the first 0-based byte after the header fields.
const poolStart = 35

// Builder composes a BIN file: strings first, then ranges, then Bytes.
// Range begins must be added in ascending order; a sentinel row whose begin
// is the maximum address is appended automatically, so the last added range
// extends to the top of the address space.
type Builder struct {
	DBType  uint8
	Columns uint8
	Year    uint8
	Month   uint8
	Day     uint8
	Product uint8
	License uint8

	pool   []byte
	rows4  []row4
	rows6  []row6
	index4 bool
	index6 bool
}

type row4 struct {
	from uint32
	cols []uint32
}

type row6 struct {
	from [16]byte // big-endian
	cols []uint32
}

// New returns a builder for a database of the given schema variant, column
// count and product code.
func New(dbType, columns, product uint8) *Builder {
	return &Builder{
		DBType:  dbType,
		Columns: columns,
		Year:    24,
		Month:   1,
		Day:     2,
		Product: product,
	}
}

// String appends a length-prefixed string to the pool and returns its
// pointer.
func (b *Builder) String(s string) uint32 {
	ptr := uint32(poolStart + len(b.pool))
	b.pool = append(b.pool, byte(len(s)))
	b.pool = append(b.pool, s...)
	return ptr
}

// StringRaw appends arbitrary pool bytes (length byte included) and returns
// their pointer. Used to plant malformed strings.
func (b *Builder) StringRaw(raw []byte) uint32 {
	ptr := uint32(poolStart + len(b.pool))
	b.pool = append(b.pool, raw...)
	return ptr
}

// Country appends the short and long country strings back to back and
// returns the short name's pointer. The short name cell is padded to 3
// bytes so the long name always lands at pointer + 3, as it does for the
// 2-letter codes in upstream files ("-" marks unlisted ranges).
func (b *Builder) Country(short, long string) uint32 {
	if len(short) > 2 {
		panic("bintest: country short name must be at most 2 letters")
	}
	ptr := uint32(poolStart + len(b.pool))
	b.pool = append(b.pool, byte(len(short)))
	b.pool = append(b.pool, short...)
	for len(b.pool) < int(ptr)-poolStart+3 {
		b.pool = append(b.pool, 0)
	}
	b.String(long)
	return ptr
}

// Range4 adds an IPv4 row beginning at from. cols are the column 2..n
// payloads; missing columns are zero-filled.
func (b *Builder) Range4(from uint32, cols ...uint32) {
	b.rows4 = append(b.rows4, row4{from: from, cols: cols})
}

// Range6 adds an IPv6 row beginning at from.
func (b *Builder) Range6(from netip.Addr, cols ...uint32) {
	b.rows6 = append(b.rows6, row6{from: from.As16(), cols: cols})
}

// WithIndex4 emits the IPv4 prefix index.
func (b *Builder) WithIndex4() *Builder {
	b.index4 = true
	return b
}

// WithIndex6 emits the IPv6 prefix index.
func (b *Builder) WithIndex6() *Builder {
	b.index6 = true
	return b
}

// Bytes lays out the file: header, string pool, range tables with their
// sentinel rows, then any indexes.
func (b *Builder) Bytes() []byte {
	le := binary.LittleEndian
	width4 := int(b.Columns) * 4
	width6 := int(b.Columns)*4 + 12

	off := poolStart + len(b.pool)
	var ipv4Base, ipv6Base, idx4Base, idx6Base uint32
	if len(b.rows4) > 0 {
		ipv4Base = uint32(off) + 1
		off += (len(b.rows4) + 1) * width4
	}
	if len(b.rows6) > 0 {
		ipv6Base = uint32(off) + 1
		off += (len(b.rows6) + 1) * width6
	}
	if b.index4 {
		idx4Base = uint32(off) + 1
		off += 65536 * 8
	}
	if b.index6 {
		idx6Base = uint32(off) + 1
		off += 65536 * 8
	}

	buf := make([]byte, off)
	buf[0] = b.DBType
	buf[1] = b.Columns
	buf[2], buf[3], buf[4] = b.Year, b.Month, b.Day
	le.PutUint32(buf[5:], uint32(len(b.rows4)))
	le.PutUint32(buf[9:], ipv4Base)
	le.PutUint32(buf[13:], uint32(len(b.rows6)))
	le.PutUint32(buf[17:], ipv6Base)
	le.PutUint32(buf[21:], idx4Base)
	le.PutUint32(buf[25:], idx6Base)
	buf[29] = b.Product
	buf[30] = b.License
	le.PutUint32(buf[31:], uint32(off))
	copy(buf[poolStart:], b.pool)

	if len(b.rows4) > 0 {
		p := int(ipv4Base) - 1
		for _, r := range b.rows4 {
			le.PutUint32(buf[p:], r.from)
			for i := 0; i < int(b.Columns)-1; i++ {
				if i < len(r.cols) {
					le.PutUint32(buf[p+4+i*4:], r.cols[i])
				}
			}
			p += width4
		}
		le.PutUint32(buf[p:], 0xFFFFFFFF) // sentinel begin
	}

	if len(b.rows6) > 0 {
		p := int(ipv6Base) - 1
		for _, r := range b.rows6 {
			putAddr16(buf[p:], r.from)
			for i := 0; i < int(b.Columns)-1; i++ {
				if i < len(r.cols) {
					le.PutUint32(buf[p+16+i*4:], r.cols[i])
				}
			}
			p += width6
		}
		for i := 0; i < 16; i++ { // sentinel begin
			buf[p+i] = 0xFF
		}
	}

	if b.index4 {
		b.buildIndex4(buf, idx4Base)
	}
	if b.index6 {
		b.buildIndex6(buf, idx6Base)
	}
	return buf
}

// putAddr16 stores a big-endian address in on-disk order, least-significant
// octet first.
func putAddr16(dst []byte, addr [16]byte) {
	for i := 0; i < 16; i++ {
		dst[i] = addr[15-i]
	}
}

func (b *Builder) buildIndex4(buf []byte, base uint32) {
	le := binary.LittleEndian
	type window struct {
		lo, hi int
		set    bool
	}
	wins := make([]window, 65536)
	for i, r := range b.rows4 {
		to := uint32(0xFFFFFFFF)
		if i+1 < len(b.rows4) {
			to = b.rows4[i+1].from
		}
		for k := int(r.from >> 16); k <= int(to>>16); k++ {
			if !wins[k].set {
				wins[k] = window{lo: i, hi: i, set: true}
			} else {
				wins[k].hi = i
			}
		}
	}
	for k, w := range wins {
		p := int(base) - 1 + k*8
		le.PutUint32(buf[p:], uint32(w.lo))
		le.PutUint32(buf[p+4:], uint32(w.hi))
	}
}

func (b *Builder) buildIndex6(buf []byte, base uint32) {
	le := binary.LittleEndian
	type window struct {
		lo, hi int
		set    bool
	}
	wins := make([]window, 65536)
	key := func(a [16]byte) int {
		return int(a[0])<<8 | int(a[1])
	}
	for i, r := range b.rows6 {
		toKey := 0xFFFF
		if i+1 < len(b.rows6) {
			toKey = key(b.rows6[i+1].from)
		}
		for k := key(r.from); k <= toKey; k++ {
			if !wins[k].set {
				wins[k] = window{lo: i, hi: i, set: true}
			} else {
				wins[k].hi = i
			}
		}
	}
	for k, w := range wins {
		p := int(base) - 1 + k*8
		le.PutUint32(buf[p:], uint32(w.lo))
		le.PutUint32(buf[p+4:], uint32(w.hi))
	}
}
