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

// Package ip2location reads IP2Location geolocation BIN databases.
package ip2location

import (
	"io"
	"net/netip"
	"os"

	"github.com/sjzar/ip2bin/pkg/bin"
)

const (
	DBFormat = "ip2location"
	DBExt    = ".BIN"
)

// Reader answers geolocation lookups against one IP2Location BIN file.
// It is immutable after construction; concurrent Find calls are safe.
type Reader struct {
	path   string
	blob   *bin.Blob
	header *bin.Header
}

// NewReader reads the file at path into memory and validates its header.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return FromBytes(path, data)
}

// FromBytes validates data as a location-family database and returns a
// reader over it. The caller must not modify data afterwards.
func FromBytes(path string, data []byte) (*Reader, error) {
	blob := bin.NewBlob(data)
	header, err := bin.ReadHeader(blob)
	if err != nil {
		return nil, err
	}
	if err := header.ValidateFamily(bin.ProductLocation); err != nil {
		return nil, err
	}
	if err := header.ValidateLayout(blob, maxType); err != nil {
		return nil, err
	}
	return &Reader{path: path, blob: blob, header: header}, nil
}

// Path returns the file path the reader was opened from.
func (r *Reader) Path() string {
	return r.path
}

// Header returns a copy of the decoded file header.
func (r *Reader) Header() bin.Header {
	return *r.header
}

// Find returns the record covering addr. IPv4-mapped, 6to4 and Teredo
// addresses are folded onto the IPv4 range table; the returned record's IP
// field is always the caller's original address.
func (r *Reader) Find(addr netip.Addr) (*Record, error) {
	ip := bin.Canonical(addr)

	var off int64
	var err error
	if ip.Is6 {
		off, err = bin.FindIPv6(r.blob, r.header, ip.V6)
	} else {
		off, err = bin.FindIPv4(r.blob, r.header, ip.V4)
	}
	if err != nil {
		return nil, err
	}

	record, err := r.readRecord(off)
	if err != nil {
		return nil, err
	}
	record.IP = addr
	return record, nil
}

// Close releases the blob. The reader must not be used afterwards.
func (r *Reader) Close() error {
	r.blob = bin.NewBlob(nil)
	return nil
}

// readRecord materialises the row whose first column starts at off,
// dispatching through the column position tables for the file's DB Type.
func (r *Reader) readRecord(off int64) (*Record, error) {
	record := NewRecord()
	dbt := r.header.Type

	var err error
	if record.Country, err = r.country(off, countryPosition[dbt]); err != nil {
		return nil, err
	}
	if record.Region, err = r.str(off, regionPosition[dbt]); err != nil {
		return nil, err
	}
	if record.City, err = r.str(off, cityPosition[dbt]); err != nil {
		return nil, err
	}
	if record.ISP, err = r.str(off, ispPosition[dbt]); err != nil {
		return nil, err
	}
	if record.Latitude, err = r.f32(off, latitudePosition[dbt]); err != nil {
		return nil, err
	}
	if record.Longitude, err = r.f32(off, longitudePosition[dbt]); err != nil {
		return nil, err
	}
	if record.Domain, err = r.str(off, domainPosition[dbt]); err != nil {
		return nil, err
	}
	if record.ZipCode, err = r.str(off, zipCodePosition[dbt]); err != nil {
		return nil, err
	}
	if record.TimeZone, err = r.str(off, timeZonePosition[dbt]); err != nil {
		return nil, err
	}
	if record.NetSpeed, err = r.str(off, netSpeedPosition[dbt]); err != nil {
		return nil, err
	}
	if record.IDDCode, err = r.str(off, iddCodePosition[dbt]); err != nil {
		return nil, err
	}
	if record.AreaCode, err = r.str(off, areaCodePosition[dbt]); err != nil {
		return nil, err
	}
	if record.WeatherStationCode, err = r.str(off, weatherStationCodePosition[dbt]); err != nil {
		return nil, err
	}
	if record.WeatherStationName, err = r.str(off, weatherStationNamePosition[dbt]); err != nil {
		return nil, err
	}
	if record.MCC, err = r.str(off, mccPosition[dbt]); err != nil {
		return nil, err
	}
	if record.MNC, err = r.str(off, mncPosition[dbt]); err != nil {
		return nil, err
	}
	if record.MobileBrand, err = r.str(off, mobileBrandPosition[dbt]); err != nil {
		return nil, err
	}
	if record.Elevation, err = r.str(off, elevationPosition[dbt]); err != nil {
		return nil, err
	}
	if record.UsageType, err = r.str(off, usageTypePosition[dbt]); err != nil {
		return nil, err
	}
	if record.AddressType, err = r.str(off, addressTypePosition[dbt]); err != nil {
		return nil, err
	}
	if record.Category, err = r.str(off, categoryPosition[dbt]); err != nil {
		return nil, err
	}
	if record.District, err = r.str(off, districtPosition[dbt]); err != nil {
		return nil, err
	}
	if record.ASN, err = r.str(off, asnPosition[dbt]); err != nil {
		return nil, err
	}
	if record.AS, err = r.str(off, asPosition[dbt]); err != nil {
		return nil, err
	}
	return record, nil
}

// str resolves the string column at position pos, or nil when the schema
// does not carry it.
func (r *Reader) str(off int64, pos uint8) (*string, error) {
	if pos == 0 {
		return nil, nil
	}
	ptr, err := r.blob.ReadU32(off + 4*int64(pos-1))
	if err != nil {
		return nil, err
	}
	s, err := r.blob.ReadString(int64(ptr))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// f32 reads the float column at position pos, or nil when the schema does
// not carry it. Latitude and longitude are stored inline, not pooled.
func (r *Reader) f32(off int64, pos uint8) (*float32, error) {
	if pos == 0 {
		return nil, nil
	}
	f, err := r.blob.ReadF32(off + 4*int64(pos-1))
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// country resolves the two back-to-back country strings: short name at the
// pointer, long name 3 bytes past it (one length byte plus the 2-letter
// code).
func (r *Reader) country(off int64, pos uint8) (*Country, error) {
	if pos == 0 {
		return nil, nil
	}
	ptr, err := r.blob.ReadU32(off + 4*int64(pos-1))
	if err != nil {
		return nil, err
	}
	short, err := r.blob.ReadString(int64(ptr))
	if err != nil {
		return nil, err
	}
	long, err := r.blob.ReadString(int64(ptr) + 3)
	if err != nil {
		return nil, err
	}
	return &Country{ShortName: short, LongName: long}, nil
}
