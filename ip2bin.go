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

package ip2bin

import (
	"fmt"
	"io"
	"net/netip"
	"os"

	"github.com/sjzar/ip2bin/format/ip2location"
	"github.com/sjzar/ip2bin/format/ip2proxy"
	"github.com/sjzar/ip2bin/pkg/bin"
	"github.com/sjzar/ip2bin/pkg/errors"
)

// Family identifies which product family a database belongs to.
type Family uint8

const (
	FamilyLocation Family = iota + 1
	FamilyProxy
)

// String returns the family's format name.
func (f Family) String() string {
	switch f {
	case FamilyLocation:
		return ip2location.DBFormat
	case FamilyProxy:
		return ip2proxy.DBFormat
	default:
		return "unknown"
	}
}

// Record is the tagged result of a lookup; exactly one field is set,
// matching the family of the database it came from.
type Record struct {
	Location *ip2location.Record `json:"location,omitempty"`
	Proxy    *ip2proxy.Record    `json:"proxy,omitempty"`
}

// IP returns the queried address the record was materialised for.
func (r Record) IP() netip.Addr {
	if r.Location != nil {
		return r.Location.IP
	}
	if r.Proxy != nil {
		return r.Proxy.IP
	}
	return netip.IPv6Unspecified()
}

// Info describes an opened database.
type Info struct {
	Path    string `json:"path"`
	Family  string `json:"family"`
	Type    uint8  `json:"type"`
	Columns uint8  `json:"columns"`
	Date    string `json:"date"`
}

// DB is a handle to one opened BIN database of either family. It is
// immutable after Open; any number of concurrent Lookup calls are safe.
type DB struct {
	family   Family
	location *ip2location.Reader
	proxy    *ip2proxy.Reader
}

// Open reads the BIN file at path, classifies its product family from the
// header and returns a handle dispatching to the matching engine.
//
// Files with a zero product code (authored before the code existed) are
// tried as location first, then as proxy.
func Open(path string) (*DB, error) {
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

	blob := bin.NewBlob(data)
	header, err := bin.ReadHeader(blob)
	if err != nil {
		return nil, err
	}

	switch header.ProductCode {
	case bin.ProductLocation:
		return openLocation(path, data)
	case bin.ProductProxy:
		return openProxy(path, data)
	case bin.ProductLegacy:
		if db, err := openLocation(path, data); err == nil {
			return db, nil
		}
		if db, err := openProxy(path, data); err == nil {
			return db, nil
		}
		return nil, errors.ErrUnknownDatabase
	default:
		return nil, errors.ErrUnknownDatabase
	}
}

func openLocation(path string, data []byte) (*DB, error) {
	reader, err := ip2location.FromBytes(path, data)
	if err != nil {
		return nil, err
	}
	return &DB{family: FamilyLocation, location: reader}, nil
}

func openProxy(path string, data []byte) (*DB, error) {
	reader, err := ip2proxy.FromBytes(path, data)
	if err != nil {
		return nil, err
	}
	return &DB{family: FamilyProxy, proxy: reader}, nil
}

// Family returns the loaded product family.
func (db *DB) Family() Family {
	return db.family
}

// Lookup returns the record covering addr in the loaded database.
func (db *DB) Lookup(addr netip.Addr) (Record, error) {
	switch db.family {
	case FamilyLocation:
		record, err := db.location.Find(addr)
		if err != nil {
			return Record{}, err
		}
		return Record{Location: record}, nil
	case FamilyProxy:
		record, err := db.proxy.Find(addr)
		if err != nil {
			return Record{}, err
		}
		return Record{Proxy: record}, nil
	default:
		return Record{}, errors.ErrUnknownDatabase
	}
}

// Info returns the database description used by the CLI's info output.
func (db *DB) Info() Info {
	var path string
	var header bin.Header
	switch db.family {
	case FamilyLocation:
		path, header = db.location.Path(), db.location.Header()
	case FamilyProxy:
		path, header = db.proxy.Path(), db.proxy.Header()
	}
	return Info{
		Path:    path,
		Family:  db.family.String(),
		Type:    header.Type,
		Columns: header.Column,
		Date:    fmt.Sprintf("20%02d-%02d-%02d", header.Year, header.Month, header.Day),
	}
}

// Close releases the underlying blob. The handle must not be used
// afterwards.
func (db *DB) Close() error {
	switch db.family {
	case FamilyLocation:
		return db.location.Close()
	case FamilyProxy:
		return db.proxy.Close()
	}
	return nil
}
