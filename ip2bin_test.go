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
	"bytes"
	"encoding/json"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/ip2bin/internal/bintest"
	"github.com/sjzar/ip2bin/pkg/bin"
	"github.com/sjzar/ip2bin/pkg/errors"
)

func writeDB(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func locationBytes(t *testing.T) []byte {
	t.Helper()
	builder := bintest.New(1, 2, bin.ProductLocation)
	in := builder.Country("IN", "India")
	builder.Range4(0x2BE00000, in) // 43.224.0.0
	builder.Range6(netip.MustParseAddr("2a01::"), in)
	return builder.Bytes()
}

func proxyBytes(t *testing.T) []byte {
	t.Helper()
	builder := bintest.New(1, 2, bin.ProductProxy)
	clean := builder.Country("-", "-")
	us := builder.Country("US", "United States of America")
	builder.Range4(0, clean)
	builder.Range4(0x01010100, us)
	builder.Range4(0x01010200, clean)
	return builder.Bytes()
}

func TestOpenLocation(t *testing.T) {
	path := writeDB(t, "IP2LOCATION-LITE-DB1.BIN", locationBytes(t))

	db, err := Open(path)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	assert.Equal(t, FamilyLocation, db.Family())

	record, err := db.Lookup(netip.MustParseAddr("43.224.159.155"))
	require.NoError(t, err)
	require.NotNil(t, record.Location)
	assert.Nil(t, record.Proxy)
	require.NotNil(t, record.Location.Country)
	assert.Equal(t, "IN", record.Location.Country.ShortName)
	assert.Equal(t, "India", record.Location.Country.LongName)
	assert.Equal(t, netip.MustParseAddr("43.224.159.155"), record.IP())
}

func TestOpenProxy(t *testing.T) {
	path := writeDB(t, "IP2PROXY-IP-COUNTRY.BIN", proxyBytes(t))

	db, err := Open(path)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	assert.Equal(t, FamilyProxy, db.Family())

	record, err := db.Lookup(netip.MustParseAddr("1.1.1.1"))
	require.NoError(t, err)
	require.NotNil(t, record.Proxy)
	assert.Nil(t, record.Location)
	assert.NotNil(t, record.Proxy.Country)
}

func TestOpenLegacy(t *testing.T) {
	// files authored before the product code byte existed are tried as
	// location first
	builder := bintest.New(1, 2, bin.ProductLegacy)
	builder.Year = 19
	in := builder.Country("IN", "India")
	builder.Range4(0, in)
	path := writeDB(t, "legacy.bin", builder.Bytes())

	db, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, FamilyLocation, db.Family())
}

func TestOpenUnknownProduct(t *testing.T) {
	builder := bintest.New(1, 2, 9)
	in := builder.Country("IN", "India")
	builder.Range4(0, in)
	path := writeDB(t, "unknown.bin", builder.Bytes())

	_, err := Open(path)
	assert.ErrorIs(t, err, errors.ErrUnknownDatabase)
}

func TestOpenLegacyTooNew(t *testing.T) {
	// zero product code past the cut-off year fails both families
	builder := bintest.New(1, 2, bin.ProductLegacy)
	builder.Year = 24
	in := builder.Country("IN", "India")
	builder.Range4(0, in)
	path := writeDB(t, "toonew.bin", builder.Bytes())

	_, err := Open(path)
	assert.ErrorIs(t, err, errors.ErrUnknownDatabase)
}

func TestOpenTruncated(t *testing.T) {
	path := writeDB(t, "truncated.bin", make([]byte, 10))

	_, err := Open(path)
	assert.ErrorIs(t, err, errors.ErrUnknownDatabase)
}

func TestOpenGarbageHeader(t *testing.T) {
	path := writeDB(t, "garbage.bin", bytes.Repeat([]byte{0xFF}, 64))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpenOverlongTable(t *testing.T) {
	// cut the tail so the claimed IPv6 row table extends past the file end
	data := locationBytes(t)
	path := writeDB(t, "cut.bin", data[:len(data)-24])

	_, err := Open(path)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nonexistant.bin"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestInfo(t *testing.T) {
	path := writeDB(t, "IP2LOCATION-LITE-DB1.BIN", locationBytes(t))

	db, err := Open(path)
	require.NoError(t, err)
	info := db.Info()
	assert.Equal(t, path, info.Path)
	assert.Equal(t, "ip2location", info.Family)
	assert.Equal(t, uint8(1), info.Type)
	assert.Equal(t, uint8(2), info.Columns)
	assert.Equal(t, "2024-01-02", info.Date)
}

func TestLookupNotFound(t *testing.T) {
	path := writeDB(t, "IP2LOCATION-LITE-DB1.BIN", locationBytes(t))

	db, err := Open(path)
	require.NoError(t, err)

	_, err = db.Lookup(netip.MustParseAddr("1.2.3.4"))
	assert.ErrorIs(t, err, errors.ErrRecordNotFound)

	// the handle stays usable after a miss
	record, err := db.Lookup(netip.MustParseAddr("43.224.159.155"))
	require.NoError(t, err)
	assert.NotNil(t, record.Location)
}

func TestRecordTaggedJSON(t *testing.T) {
	path := writeDB(t, "IP2PROXY-IP-COUNTRY.BIN", proxyBytes(t))

	db, err := Open(path)
	require.NoError(t, err)

	record, err := db.Lookup(netip.MustParseAddr("1.1.1.1"))
	require.NoError(t, err)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"proxy":{`)
	assert.NotContains(t, string(data), `"location"`)
	assert.Contains(t, string(data), `"is_proxy":"proxy"`)
}

func TestConcurrentLookups(t *testing.T) {
	path := writeDB(t, "IP2LOCATION-LITE-DB1.BIN", locationBytes(t))

	db, err := Open(path)
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				record, err := db.Lookup(netip.MustParseAddr("43.224.159.155"))
				if err != nil || record.Location == nil {
					t.Error("concurrent lookup failed")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
