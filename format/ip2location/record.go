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

package ip2location

import (
	"encoding/json"
	"net/netip"
)

// Country carries the two back-to-back country strings of a row.
type Country struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

// Record is the geolocation information for one queried address.
//
// IP is always present and reflects the caller's query. Every other field is
// populated exactly when the schema variant of the database carries it; nil
// fields are omitted from the JSON form. String fields are views into the
// database blob and stay valid only while the Reader is alive.
type Record struct {
	IP                 netip.Addr `json:"ip"`
	Latitude           *float32   `json:"latitude,omitempty"`
	Longitude          *float32   `json:"longitude,omitempty"`
	Country            *Country   `json:"country,omitempty"`
	Region             *string    `json:"region,omitempty"`
	City               *string    `json:"city,omitempty"`
	ISP                *string    `json:"isp,omitempty"`
	Domain             *string    `json:"domain,omitempty"`
	ZipCode            *string    `json:"zip_code,omitempty"`
	TimeZone           *string    `json:"time_zone,omitempty"`
	NetSpeed           *string    `json:"net_speed,omitempty"`
	IDDCode            *string    `json:"idd_code,omitempty"`
	AreaCode           *string    `json:"area_code,omitempty"`
	WeatherStationCode *string    `json:"weather_station_code,omitempty"`
	WeatherStationName *string    `json:"weather_station_name,omitempty"`
	MCC                *string    `json:"mcc,omitempty"`
	MNC                *string    `json:"mnc,omitempty"`
	MobileBrand        *string    `json:"mobile_brand,omitempty"`
	Elevation          *string    `json:"elevation,omitempty"`
	UsageType          *string    `json:"usage_type,omitempty"`
	AddressType        *string    `json:"address_type,omitempty"`
	Category           *string    `json:"category,omitempty"`
	District           *string    `json:"district,omitempty"`
	ASN                *string    `json:"asn,omitempty"`
	AS                 *string    `json:"as,omitempty"`
}

// NewRecord returns an empty record with the unspecified address.
func NewRecord() *Record {
	return &Record{IP: netip.IPv6Unspecified()}
}

// JSON renders the record with absent fields omitted.
func (r *Record) JSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
