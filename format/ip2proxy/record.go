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

package ip2proxy

import (
	"encoding/json"
	"net/netip"
)

// Country carries the two back-to-back country strings of a row.
type Country struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

// Classification is the derived proxy verdict for a queried address.
type Classification uint8

const (
	// ClassificationError means no verdict could be derived.
	ClassificationError Classification = iota

	// NotAProxy means the address is not listed as a proxy.
	NotAProxy

	// IsAProxy means the address is listed as a proxy.
	IsAProxy

	// DataCenter means the address belongs to a data center / web hosting
	// range or a search engine robot.
	DataCenter
)

// String returns the variant name used by the JSON form.
func (c Classification) String() string {
	switch c {
	case NotAProxy:
		return "not_a_proxy"
	case IsAProxy:
		return "proxy"
	case DataCenter:
		return "data_center"
	default:
		return "error"
	}
}

// MarshalJSON encodes the classification as its variant name.
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Record is the proxy information for one queried address.
//
// IP is always present and reflects the caller's query. Every other field is
// populated exactly when the schema variant of the database carries it; nil
// fields are omitted from the JSON form. String fields are views into the
// database blob and stay valid only while the Reader is alive.
type Record struct {
	IP        netip.Addr     `json:"ip"`
	IsProxy   Classification `json:"is_proxy"`
	Country   *Country       `json:"country,omitempty"`
	Region    *string        `json:"region,omitempty"`
	City      *string        `json:"city,omitempty"`
	ISP       *string        `json:"isp,omitempty"`
	Domain    *string        `json:"domain,omitempty"`
	ProxyType *string        `json:"proxy_type,omitempty"`
	UsageType *string        `json:"usage_type,omitempty"`
	ASN       *string        `json:"asn,omitempty"`
	AS        *string        `json:"as,omitempty"`
	LastSeen  *string        `json:"last_seen,omitempty"`
	Threat    *string        `json:"threat,omitempty"`
	Provider  *string        `json:"provider,omitempty"`
}

// NewRecord returns an empty record with the unspecified address and the
// error classification.
func NewRecord() *Record {
	return &Record{IP: netip.IPv6Unspecified(), IsProxy: ClassificationError}
}

// JSON renders the record with absent fields omitted.
func (r *Record) JSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
