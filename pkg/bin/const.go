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

const (
	// HeaderLength is the minimum blob length ReadHeader accepts. The header
	// fields below span 35 bytes; a blob of 32 to 34 bytes passes this check
	// and then fails the Database Size read with errors.ErrOutOfBounds.
	// 1 byte DB Type
	// 1 byte DB Column
	// 3 bytes DB Date (YY MM DD)
	// 4 bytes IPv4 Count
	// 4 bytes IPv4 Base
	// 4 bytes IPv6 Count
	// 4 bytes IPv6 Base
	// 4 bytes IPv4 Index Base
	// 4 bytes IPv6 Index Base
	// 1 byte Product Code
	// 1 byte License Code
	// 4 bytes Database Size
	HeaderLength = 32

	// ProductLegacy marks files authored before the product code byte existed.
	ProductLegacy = 0x0

	// ProductLocation marks IP2Location geolocation databases.
	ProductLocation = 0x1

	// ProductProxy marks IP2Proxy databases.
	ProductProxy = 0x2

	// legacyYearMax is the last two-digit year for which a zero product code
	// is accepted. Upstream compatibility cut-off, do not generalize.
	legacyYearMax = 20
)
