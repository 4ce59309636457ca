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

// Package ip2bin reads IP2Location and IP2Proxy BIN databases behind one
// open/lookup facade. The product family is detected from the file header;
// lookups dispatch to the matching engine.
package ip2bin

/* BIN Format
	+--------------------------------+
	|             Header             |
	+--------------------------------+
	|        IPv4 Range Table        |
	+--------------------------------+
	|        IPv6 Range Table        |
	+--------------------------------+
	|          IPv4 Index            |
	+--------------------------------+
	|          IPv6 Index            |
	+--------------------------------+
	|          String Pool           |
	+--------------------------------+

* All multi-byte integers are stored in Little Endian
* All offsets are 1-based: offset 1 is the first byte of the file
* String encoding is UTF-8
* Region order varies between distributions; every region is located
  through header offsets, never by position in the file

Header (35 bytes)
	+--------------------------------+--------------------------------+--------------------------------+
	|        DB Type (1byte)         |       DB Column (1byte)        |      DB Date YYMMDD (3byte)    |
	+--------------------------------+--------------------------------+--------------------------------+
	|       IPv4 Count (4byte)       |       IPv4 Base (4byte)        |       IPv6 Count (4byte)       |
	+--------------------------------+--------------------------------+--------------------------------+
	|       IPv6 Base (4byte)        |    IPv4 Index Base (4byte)     |    IPv6 Index Base (4byte)     |
	+--------------------------------+--------------------------------+--------------------------------+
	|      Product Code (1byte)      |      License Code (1byte)      |     Database Size (4byte)      |
	+--------------------------------+--------------------------------+--------------------------------+
* Product Code is 0x1 for IP2Location, 0x2 for IP2Proxy, 0x0 for legacy files
* Index Base is 0 when the file carries no index

Range Table Row (single element)
	+--------------------------------+--------------------------------+
	|   Range Begin (4 or 16 byte)   |  Columns 2..n (4 byte each)    |
	+--------------------------------+--------------------------------+
* IPv4 rows are DB Column x 4 bytes; the begin address is column 1
* IPv6 rows carry a leading 16-byte begin address (counted as 4 columns
  of 4) followed by DB Column - 1 column slots
* IPv6 begin addresses are stored least-significant octet first
* The exclusive range end is the next row's begin address
* Columns hold either an inline 32-bit float (latitude, longitude) or a
  32-bit pointer into the string pool

Index (single element)
	+--------------------------------+--------------------------------+
	|        Row Low (4byte)         |        Row High (4byte)        |
	+--------------------------------+--------------------------------+
* Keyed by the top 16 bits of the address; entry k starts at
  Index Base + k*8
* The inclusive row window contains every row starting with that prefix

String Pool (single element)
	+--------------------------------+--------------------------------+
	|         Length (1byte)         |        UTF-8 Data (n byte)     |
	+--------------------------------+--------------------------------+
* Countries are two back-to-back strings: the 2-letter code, then the
  full name at pointer + 3

*/
