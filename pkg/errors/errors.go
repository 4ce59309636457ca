/*
 * Copyright (c) 2023 shenjunzheng@gmail.com
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

package errors

import (
	"errors"
	"fmt"
)

var (
	// Blob

	ErrOutOfBounds = errors.New("offset out of bounds")

	// Header

	ErrUnknownDatabase = errors.New("unknown database format")
	ErrInvalidDatabase = errors.New("invalid database")

	// Lookup

	ErrRecordNotFound = errors.New("record not found")

	// Command / Server

	ErrInvalidIP = errors.New("invalid IP address")
)

// InvalidDatabaseError reports a header that parsed but identifies a
// (year, product) pair this reader does not support.
type InvalidDatabaseError struct {
	Year    uint8
	Product uint8
}

func (e *InvalidDatabaseError) Error() string {
	return fmt.Sprintf("invalid BIN database: year=%d product=%d", e.Year, e.Product)
}

// Unwrap ties the typed error into the ErrInvalidDatabase sentinel so callers
// can match either form with errors.Is.
func (e *InvalidDatabaseError) Unwrap() error {
	return ErrInvalidDatabase
}
