// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package memory

import (
	"errors"
	"fmt"
)

// Every fault this package reports falls into exactly one of the kinds below,
// and is matchable via errors.Is.  All are description-time faults: they
// surface synchronously to the constructing caller, nothing is retried, and a
// memory whose construction failed must not be reused.
var (
	// ErrConfiguration signals an invalid bitwidth or address width at
	// memory construction.
	ErrConfiguration = errors.New("invalid memory configuration")
	// ErrAddressWidth signals an address signal wider than the memory's
	// address width.
	ErrAddressWidth = errors.New("address wider than address width")
	// ErrDataWidth signals write data whose width mismatches the memory
	// bitwidth after coercion.
	ErrDataWidth = errors.New("write data width mismatch")
	// ErrEnableWidth signals a write enable which is not exactly one bit
	// after coercion.
	ErrEnableWidth = errors.New("write enable not one bit")
	// ErrProtocol signals misuse of the two-phase write protocol, including
	// any write attempt on a read-only memory.
	ErrProtocol = errors.New("memory write protocol violation")
	// ErrAddressRange signals a resolved address outside the addressable
	// range of a read-only table.
	ErrAddressRange = errors.New("address out of range")
	// ErrValueRange signals a resolved value too large for the table's
	// bitwidth.
	ErrValueRange = errors.New("value out of range")
	// ErrInvalidSource signals a read-only table data source which is
	// neither a generator nor a table.
	ErrInvalidSource = errors.New("invalid read-only table source")
	// ErrResolution signals a fault raised by a generator during value
	// resolution.
	ErrResolution = errors.New("table resolution failed")
)

// fault wraps a formatted message with one of the error kinds above, such that
// callers can match the kind via errors.Is whilst still seeing the detail.
func fault(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
