// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package digest builds the cheap structural fingerprints used for memoization.
//
// Every field is written with a type tag and a length prefix, so adjacent
// values can never run together ("ab"+"c" and "a"+"bc" hash differently).
package digest

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Builder accumulates fields in order.
type Builder struct {
	d *xxhash.Digest
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{d: xxhash.New()}
}

// String adds a string field.
func (b *Builder) String(s string) *Builder {
	b.write('s', s)
	return b
}

// Int adds an integer field.
func (b *Builder) Int(n int) *Builder {
	b.write('i', strconv.Itoa(n))
	return b
}

// Bool adds a boolean field.
func (b *Builder) Bool(v bool) *Builder {
	b.write('b', strconv.FormatBool(v))
	return b
}

// Sum returns the fingerprint as 16 lowercase hex characters.
func (b *Builder) Sum() string {
	return fmt.Sprintf("%016x", b.d.Sum64())
}

func (b *Builder) write(tag byte, v string) {
	// xxhash.Digest writes never fail
	_, _ = b.d.Write([]byte{tag})
	_, _ = b.d.WriteString(strconv.Itoa(len(v)))
	_, _ = b.d.Write([]byte{':'})
	_, _ = b.d.WriteString(v)
}
