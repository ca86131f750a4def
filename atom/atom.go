// atomtable: a high-performance string interning cache for parsing pipelines.
// Copyright (c) 2020-2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/atomtable/blob/master/LICENSE.txt>.

/*
Package atom implements a concurrent string interning cache. Strings with
equal contents are mapped to a single canonical, reference-counted table
entry, so that equality checks and hashing reduce to comparing a 64-bit
identity word instead of comparing bytes.

Atoms are explicitly managed: every atom produced by New, FromBytes, Must,
or Clone owns one reference and must be released with exactly one call to
Destroy. Short strings and a fixed set of common markup names bypass the
table entirely; see the inline and static representations below.
*/
package atom

import (
	"errors"
	"log"
	"sync/atomic"
	"unicode/utf8"

	"github.com/exascience/atomtable/internal"
)

// The low two bits of an identity word select the representation. The
// remaining bits are representation-specific: an interned atom stores its
// table id, an inline atom stores its length in the upper nybble of the
// low byte and its contents in the upper seven bytes, and a static atom
// stores its index in the static set above bit 32.
const (
	dynamicTag = 0
	inlineTag  = 1
	staticTag  = 2
	tagMask    = 3

	// MaxInlineLen is the longest string that is stored directly in the
	// identity word instead of the interning table.
	MaxInlineLen = 7

	staticShiftBits = 32

	// A destroyed atom is poisoned with the unused tag value in pedantic
	// builds. No valid identity word has both tag bits set.
	poisonData = tagMask
)

// ErrInvalidEncoding is returned by New and FromBytes when the input is
// not valid UTF-8.
var ErrInvalidEncoding = errors.New("atom: input is not valid UTF-8")

/*
An Atom is a canonical handle for a string.

Two live atoms hold equal strings if and only if their identity words are
equal, so atoms can be compared with ==. For interned atoms this holds
because the table keeps exactly one live entry per distinct string; ids
are reused only after all atoms for an entry have been destroyed.

The zero Atom is not a valid atom; use Default for the empty string.

Atoms must not be duplicated by plain assignment when the copy outlives
the original: use Clone, and Destroy every atom exactly once.
*/
type Atom struct {
	data  uint64
	entry *entry
}

// New returns an atom for the given string.
//
// It fails with ErrInvalidEncoding if s is not valid UTF-8, in which case
// the table is left untouched.
func New(s string) (Atom, error) {
	if !utf8.ValidString(s) {
		return Atom{}, ErrInvalidEncoding
	}
	return pack(s), nil
}

// FromBytes returns an atom for the given bytes. The bytes are copied, so
// the caller may reuse the slice afterwards.
//
// It fails with ErrInvalidEncoding if the bytes are not valid UTF-8.
func FromBytes(b []byte) (Atom, error) {
	if !utf8.Valid(b) {
		return Atom{}, ErrInvalidEncoding
	}
	return pack(string(b)), nil
}

// Must is New with a panic in place of an error.
func Must(s string) Atom {
	a, err := New(s)
	if err != nil {
		log.Panic(err)
	}
	return a
}

// Default returns the atom for the empty string.
func Default() Atom {
	return Atom{data: staticTag}
}

func pack(s string) Atom {
	if index, ok := staticIndex[s]; ok {
		return Atom{data: uint64(index)<<staticShiftBits | staticTag}
	}
	if len(s) <= MaxInlineLen {
		data := uint64(len(s))<<4 | inlineTag
		for i := 0; i < len(s); i++ {
			data |= uint64(s[i]) << uint(8*(i+1))
		}
		return Atom{data: data}
	}
	e := cache.intern(s, internal.StringHash(s))
	return Atom{data: e.id << 2, entry: e}
}

func (a Atom) tag() uint64 {
	return a.data & tagMask
}

func (a Atom) checkLive() {
	if internal.PedanticMode {
		if a.data == 0 || a.data&tagMask == poisonData {
			log.Panic("use of an invalid or destroyed atom")
		}
	}
}

// Value returns the identity word of the atom. Its only documented use is
// equality comparison against the identity words of other live atoms.
func (a Atom) Value() uint64 {
	a.checkLive()
	return a.data
}

// IsStatic returns true for atoms from the static set.
func (a Atom) IsStatic() bool {
	return a.tag() == staticTag
}

// IsInline returns true for atoms stored directly in the identity word.
func (a Atom) IsInline() bool {
	return a.tag() == inlineTag
}

// IsDynamic returns true for atoms backed by an interning table entry.
func (a Atom) IsDynamic() bool {
	return a.tag() == dynamicTag
}

// Len returns the length of the atom's string in bytes.
func (a Atom) Len() int {
	a.checkLive()
	switch a.tag() {
	case inlineTag:
		return int(a.data >> 4 & 0xf)
	case staticTag:
		return len(staticAtoms[a.data>>staticShiftBits])
	default:
		return len(a.entry.str)
	}
}

// String returns the atom's string. For interned and static atoms this
// does not copy the underlying bytes; the result is valid independently
// of the atom's lifetime only for static atoms.
func (a Atom) String() string {
	a.checkLive()
	switch a.tag() {
	case inlineTag:
		var buf [MaxInlineLen]byte
		n := int(a.data >> 4 & 0xf)
		for i := 0; i < n; i++ {
			buf[i] = byte(a.data >> uint(8*(i+1)))
		}
		return string(buf[:n])
	case staticTag:
		return staticAtoms[a.data>>staticShiftBits]
	default:
		return a.entry.str
	}
}

// Hash returns a 32-bit hash of the atom's string. Equal atoms always
// return equal hash values, also across the three representations of the
// same string over time.
func (a Atom) Hash() uint32 {
	a.checkLive()
	switch a.tag() {
	case staticTag:
		return staticHashes[a.data>>staticShiftBits]
	case dynamicTag:
		return internal.Fold32(a.entry.hash)
	default:
		return internal.Fold32(a.data)
	}
}

// Clone returns a second atom with the same identity. For interned atoms
// this increments the shared reference count; it never touches the string
// bytes. The clone must be destroyed independently of the original.
func (a Atom) Clone() Atom {
	a.checkLive()
	if a.tag() == dynamicTag {
		atomic.AddInt64(&a.entry.refcount, 1)
	}
	return a
}

// Destroy releases the atom's ownership of its table entry. When the last
// atom for an entry is destroyed, the entry is removed from the table and
// its id becomes available for reuse.
//
// The atom, and any string previously obtained from it, must not be used
// after Destroy. Destroying an atom twice is a contract violation; in
// pedantic builds it panics.
func (a *Atom) Destroy() {
	a.checkLive()
	if a.tag() == dynamicTag {
		e := a.entry
		if atomic.AddInt64(&e.refcount, -1) == 0 {
			cache.remove(e)
		}
	}
	if internal.PedanticMode {
		a.data = poisonData
		a.entry = nil
	}
}
