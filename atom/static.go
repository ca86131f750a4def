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

package atom

import "github.com/exascience/atomtable/internal"

// staticAtoms lists strings that are pre-interned for the lifetime of the
// process: tag and attribute names that dominate markup workloads. A
// static atom packs its index in this list into its identity word and is
// never reference counted, so Clone and Destroy are free for them.
//
// The empty string is at index 0; Default relies on that.
var staticAtoms = [...]string{
	"",
	"id",
	"class",
	"href",
	"style",
	"span",
	"width",
	"height",
	"type",
	"data",
	"new",
	"name",
	"src",
	"rel",
	"div",
}

var (
	staticIndex  map[string]uint32
	staticHashes [len(staticAtoms)]uint32
)

func init() {
	staticIndex = make(map[string]uint32, len(staticAtoms))
	for i, s := range staticAtoms {
		staticIndex[s] = uint32(i)
		staticHashes[i] = internal.Fold32(internal.StringHash(s))
	}
}

// Lookup returns the static atom whose string is s, if there is one. The
// second return value reports whether s is in the static set.
func Lookup(s string) (Atom, bool) {
	index, ok := staticIndex[s]
	if !ok {
		return Atom{}, false
	}
	return Atom{data: uint64(index)<<staticShiftBits | staticTag}, true
}
