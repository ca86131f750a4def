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

package namespace

import (
	"testing"

	"github.com/exascience/atomtable/atom"
)

func TestMake(t *testing.T) {
	ns1, err := Make(HTML)
	if err != nil {
		t.Fatal(err)
	}
	ns2, err := Make(HTML)
	if err != nil {
		t.Fatal(err)
	}
	if ns1.Atom != ns2.Atom {
		t.Error("equal namespace URLs diverged")
	}
	other, err := Make(SVG)
	if err != nil {
		t.Fatal(err)
	}
	if ns1.Atom == other.Atom {
		t.Error("distinct namespace URLs share an identity")
	}
	ns1.Destroy()
	ns2.Destroy()
	other.Destroy()
}

func TestNone(t *testing.T) {
	none := None()
	if none.Atom != atom.Default() {
		t.Error("None is not the empty-string atom")
	}
	none.Destroy()
}

func TestQualName(t *testing.T) {
	base := atom.Live()
	space, err := Make(XML)
	if err != nil {
		t.Fatal(err)
	}
	local := atom.Must("base")
	name := New(space, local)
	if name.Local.String() != "base" || name.Space.Atom.String() != XML {
		t.Error("QualName construction failed")
	}

	clone := name.Clone()
	if clone.Space.Atom != name.Space.Atom || clone.Local != name.Local {
		t.Error("QualName clone changed identity")
	}
	clone.Destroy()
	if name.Space.Atom.String() != XML {
		t.Error("QualName invalidated by destroying a clone")
	}
	name.Destroy()
	if atom.Live() != base {
		t.Error("QualName leaked entries")
	}
}
