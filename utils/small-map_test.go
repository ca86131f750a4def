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

package utils

import (
	"testing"

	"github.com/exascience/atomtable/atom"
)

func TestSmallMap(t *testing.T) {
	id := atom.Must("id")
	class := atom.Must("class")
	style := atom.Must("style")

	var m SmallMap
	if _, found := m.Get(id); found {
		t.Error("empty Get failed")
	}
	m.Set(id, "a")
	m.Set(class, "b")
	if v, found := m.Get(id); !found || v != "a" {
		t.Error("Get 1 failed")
	}
	m.Set(id, "c")
	if v, found := m.Get(id); !found || v != "c" {
		t.Error("Set overwrite failed")
	}
	if len(m) != 2 {
		t.Error("Set overwrite appended")
	}
	if _, found := m.Get(style); found {
		t.Error("Get invented an entry")
	}

	m, deleted := m.Delete(id)
	if !deleted {
		t.Error("Delete 1 failed")
	}
	if _, found := m.Get(id); found {
		t.Error("Delete left the entry behind")
	}
	m, deleted = m.Delete(style)
	if deleted {
		t.Error("Delete invented an entry")
	}

	m.Set(id, 1)
	m.Set(style, 2)
	m, deleted = m.DeleteIf(func(key atom.Atom, val interface{}) bool {
		return key == class
	})
	if !deleted || len(m) != 2 {
		t.Error("DeleteIf failed")
	}
	if _, found := m.Get(class); found {
		t.Error("DeleteIf left the entry behind")
	}
}
