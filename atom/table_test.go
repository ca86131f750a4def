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

import (
	"fmt"
	"testing"

	"github.com/exascience/pargo/parallel"
)

func TestReferenceAccounting(t *testing.T) {
	base := Live()
	a := Must("reference-accounting")
	if Live() != base+1 {
		t.Error("intern did not create an entry")
	}
	clones := make([]Atom, 5)
	for i := range clones {
		clones[i] = a.Clone()
	}
	if Live() != base+1 {
		t.Error("clones created entries")
	}
	for i := range clones {
		clones[i].Destroy()
	}
	if Live() != base+1 {
		t.Error("entry reclaimed while a reference was live")
	}
	a.Destroy()
	if Live() != base {
		t.Error("entry not reclaimed after the last destroy")
	}
	b := Must("reference-accounting")
	if !b.IsDynamic() || b.String() != "reference-accounting" {
		t.Error("fresh intern after reclamation failed")
	}
	b.Destroy()
}

func TestConcurrentIntern(t *testing.T) {
	base := Live()
	const n = 1024
	atoms := make([]Atom, n)
	parallel.Range(0, n, 0, func(low, high int) {
		for i := low; i < high; i++ {
			atoms[i] = Must("concurrent")
		}
	})
	for i := 1; i < n; i++ {
		if atoms[i] != atoms[0] {
			t.Error("concurrent interning of equal strings diverged")
			break
		}
	}
	if Live() != base+1 {
		t.Error("concurrent interning created duplicate entries")
	}
	parallel.Range(0, n, 0, func(low, high int) {
		for i := low; i < high; i++ {
			atoms[i].Destroy()
		}
	})
	if Live() != base {
		t.Error("concurrent destroys leaked entries")
	}
}

func TestConcurrentDistinct(t *testing.T) {
	base := Live()
	const n = 512
	atoms := make([]Atom, n)
	parallel.Range(0, n, 0, func(low, high int) {
		for i := low; i < high; i++ {
			atoms[i] = Must(fmt.Sprintf("distinct-string-%04d", i))
		}
	})
	seen := make(map[uint64]int, n)
	for i, a := range atoms {
		if j, found := seen[a.Value()]; found {
			t.Errorf("atoms %v and %v share an identity", j, i)
		}
		seen[a.Value()] = i
	}
	if Live() != base+n {
		t.Error("concurrent distinct interning lost entries")
	}
	parallel.Range(0, n, 0, func(low, high int) {
		for i := low; i < high; i++ {
			atoms[i].Destroy()
		}
	})
	if Live() != base {
		t.Error("concurrent destroys leaked entries")
	}
}

// Concurrent intern/destroy churn of a single string exercises the
// back-off path where an intern observes an entry whose reference count
// has already dropped to zero.
func TestInternDestroyChurn(t *testing.T) {
	base := Live()
	parallel.Range(0, 8, 0, func(low, high int) {
		for g := low; g < high; g++ {
			for i := 0; i < 20000; i++ {
				a := Must("churning-string")
				if a.String() != "churning-string" {
					t.Error("churn corrupted contents")
					return
				}
				a.Destroy()
			}
		}
	})
	if Live() != base {
		t.Error("churn leaked entries")
	}
}

func TestBucketCollisions(t *testing.T) {
	// More strings than buckets forces chains.
	base := Live()
	const n = 3 * nbBuckets / 2
	atoms := make([]Atom, n)
	for i := range atoms {
		atoms[i] = Must(fmt.Sprintf("collision-filler-%06d", i))
	}
	if Live() != base+n {
		t.Error("chained insert lost entries")
	}
	for i := range atoms {
		if atoms[i].String() != fmt.Sprintf("collision-filler-%06d", i) {
			t.Error("chained lookup failed")
			break
		}
	}
	for i := range atoms {
		atoms[i].Destroy()
	}
	if Live() != base {
		t.Error("chained removal leaked entries")
	}
}
