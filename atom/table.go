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
	"log"
	"sync"
	"sync/atomic"

	"github.com/willf/bitset"

	"github.com/exascience/atomtable/internal"
)

const (
	nbBuckets  = 1 << 12
	bucketMask = nbBuckets - 1
)

// An entry is the canonical record for one interned string. An entry is
// chained into its bucket if and only if its reference count is positive,
// and at most one live entry exists per distinct string.
type entry struct {
	next     *entry
	hash     uint64
	refcount int64
	id       uint64
	str      string
}

type bucket struct {
	mutex sync.Mutex
	head  *entry
}

type table struct {
	buckets [nbBuckets]bucket
	idMutex sync.Mutex
	ids     *bitset.BitSet
}

var cache = newTable()

func newTable() *table {
	t := new(table)
	t.ids = bitset.New(1024)
	// Id 0 would pack to an all-zero identity word.
	t.ids.Set(0)
	return t
}

// acquireID returns the lowest id not held by a live entry. Ids are reused
// after an entry has been fully reclaimed; they are only unique among
// entries that are alive at the same time.
func (t *table) acquireID() uint64 {
	t.idMutex.Lock()
	id, ok := t.ids.NextClear(1)
	if !ok {
		id = t.ids.Len()
	}
	t.ids.Set(id)
	t.idMutex.Unlock()
	return uint64(id)
}

func (t *table) releaseID(id uint64) {
	t.idMutex.Lock()
	t.ids.Clear(uint(id))
	t.idMutex.Unlock()
}

// intern returns the canonical entry for s, creating it if necessary. The
// caller owns one reference on the returned entry. The check and the
// insert happen under the bucket lock, so concurrent interns of the same
// string always converge on a single entry.
func (t *table) intern(s string, hash uint64) *entry {
	b := &t.buckets[hash&bucketMask]
	b.mutex.Lock()
	for e := b.head; e != nil; e = e.next {
		if e.hash != hash || e.str != s {
			continue
		}
		if atomic.AddInt64(&e.refcount, 1) > 1 {
			b.mutex.Unlock()
			logEvent(internEvent, e.id, "")
			return e
		}
		// The count was zero, so a destroy on another goroutine is
		// already committed to removing this entry. Undo the increment
		// and chain a fresh duplicate instead; remove unlinks by entry
		// identity, so the doomed entry cannot take the new one with it.
		atomic.AddInt64(&e.refcount, -1)
		break
	}
	e := &entry{
		next:     b.head,
		hash:     hash,
		refcount: 1,
		id:       t.acquireID(),
		str:      s,
	}
	b.head = e
	b.mutex.Unlock()
	logEvent(insertEvent, e.id, s)
	return e
}

// remove unlinks e after its reference count has dropped to zero.
func (t *table) remove(e *entry) {
	if internal.PedanticMode {
		if n := atomic.LoadInt64(&e.refcount); n != 0 {
			log.Panicf("removing an entry with reference count %v", n)
		}
	}
	b := &t.buckets[e.hash&bucketMask]
	b.mutex.Lock()
	if b.head == e {
		b.head = e.next
	} else {
		for prev := b.head; prev != nil; prev = prev.next {
			if prev.next == e {
				prev.next = e.next
				break
			}
		}
	}
	t.releaseID(e.id)
	b.mutex.Unlock()
	logEvent(removeEvent, e.id, "")
}

// Live returns the number of entries currently interned in the table.
// Inline and static atoms never contribute to this count.
func Live() (n int) {
	for i := range cache.buckets {
		b := &cache.buckets[i]
		b.mutex.Lock()
		for e := b.head; e != nil; e = e.next {
			n++
		}
		b.mutex.Unlock()
	}
	return n
}
