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

// Package namespace provides qualified names for HTML and XML
// processing, built on interned atoms.
package namespace

import "github.com/exascience/atomtable/atom"

// The conventional namespace URLs.
const (
	HTML   = "http://www.w3.org/1999/xhtml"
	XML    = "http://www.w3.org/XML/1998/namespace"
	XMLNS  = "http://www.w3.org/2000/xmlns/"
	XLink  = "http://www.w3.org/1999/xlink"
	SVG    = "http://www.w3.org/2000/svg"
	MathML = "http://www.w3.org/1998/Math/MathML"
)

// A Namespace is an atom that is meant to represent a namespace in the
// HTML / XML sense. Whether a given string represents a namespace is
// contextual, so this is a transparent wrapper that will not catch all
// mistakes.
type Namespace struct {
	Atom atom.Atom
}

// Make returns a Namespace for the given URL. The caller owns the
// namespace and must release it with Destroy.
func Make(url string) (Namespace, error) {
	a, err := atom.New(url)
	if err != nil {
		return Namespace{}, err
	}
	return Namespace{Atom: a}, nil
}

// None returns the empty namespace, for names that are not in any
// namespace. It holds no table reference, so destroying it is free.
func None() Namespace {
	return Namespace{Atom: atom.Default()}
}

// Clone returns a second namespace with the same identity.
func (ns Namespace) Clone() Namespace {
	return Namespace{Atom: ns.Atom.Clone()}
}

// Destroy releases the namespace's atom.
func (ns *Namespace) Destroy() {
	ns.Atom.Destroy()
}

// A QualName is a name with a namespace.
type QualName struct {
	Space Namespace
	Local atom.Atom
}

// New returns a QualName for the given namespace and local name. The
// QualName takes over the caller's references to both atoms.
func New(space Namespace, local atom.Atom) QualName {
	return QualName{Space: space, Local: local}
}

// Clone returns a second QualName with the same identity. Both underlying
// atoms are cloned.
func (q QualName) Clone() QualName {
	return QualName{Space: q.Space.Clone(), Local: q.Local.Clone()}
}

// Destroy releases both underlying atoms.
func (q *QualName) Destroy() {
	q.Space.Destroy()
	q.Local.Destroy()
}
