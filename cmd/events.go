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

package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/exascience/atomtable/atom"
)

// EventsHelp is the help string for this command.
const EventsHelp = "Events parameters:\n" +
	"atomtable events text-file\n" +
	"[--output json-file]\n"

// Events implements the atomtable events command. It replays the tokens
// of the input file through the interning table with event recording
// enabled and writes the resulting event stream as JSON, for analyzing
// the table behavior of a workload offline.
func Events() (err error) {
	var output string

	var flags flag.FlagSet

	flags.StringVar(&output, "output", "", "write the event stream to this file instead of standard output")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, EventsHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], EventsHelp)
	parseFlags(flags, 3, EventsHelp)

	tokens, err := readTokens(input)
	if err != nil {
		return err
	}

	// The replay is sequential so that the event stream follows the
	// input order.
	atom.StartEventLog()
	atoms := make([]atom.Atom, 0, len(tokens))
	for _, token := range tokens {
		a, err := atom.New(token)
		if err != nil {
			continue
		}
		atoms = append(atoms, a)
	}
	for i := range atoms {
		atoms[i].Destroy()
	}
	session, events := atom.StopEventLog()

	doc := struct {
		Session string       `json:"session"`
		Events  []atom.Event `json:"events"`
	}{session, events}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			nerr := f.Close()
			if err == nil {
				err = nerr
			}
		}()
		out = f
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
