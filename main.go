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

// atomtable is a concurrent string interning cache for high-frequency,
// short-lived strings in parsing and markup pipelines. The atom package
// holds the library; this binary exercises the table against text
// workloads.
//
// Please see http://github.com/exascience/atomtable for a documentation
// of the tool and the API.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/atomtable/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: intern, events")
	fmt.Fprint(os.Stderr, "\n", cmd.InternHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.EventsHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "intern":
		err = cmd.Intern()
	case "events":
		err = cmd.Events()
	case "help", "-h", "--h", "-help", "--help":
		printHelp()
	default:
		log.Println("Unknown command: ", os.Args[1])
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
