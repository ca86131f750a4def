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
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/exascience/pargo/parallel"
	"github.com/exascience/pargo/pipeline"
	psync "github.com/exascience/pargo/sync"

	"github.com/exascience/atomtable/atom"
	"github.com/exascience/atomtable/internal"
	"github.com/exascience/atomtable/utils"
)

// InternHelp is the help string for this command.
const InternHelp = "Intern parameters:\n" +
	"atomtable intern text-file\n" +
	"[--nr-of-threads nr]\n" +
	"[--static-counts]\n" +
	"[--timed]\n"

// pargo sync.Map keys must be comparable and provide a 64-bit hash.
// Atom identity provides equality; the content hash spreads the splits.
type atomKey struct {
	a atom.Atom
}

func (k atomKey) Hash() uint64 {
	return uint64(k.a.Hash())
}

// Intern implements the atomtable intern command. It interns every
// whitespace-separated token of the input file concurrently and reports
// how the workload maps onto the three atom representations.
func Intern() error {
	var (
		nrOfThreads  int
		staticCounts bool
		timed        bool
	)

	var flags flag.FlagSet

	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&staticCounts, "static-counts", false, "report per-atom hits on the static set")
	flags.BoolVar(&timed, "timed", false, "time the different phases")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, InternHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], InternHelp)
	parseFlags(flags, 3, InternHelp)

	if nrOfThreads < 0 {
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
		fmt.Fprint(os.Stderr, InternHelp)
		os.Exit(1)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}

	tokens, err := readTokens(input)
	if err != nil {
		return err
	}

	var atoms []atom.Atom
	var invalid int64
	timedRun(timed, "Interning tokens.", func() {
		var p pipeline.Pipeline
		p.Source(tokens)
		p.Add(
			pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
				batch := data.([]string)
				out := make([]atom.Atom, 0, len(batch))
				for _, token := range batch {
					a, err := atom.New(token)
					if err != nil {
						atomic.AddInt64(&invalid, 1)
						continue
					}
					out = append(out, a)
				}
				return out
			})),
			pipeline.StrictOrd(pipeline.Slice(&atoms)),
		)
		internal.RunPipeline(&p)
	})

	type reprCounts struct {
		static, inline, dynamic int
	}
	var counts reprCounts
	var occurrences *psync.Map
	timedRun(timed, "Classifying atoms.", func() {
		counts = parallel.RangeReduce(0, len(atoms), 0, func(low, high int) interface{} {
			var c reprCounts
			for _, a := range atoms[low:high] {
				switch {
				case a.IsStatic():
					c.static++
				case a.IsInline():
					c.inline++
				default:
					c.dynamic++
				}
			}
			return c
		}, func(x, y interface{}) interface{} {
			c, d := x.(reprCounts), y.(reprCounts)
			return reprCounts{c.static + d.static, c.inline + d.inline, c.dynamic + d.dynamic}
		}).(reprCounts)

		occurrences = psync.NewMap(16 * runtime.GOMAXPROCS(0))
		parallel.Range(0, len(atoms), 0, func(low, high int) {
			for _, a := range atoms[low:high] {
				entry, _ := occurrences.LoadOrStore(atomKey{a}, new(int64))
				atomic.AddInt64(entry.(*int64), 1)
			}
		})
	})

	fmt.Println("Tokens:", len(tokens))
	if invalid > 0 {
		fmt.Println("Tokens skipped (not valid UTF-8):", invalid)
	}
	fmt.Println("Static atoms:", counts.static)
	fmt.Println("Inline atoms:", counts.inline)
	fmt.Println("Interned atoms:", counts.dynamic)
	fmt.Println("Distinct interned strings:", atom.Live())

	var maxAtom atom.Atom
	var maxCount int64
	for _, a := range atoms {
		if entry, ok := occurrences.Load(atomKey{a}); ok {
			if n := atomic.LoadInt64(entry.(*int64)); n > maxCount {
				maxCount = n
				maxAtom = a
			}
		}
	}
	if maxCount > 0 {
		fmt.Printf("Most frequent token: %q (%v occurrences)\n", maxAtom.String(), maxCount)
	}

	if staticCounts {
		var m utils.SmallMap
		for _, a := range atoms {
			if a.IsStatic() {
				if v, ok := m.Get(a); ok {
					m.Set(a, v.(int)+1)
				} else {
					m.Set(a, 1)
				}
			}
		}
		fmt.Println("Static set hits:")
		for _, e := range m {
			fmt.Printf("  %q: %v\n", e.Key.String(), e.Value)
		}
	}

	timedRun(timed, "Destroying atoms.", func() {
		parallel.Range(0, len(atoms), 0, func(low, high int) {
			for i := low; i < high; i++ {
				atoms[i].Destroy()
			}
		})
	})
	if live := atom.Live(); live != 0 {
		log.Panicf("%v entries left in the table after destroying all atoms", live)
	}
	return nil
}
