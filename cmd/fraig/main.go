// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command fraig reduces an AIG netlist to its minimal functionally
// equivalent form through five named commands (spec §6.3): CIRRead,
// CIRSTRash, CIRSIMulate, CIRFraig and CIRWrite. A single invocation runs
// any sequence of them, either as trailing command-line arguments or, with
// none given, one line at a time from stdin — the same read-eval-print
// shape the original tool's command loop had, over a fixed five-verb
// vocabulary instead of an open-ended parser.
//
// Each command parses its own arguments through a dedicated
// flag.NewFlagSet, the way cmd/sdb/pack.go and cmd/sdb/unpack.go give each
// subcommand its own flags in the teacher repo rather than sharing one
// global flag.FlagSet.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

var dashv bool

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose: log strash/fraig/simulate progress and the run id to stdout")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "    %s [-v] CIRRead <in.aag> [CIRSTRash] [CIRSIMulate -random|-file <f>] [CIRFraig] [CIRWrite [-o <out.aag>]]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        run any sequence of the five named commands\n")
	fmt.Fprintf(os.Stderr, "    %s [-v]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "        with no commands on the command line, read the same commands one line at a time from stdin\n")
	fmt.Fprintf(os.Stderr, "commands: CIRRead, CIRSTRash, CIRSIMulate, CIRFraig, CIRWrite\n")
	fmt.Fprintf(os.Stderr, "flag usage:\n")
	flag.Usage()
}

// runTokens dispatches a flat token stream as a sequence of named
// commands, splitting the stream at command-name boundaries so each
// command only ever sees its own trailing arguments.
func runTokens(sh *shell, tokens []string) error {
	for len(tokens) > 0 {
		name := tokens[0]
		cmd, ok := commands[name]
		if !ok {
			return fmt.Errorf("unknown command %q (commands: CIRRead, CIRSTRash, CIRSIMulate, CIRFraig, CIRWrite)", name)
		}
		end := 1
		for end < len(tokens) {
			if _, isCmd := commands[tokens[end]]; isCmd {
				break
			}
			end++
		}
		if err := cmd(sh, tokens[1:end]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		tokens = tokens[end:]
	}
	return nil
}

// runREPL reads one line at a time from r, dispatching each line as its
// own command sequence, until EOF. A failing line reports its error and
// moves on to the next line rather than aborting the session.
func runREPL(sh *shell, r *os.File) int {
	status := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := runTokens(sh, strings.Fields(line)); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			status = 1
		}
	}
	return status
}

func main() {
	flag.Parse()
	args := flag.Args()

	sh := newShell(dashv)

	if len(args) == 0 {
		os.Exit(runREPL(sh, os.Stdin))
	}

	if _, ok := commands[args[0]]; !ok {
		usage()
		os.Exit(1)
	}
	if err := runTokens(sh, args); err != nil {
		exitf("%s\n", err)
	}
}
