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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/ladsiii/fraig/aag"
	"github.com/ladsiii/fraig/aig"
	"github.com/ladsiii/fraig/cirlog"
	"github.com/ladsiii/fraig/driver"
	"github.com/ladsiii/fraig/pattern"
	"github.com/ladsiii/fraig/sat"
)

// shell holds the state threaded between commands within one invocation:
// the netlist last loaded by CIRRead and the FEC partition last built by
// CIRSIMulate and consumed by CIRFraig (spec §6.3).
type shell struct {
	m       *aig.Manager
	groups  []*aig.FECGroup
	runID   uuid.UUID
	verbose bool
}

func newShell(verbose bool) *shell {
	return &shell{runID: uuid.New(), verbose: verbose}
}

// command implements one of the five named commands from spec §6.3. Each
// parses its own arguments through its own flag.NewFlagSet rather than
// sharing package-level flag state.
type command func(sh *shell, args []string) error

var commands = map[string]command{
	"CIRRead":     cirRead,
	"CIRSTRash":   cirStrash,
	"CIRSIMulate": cirSimulate,
	"CIRFraig":    cirFraig,
	"CIRWrite":    cirWrite,
}

// cirRead implements CIRRead <file.aag>: parse an AAG file into a fresh
// netlist, replacing whatever was previously loaded.
func cirRead(sh *shell, args []string) error {
	fs := flag.NewFlagSet("CIRRead", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: CIRRead <in.aag>")
	}

	f, err := os.Open(rest[0])
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := aag.Read(f)
	if err != nil {
		return err
	}
	if sh.verbose {
		m.Log = os.Stdout
		fmt.Fprintln(os.Stdout, "fraig run "+sh.runID.String())
	}
	sh.m = m
	sh.groups = nil
	return nil
}

// cirStrash implements CIRSTRash: structurally hash the loaded netlist.
func cirStrash(sh *shell, args []string) error {
	fs := flag.NewFlagSet("CIRSTRash", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if sh.m == nil {
		return fmt.Errorf("no netlist loaded, run CIRRead first")
	}
	aig.Strash(sh.m)
	return nil
}

// cirSimulate implements CIRSIMulate [-random | -file <file>]: simulate
// the loaded netlist and (re)build its FEC partition for CIRFraig.
func cirSimulate(sh *shell, args []string) error {
	fs := flag.NewFlagSet("CIRSIMulate", flag.ContinueOnError)
	random := fs.Bool("random", false, "simulate with a fresh batch of random patterns")
	file := fs.String("file", "", "simulation pattern file (one 0/1 string per line)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if sh.m == nil {
		return fmt.Errorf("no netlist loaded, run CIRRead first")
	}
	if *random == (*file != "") {
		return fmt.Errorf("specify exactly one of -random or -file")
	}

	var batches []*aig.PatternModel
	var total int
	if *random {
		batches = []*aig.PatternModel{aig.RandomModel(sh.m.NPI(), nil)}
		total = aig.WordBits
	} else {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		lines, err := pattern.LoadFile(f, sh.m.NPI())
		if err != nil {
			return err
		}
		batches = aig.PatternModelsFromStrings(lines, sh.m.NPI())
		total = len(lines)
	}

	sh.groups = simulateBatches(sh.m, batches)
	cirlog.PatternsSimulated(sh.m.Log, total)
	return nil
}

// simulateBatches runs every WordBits-wide batch through the simulator in
// turn, building the initial FEC partition from the first batch and
// refining it by each subsequent one (spec §4.F: initial classification,
// then refinement after each further simulation) — the same progressive
// narrowing the fraig driver applies across its own SAT counterexample
// batches. A pattern file supplying more than one batch's worth of lines
// has every batch consumed, not just the first. An empty batch list still
// simulates one all-zero batch, so the resulting FEC partition and sim
// values are always well defined.
func simulateBatches(m *aig.Manager, batches []*aig.PatternModel) []*aig.FECGroup {
	if len(batches) == 0 {
		batches = []*aig.PatternModel{aig.NewPatternModel(m.NPI())}
	}
	var groups []*aig.FECGroup
	for i, batch := range batches {
		aig.Simulate(m, batch)
		if i == 0 {
			groups = aig.InitialFECGroups(m)
		} else {
			groups = aig.RefineFECGroups(groups)
		}
	}
	return groups
}

// cirFraig implements CIRFraig: fraig the loaded netlist's current FEC
// partition down with a SAT solver.
func cirFraig(sh *shell, args []string) error {
	fs := flag.NewFlagSet("CIRFraig", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if sh.m == nil {
		return fmt.Errorf("no netlist loaded, run CIRRead first")
	}
	if sh.groups == nil {
		return fmt.Errorf("no FEC groups built, run CIRSIMulate first")
	}

	err := driver.Run(context.Background(), sh.m, func() sat.Solver {
		return sat.NewGiniSolver()
	}, sh.groups)
	sh.groups = nil
	return err
}

// cirWrite implements CIRWrite [-o <out.aag>]: write the loaded netlist
// back out in AAG form, to stdout by default.
func cirWrite(sh *shell, args []string) error {
	fs := flag.NewFlagSet("CIRWrite", flag.ContinueOnError)
	dasho := fs.String("o", "", "output AAG file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if sh.m == nil {
		return fmt.Errorf("no netlist loaded, run CIRRead first")
	}

	var w io.Writer = os.Stdout
	if *dasho != "" {
		f, err := os.Create(*dasho)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return aag.Write(w, sh.m)
}
