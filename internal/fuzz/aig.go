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

// Package fuzz generates random AIG netlists for the core packages'
// property tests (spec §8), in the style of ion/versify's Generate(src
// *rand.Rand) methods in the teacher repo: every generator takes an
// explicit seed and draws from its own *rand.Rand, so callers get
// reproducible output from a fixed seed.
package fuzz

import (
	"fmt"
	"math/rand"

	"github.com/ladsiii/fraig/aig"
)

// Options controls the shape of a generated netlist.
type Options struct {
	NPI      int // number of primary inputs
	NAig     int // number of AND gates to generate
	NPO      int // number of primary outputs
	Seed     int64
	Redundant bool // when true, bias fanin choices to create strash/FEC duplicates
}

// Manager generates a random, acyclic AIG netlist satisfying Options.
// Every AND gate's fanins are drawn only from already-defined gates
// (PIs and earlier AND gates), so the result is acyclic by
// construction; every PO's fanin is drawn from the full gate pool.
func Manager(o Options) *aig.Manager {
	rng := rand.New(rand.NewSource(o.Seed))
	maxIdx := uint32(o.NPI + o.NAig)
	m := aig.NewManager(maxIdx, uint32(o.NPO))

	for i := 0; i < o.NPI; i++ {
		m.NewPI(uint32(i+1), 0)
	}

	pool := append([]*aig.Gate{m.ConstGate()}, m.PIs()...)
	randLit := func() (*aig.Gate, bool) {
		g := pool[rng.Intn(len(pool))]
		return g, rng.Intn(2) == 0
	}

	var lastF0, lastF1 *aig.Gate
	var lastI0, lastI1 bool
	haveLast := false

	for i := 0; i < o.NAig; i++ {
		v := uint32(o.NPI + 1 + i)
		g := m.NewAig(v, 0)

		var f0, f1 *aig.Gate
		var i0, i1 bool
		if o.Redundant && haveLast && rng.Intn(3) == 0 {
			// Deliberately repeat the previous AND gate's exact fanin
			// pair, manufacturing a structural (strash) duplicate on
			// purpose rather than leaving duplicates to chance.
			f0, i0, f1, i1 = lastF0, lastI0, lastF1, lastI1
		} else {
			f0, i0 = randLit()
			f1, i1 = randLit()
		}
		g.SetFanin0(f0, i0)
		g.SetFanin1(f1, i1)
		pool = append(pool, g)

		lastF0, lastI0, lastF1, lastI1 = f0, i0, f1, i1
		haveLast = true
	}

	for i := 0; i < o.NPO; i++ {
		po := m.NewPO(maxIdx+1+uint32(i), 0)
		f, inv := randLit()
		po.SetFanin0(f, inv)
	}

	m.RebuildDfs()
	m.RebuildAuxLists()
	m.CountAig()
	return m
}

// PatternStrings renders n random patterns as pattern-file lines of nPI
// '0'/'1' characters each (spec §6.3 format), for round-tripping through
// pattern.LoadFile in tests.
func PatternStrings(nPI, n int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	lines := make([]string, n)
	for i := range lines {
		buf := make([]byte, nPI)
		for j := range buf {
			if rng.Intn(2) == 0 {
				buf[j] = '0'
			} else {
				buf[j] = '1'
			}
		}
		lines[i] = string(buf)
	}
	return lines
}

// String renders a netlist as a compact debugging form, one line per
// AND gate.
func String(m *aig.Manager) string {
	s := ""
	for _, g := range m.DfsList() {
		if !g.IsAig() {
			continue
		}
		s += fmt.Sprintf("%d = %d%v & %d%v\n", g.Var, g.Fanin0.Target.Var, g.Fanin0.Inv, g.Fanin1.Target.Var, g.Fanin1.Inv)
	}
	return s
}
