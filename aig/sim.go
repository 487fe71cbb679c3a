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

package aig

import "math/bits"

// WordBits is the machine word width used for one simulation batch: the
// Go analogue of cirDef.h's SIM_CYCLE (sizeof(size_t)*8). All patterns
// in a batch are packed bit-parallel into a single uint64 per gate.
const WordBits = bits.UintSize

// allOnes is a full word of 1 bits (cirDef.h's ALL1).
const allOnes uint64 = ^uint64(0)

// PatternModel holds one batch of up to WordBits input patterns, one row
// of packed bits per primary input (spec §3.6's CirModel).
type PatternModel struct {
	nPI  int
	rows []uint64
}

// NewPatternModel allocates a model for nPI primary inputs, all bits
// initially zero.
func NewPatternModel(nPI int) *PatternModel {
	return &PatternModel{nPI: nPI, rows: make([]uint64, nPI)}
}

// Set0 and Set1 install pattern bit `col` (0 <= col < WordBits) of PI
// index `pi` to 0 or 1 respectively.
func (p *PatternModel) Set0(pi, col int) { p.rows[pi] &^= 1 << uint(col) }
func (p *PatternModel) Set1(pi, col int) { p.rows[pi] |= 1 << uint(col) }

// Row returns the packed simulation word for PI index pi.
func (p *PatternModel) Row(pi int) uint64 { return p.rows[pi] }

// PatternModelsFromStrings packs a sequence of "0101..." pattern strings
// (one character per PI, spec §6.3) into WordBits-wide batches, the last
// of which is zero-padded if it is not full. Each string must be exactly
// nPI characters of '0'/'1'; callers (pattern.LoadFile) are responsible
// for validating that before calling this.
func PatternModelsFromStrings(patterns []string, nPI int) []*PatternModel {
	var models []*PatternModel
	for start := 0; start < len(patterns); start += WordBits {
		end := start + WordBits
		if end > len(patterns) {
			end = len(patterns)
		}
		m := NewPatternModel(nPI)
		for col, pat := range patterns[start:end] {
			for pi, c := range pat {
				if c == '1' {
					m.Set1(pi, col)
				}
			}
		}
		models = append(models, m)
	}
	return models
}

func faninVal(e Edge) uint64 {
	if e.Inv {
		return e.Target.sim ^ allOnes
	}
	return e.Target.sim
}

// Simulate installs model's rows onto the PIs and evaluates every gate
// in the current DFS list in order, each AIG gate computing
// `sim(f0)^inv0 AND sim(f1)^inv1` and each PO computing `sim(fanin)^inv`
// (spec §4.E). The constant gate's sim value is always 0.
//
// Simulation is deterministic (spec §8 property 5): identical DFS order
// and identical PI rows always produce identical sim values, since every
// gate's value is a pure function of its fanins' already-computed values.
func Simulate(m *Manager, model *PatternModel) {
	m.ConstGate().sim = 0
	for i, pi := range m.pis {
		pi.sim = model.Row(i)
	}
	for _, g := range m.dfsList {
		switch g.Kind {
		case KindAIG:
			g.sim = faninVal(g.Fanin0) & faninVal(g.Fanin1)
		case KindPO:
			g.sim = faninVal(g.Fanin0)
		}
	}
}
