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

import "golang.org/x/exp/slices"

// Candidate is one member of an FEC group: a gate together with its
// polarity relative to the group's folded signature (spec §3.5).
type Candidate struct {
	Gate *Gate
	Inv  bool
}

// FECGroup is a candidate equivalence class: a set of (gate, inverted?)
// pairs believed to compute the same function up to the shared polarity
// recorded per candidate (spec §3.5). Deletion during a fraig sweep is
// lazy — LazyDelete tombstones in place so the sweep can keep iterating
// the group by index — and Compact is the only thing that physically
// removes tombstoned entries.
type FECGroup struct {
	cands []Candidate
	tomb  []bool
	nLive int
}

func newFECGroup(cands []Candidate) *FECGroup {
	g := &FECGroup{cands: cands, tomb: make([]bool, len(cands)), nLive: len(cands)}
	for i := range cands {
		cands[i].Gate.fecGroup = g
		cands[i].Gate.fecIndex = i
	}
	return g
}

// IsValid reports whether the group still has at least two live
// candidates.
func (g *FECGroup) IsValid() bool { return g.nLive >= 2 }

// Len returns the number of candidate slots (including tombstoned ones).
func (g *FECGroup) Len() int { return len(g.cands) }

// Cand returns candidate slot i.
func (g *FECGroup) Cand(i int) Candidate { return g.cands[i] }

// Tombstoned reports whether slot i has been lazily deleted.
func (g *FECGroup) Tombstoned(i int) bool { return g.tomb[i] }

// Rep returns the group's representative: by convention (enforced by
// SortDfsOrder) the live candidate with the smallest DfsOrder, which
// is always slot 0 once sorted.
func (g *FECGroup) Rep() Candidate { return g.cands[0] }

// LazyDelete tombstones candidate slot i without compacting the
// underlying slice, so a sweep in progress can keep iterating by index
// (spec §3.5, §9 design note).
func (g *FECGroup) LazyDelete(i int) {
	if !g.tomb[i] {
		g.tomb[i] = true
		g.nLive--
	}
}

// SortDfsOrder sorts the group's candidates by ascending DfsOrder (spec
// §4.F representative choice) and refreshes each live gate's fecIndex
// back-reference. Must be called with every candidate's DfsOrder already
// assigned (the constant gate is always 0, so it always sorts first).
// Callers only ever sort a freshly-compacted group (fraig_sortFecGrps_dfsOrder
// runs right after fraig_refineFecGrp), so every slot is live at this point.
func (g *FECGroup) SortDfsOrder() {
	slices.SortFunc(g.cands, func(a, b Candidate) int {
		return a.Gate.dfsOrder - b.Gate.dfsOrder
	})
	for i := range g.cands {
		g.cands[i].Gate.fecIndex = i
	}
}

// LinkToGates repoints every live candidate's Gate.fecGroup/fecIndex
// back to this group at its current slot — used after sorting and after
// a group is newly constructed (spec §4.H's sim_linkGrp2Gate).
func (g *FECGroup) LinkToGates() {
	for i, c := range g.cands {
		if !g.tomb[i] {
			c.Gate.fecGroup = g
			c.Gate.fecIndex = i
		}
	}
}

// Compact physically removes tombstoned slots, keeping only live
// candidates, and relinks fecIndex. The caller must re-run the splitter
// over the result if further refinement by current sim value is wanted
// (spec §4.H fraig_refineFecGrp / "refine() ... physically compacts
// survivors and reruns the splitter").
func (g *FECGroup) Compact() {
	live := g.cands[:0]
	for i, c := range g.cands {
		if !g.tomb[i] {
			live = append(live, c)
		}
	}
	g.cands = live
	g.tomb = make([]bool, len(g.cands))
	g.nLive = len(g.cands)
	g.LinkToGates()
}

// LiveGates returns the Gate of every live candidate in the group, for
// use as input to a re-split.
func (g *FECGroup) LiveGates() []*Gate {
	out := make([]*Gate, 0, g.nLive)
	for i, c := range g.cands {
		if !g.tomb[i] {
			out = append(out, c.Gate)
		}
	}
	return out
}

// foldSim applies the polarity-folding rule from spec §4.F / §9: the
// signature whose low bit is 0 is the bucket key; a signature with low
// bit 1 is the inverted form, complemented before bucketing. This is
// what collapses a gate g and its complement !g into the same class.
func foldSim(s uint64) (key uint64, inv bool) {
	if s&1 == 1 {
		return ^s, true
	}
	return s, false
}

// splitByFold partitions gates into new FEC groups keyed by their
// current folded simulation signature, discarding buckets that end up
// with fewer than two members. It implements both the initial
// classification and the refinement step from spec §4.F — the two
// differ only in which gates are fed in (every AIG gate plus the
// constant, vs. one existing group's live members).
func splitByFold(gates []*Gate) []*FECGroup {
	buckets := make(map[uint64][]Candidate, len(gates))
	order := make([]uint64, 0, len(gates))
	for _, g := range gates {
		key, inv := foldSim(g.sim)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], Candidate{Gate: g, Inv: inv})
	}
	groups := make([]*FECGroup, 0, len(order))
	for _, key := range order {
		cands := buckets[key]
		if len(cands) < 2 {
			for _, c := range cands {
				c.Gate.fecGroup = nil
			}
			continue
		}
		groups = append(groups, newFECGroup(cands))
	}
	return groups
}

// InitialFECGroups builds the first FEC partition after the first
// random simulation pass: every AIG gate plus the constant gate forms
// one universe, split by folded signature (spec §4.F "Initial
// classification").
func InitialFECGroups(m *Manager) []*FECGroup {
	gates := make([]*Gate, 0, len(m.dfsList)+1)
	gates = append(gates, m.ConstGate())
	for _, g := range m.dfsList {
		if g.IsAig() {
			gates = append(gates, g)
		}
	}
	return splitByFold(gates)
}

// RefineFECGroups re-partitions every existing group by current
// simulation signature (spec §4.F "Refinement"): each group is compacted
// and its live members are re-split into freshly built groups (even a
// group that stays whole comes back as a new *FECGroup), keeping only the
// non-trivial subgroups, so a group that entirely collapses (fewer than
// two members share any signature) is dropped.
func RefineFECGroups(groups []*FECGroup) []*FECGroup {
	out := make([]*FECGroup, 0, len(groups))
	for _, g := range groups {
		g.Compact()
		if !g.IsValid() {
			continue
		}
		subs := splitByFold(g.LiveGates())
		out = append(out, subs...)
	}
	return out
}
