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

import "testing"

func TestFoldSimCollapsesComplementaryPair(t *testing.T) {
	s := uint64(0xABCD)
	k1, inv1 := foldSim(s)
	k2, inv2 := foldSim(^s)
	if k1 != k2 {
		t.Fatalf("a signature and its complement must fold to the same bucket key: %x != %x", k1, k2)
	}
	if inv1 == inv2 {
		t.Fatalf("exactly one of the pair must be recorded inverted")
	}
}

func TestInitialFECGroupsSplitsBySignature(t *testing.T) {
	m := NewManager(3, 0)
	a := m.NewAig(1, 0)
	b := m.NewAig(2, 0)
	c := m.NewAig(3, 0)
	// Fake up sim values directly: a and b share a signature, c differs.
	a.sim = 0b10
	b.sim = 0b10
	c.sim = 0b11 // differs by low bit only -> different gate, not a fold match with 0b10
	m.dfsList = []*Gate{a, b, c}

	groups := InitialFECGroups(m)
	found := false
	for _, g := range groups {
		if g.Len() == 2 {
			gates := map[*Gate]bool{g.Cand(0).Gate: true, g.Cand(1).Gate: true}
			if gates[a] && gates[b] {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a and b (identical signature) to land in the same FEC group")
	}
	for _, g := range groups {
		for i := 0; i < g.Len(); i++ {
			if g.Cand(i).Gate == c {
				t.Fatalf("c has a distinct signature and must not share a* group with a/b")
			}
		}
	}
}

func TestGroupsOfSizeOneAreDiscarded(t *testing.T) {
	m := NewManager(2, 0)
	a := m.NewAig(1, 0)
	b := m.NewAig(2, 0)
	a.sim = 0b10
	b.sim = 0b100 // unique
	m.dfsList = []*Gate{a, b}

	groups := InitialFECGroups(m)
	for _, g := range groups {
		if g.Len() < 2 {
			t.Fatalf("a singleton group must never be returned")
		}
	}
}

func TestLazyDeleteThenCompact(t *testing.T) {
	m := NewManager(3, 0)
	a := m.NewAig(1, 0)
	b := m.NewAig(2, 0)
	c := m.NewAig(3, 0)
	grp := newFECGroup([]Candidate{{Gate: a}, {Gate: b}, {Gate: c}})

	grp.LazyDelete(1)
	if !grp.IsValid() {
		t.Fatalf("group with 2 live members out of 3 should still be valid")
	}
	if grp.Len() != 3 {
		t.Fatalf("lazy delete must not shrink the slice before Compact")
	}

	grp.Compact()
	if grp.Len() != 2 {
		t.Fatalf("expected 2 live candidates after compacting, got %d", grp.Len())
	}
	for i := 0; i < grp.Len(); i++ {
		if grp.Cand(i).Gate == b {
			t.Fatalf("tombstoned candidate b survived compaction")
		}
	}
}

func TestRefineFECGroupsSplitsOnDivergentSim(t *testing.T) {
	m := NewManager(3, 0)
	a := m.NewAig(1, 0)
	b := m.NewAig(2, 0)
	c := m.NewAig(3, 0)
	grp := newFECGroup([]Candidate{{Gate: a}, {Gate: b}, {Gate: c}})

	// Previously all three folded to the same signature; now a/b still
	// agree but c has diverged.
	a.sim, b.sim, c.sim = 0b10, 0b10, 0b1000

	refined := RefineFECGroups([]*FECGroup{grp})
	if len(refined) != 1 {
		t.Fatalf("expected c's divergence to drop it, leaving one surviving pair group, got %d groups", len(refined))
	}
	if refined[0].Len() != 2 {
		t.Fatalf("expected the surviving group to contain exactly a and b, got %d members", refined[0].Len())
	}
}
