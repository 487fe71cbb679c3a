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

// Debug gates the StructuralInvariant assertion in Merge (spec §7): when
// true, a dfs-order violation panics; when false it is undefined
// behavior, matching the original's NDEBUG-gated assert().
var Debug = false

// Merge replaces dead with alive everywhere dead appears as a fanin,
// folding inv into the polarity of every rewritten edge, then deletes
// dead from the gate table (spec §4.D).
//
// Every fanout edge (f, eInv) of dead is rewritten so f's matching fanin
// now targets alive with polarity eInv XOR inv, and the reciprocal
// fanout is appended to alive. dead's own fanout list is then cleared and
// dead is removed from the table. The caller (strash.go, fraig.go) is
// responsible for the constraint that alive.DfsOrder() < dead.DfsOrder()
// during fraig — the constant gate has DfsOrder 0 and must always be the
// alive side of any merge it participates in.
func Merge(m *Manager, alive, dead *Gate, inv bool) {
	if Debug && alive.dfsOrder >= 0 && dead.dfsOrder >= 0 && alive.dfsOrder >= dead.dfsOrder {
		panic("aig: merge violates dfs-order invariant")
	}

	for _, fe := range dead.fanout {
		f := fe.Target
		newInv := fe.Inv != inv
		rewriteFanin(f, dead, fe.Inv, alive, newInv)
		alive.AddFanout(f, newInv)
	}
	dead.fanout = nil

	// Remove dead's own reciprocal fanout records from its fanins.
	if dead.fanin0Set {
		dead.Fanin0.Target.RemoveFanout(dead, dead.Fanin0.Inv)
	}
	if dead.fanin1Set {
		dead.Fanin1.Target.RemoveFanout(dead, dead.Fanin1.Inv)
	}

	m.DeleteGate(dead)
}

// rewriteFanin finds whichever of f's fanin slots currently targets
// (from, fromInv) and repoints it at (to, inv). A gate may have both
// fanins point at the same source with different polarities (e.g. x AND
// !x), so the match is keyed on (target, polarity) so that each distinct
// fanout edge claims exactly the slot it came from, matching the
// duplicate-fanout invariant from spec §3.2.
func rewriteFanin(f, from *Gate, fromInv bool, to *Gate, inv bool) {
	if f.IsPo() {
		if f.Fanin0.Target == from && f.Fanin0.Inv == fromInv {
			f.Fanin0 = Edge{Target: to, Inv: inv}
		}
		return
	}
	if f.Fanin0.Target == from && f.Fanin0.Inv == fromInv {
		f.Fanin0 = Edge{Target: to, Inv: inv}
		return
	}
	if f.Fanin1.Target == from && f.Fanin1.Inv == fromInv {
		f.Fanin1 = Edge{Target: to, Inv: inv}
	}
}
