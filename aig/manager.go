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

import "io"

// Manager owns the entire gate table for one netlist (spec §3.3). It is
// the single writer of every Gate; all other code (DFS, strash, the FEC
// partitioner, the fraig driver) reads gates by pointer obtained from the
// manager and mutates them only through the operations this package
// exposes.
type Manager struct {
	MaxIdx uint32 // M: max variable index at parse time
	NLatch uint32 // L: latch count, parsed but never supported (spec §1 non-goal)

	gates []*Gate // index 0 = const0, 1..NPI = PIs, interior = AIG vars, tail = POs
	pis   []*Gate

	globalRef uint64

	dfsList      []*Gate
	floatingList []*Gate
	unusedList   []*Gate
	undefList    []*Gate

	nAig int // live AIG gate count, recomputed by CountAig

	// Log receives the stable diagnostic messages from spec §6.4 (strash
	// merges, fraig merges, proving, FEC-group updates). Defaults to
	// io.Discard; cmd/fraig points it at os.Stdout when run with -v.
	Log io.Writer
}

// NewManager allocates an empty manager sized for maxIdx interior
// variables and nPO outputs (spec §3.3, mirroring
// cirMgr.cpp:parse_preprocess's _vAllGates.resize).
func NewManager(maxIdx, nPO uint32) *Manager {
	m := &Manager{MaxIdx: maxIdx, Log: io.Discard}
	m.gates = make([]*Gate, 1+int(maxIdx)+int(nPO))
	m.gates[0] = newGate(KindConst0, 0, 0)
	return m
}

// Gate returns the gate at table index gid, or nil if that slot is
// unallocated (only possible before parsing completes).
func (m *Manager) Gate(gid uint32) *Gate {
	if int(gid) >= len(m.gates) {
		return nil
	}
	return m.gates[gid]
}

// SetGate installs g at table index gid, growing the table if necessary.
// Used by NewPI/NewPO/NewAig/NewUndef below.
func (m *Manager) SetGate(gid uint32, g *Gate) {
	if int(gid) >= len(m.gates) {
		grown := make([]*Gate, gid+1)
		copy(grown, m.gates)
		m.gates = grown
	}
	m.gates[gid] = g
}

// ConstGate returns the single constant-false gate (table index 0).
func (m *Manager) ConstGate() *Gate { return m.gates[0] }

// NewPI allocates a new primary input at table index v and appends it to
// the PI list in declaration order.
func (m *Manager) NewPI(v uint32, lineNo uint32) *Gate {
	g := newGate(KindPI, v, lineNo)
	m.SetGate(v, g)
	m.pis = append(m.pis, g)
	return g
}

// NewPO allocates a new primary output at table index v.
func (m *Manager) NewPO(v uint32, lineNo uint32) *Gate {
	g := newGate(KindPO, v, lineNo)
	m.SetGate(v, g)
	return g
}

// NewAig allocates a new (fanin-less, for now) AIG gate at table index v.
// Callers install its fanins with SetFanin0/SetFanin1 immediately after.
func (m *Manager) NewAig(v uint32, lineNo uint32) *Gate {
	g := newGate(KindAIG, v, lineNo)
	m.SetGate(v, g)
	return g
}

// NewUndef allocates a placeholder gate for a referenced-but-undefined
// variable (spec §3.2). It is excluded from DFS and behaves as
// constant-unknown.
func (m *Manager) NewUndef(v uint32) *Gate {
	g := newGate(KindUndef, v, 0)
	m.SetGate(v, g)
	return g
}

// QueryGate returns the gate at table index gid, allocating a fresh
// KindUndef placeholder if the slot is empty. This matches
// cirMgr.cpp:parse_queryGate: during AAG parsing, any fanin literal may
// reference a variable not yet (or never) defined by an AIG line.
func (m *Manager) QueryGate(gid uint32) *Gate {
	if int(gid) < len(m.gates) && m.gates[gid] != nil {
		return m.gates[gid]
	}
	return m.NewUndef(gid)
}

// NPI returns the number of primary inputs.
func (m *Manager) NPI() int { return len(m.pis) }

// PI returns the i'th primary input in declaration order.
func (m *Manager) PI(i int) *Gate { return m.pis[i] }

// PIs returns every primary input, in declaration order. The returned
// slice must not be mutated.
func (m *Manager) PIs() []*Gate { return m.pis }

// NPO returns the number of primary outputs.
func (m *Manager) NPO() int { return len(m.gates) - int(m.MaxIdx) - 1 }

// PO returns the i'th primary output in declaration order.
func (m *Manager) PO(i int) *Gate { return m.gates[int(m.MaxIdx)+1+i] }

// AllGates returns every allocated table slot, including nil holes and
// the constant gate at index 0. The returned slice must not be mutated;
// use DeleteGate to remove a gate.
func (m *Manager) AllGates() []*Gate { return m.gates }

// NAig returns the number of live AIG gates as of the last CountAig call.
func (m *Manager) NAig() int { return m.nAig }

// CountAig recomputes the live AIG gate count by scanning the table
// (spec §4.B: "not on the critical path").
func (m *Manager) CountAig() {
	n := 0
	for _, g := range m.gates {
		if g != nil && g.IsAig() {
			n++
		}
	}
	m.nAig = n
}

// DeleteGate nils a table slot. Only merge.go's Merge calls this; it
// must be called only after every reciprocal edge referencing g has been
// rewritten away (spec §4.D post-condition).
func (m *Manager) DeleteGate(g *Gate) {
	if int(g.Var) < len(m.gates) && m.gates[g.Var] == g {
		m.gates[g.Var] = nil
	}
}

// DfsList returns the most recently built DFS-ordered, PO-reachable gate
// list (spec §3.4). It is rebuilt from scratch, never mutated in place.
func (m *Manager) DfsList() []*Gate { return m.dfsList }

// FloatingList returns every AIG or PO gate with a direct fanin that is an
// UNDEF placeholder (spec §11.2 supplement).
func (m *Manager) FloatingList() []*Gate { return m.floatingList }

// UnusedList returns every gate unreachable from any PO that is not a PI,
// a PO, an UNDEF placeholder or the constant (spec §11.2 supplement).
func (m *Manager) UnusedList() []*Gate { return m.unusedList }

// UndefList returns every KindUndef placeholder still present in the
// table.
func (m *Manager) UndefList() []*Gate { return m.undefList }
