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

// RebuildDfs recomputes the DFS list: every gate reachable from any
// primary output, in post-order (fanins before fanout), left fanin
// before right fanin, excluding UNDEF gates (spec §4.B, §8 property 3).
//
// It uses a generation counter (globalRef) rather than clearing a
// visited-bit on every gate between calls, the same trick
// cirMgr.cpp:buildDfsList uses with its package-global `globalRef`.
func (m *Manager) RebuildDfs() {
	m.globalRef++
	m.dfsList = m.dfsList[:0]
	for i := 0; i < m.NPO(); i++ {
		m.recDfs(m.PO(i))
	}
}

func (m *Manager) recDfs(g *Gate) {
	if g == nil || g.IsUndef() {
		return
	}
	if g.refMark == m.globalRef {
		return
	}
	g.refMark = m.globalRef
	if g.IsPo() {
		m.recDfs(g.fanin0Gate())
	} else if g.IsAig() {
		m.recDfs(g.fanin0Gate())
		m.recDfs(g.fanin1Gate())
	}
	m.dfsList = append(m.dfsList, g)
}

// RebuildFloatingList recomputes the set of gates whose fanin chain
// passes through an UNDEF placeholder: any AIG or PO gate with a fanin
// that is itself UNDEF. It is rebuilt by a full scan of the gate table;
// it is not on the fraig critical path (spec §4.B).
func (m *Manager) RebuildFloatingList() {
	m.floatingList = m.floatingList[:0]
	for _, g := range m.gates {
		if g == nil || g.IsConst() || g.IsPi() || g.IsUndef() {
			continue
		}
		f0 := g.fanin0Gate()
		if f0 != nil && f0.IsUndef() {
			m.floatingList = append(m.floatingList, g)
			continue
		}
		if g.IsAig() {
			if f1 := g.fanin1Gate(); f1 != nil && f1.IsUndef() {
				m.floatingList = append(m.floatingList, g)
			}
		}
	}
}

// RebuildUnusedList recomputes the set of gates not reachable from any
// PO and not themselves a PI, a PO, an UNDEF placeholder or the constant
// gate. Must be called after
// RebuildDfs so refMark reflects the current DFS sweep.
func (m *Manager) RebuildUnusedList() {
	m.unusedList = m.unusedList[:0]
	for _, g := range m.gates {
		if g == nil || g.IsConst() || g.IsPi() || g.IsPo() || g.IsUndef() {
			continue
		}
		if g.refMark != m.globalRef {
			m.unusedList = append(m.unusedList, g)
		}
	}
}

// RebuildUndefList recomputes the set of live UNDEF placeholders.
func (m *Manager) RebuildUndefList() {
	m.undefList = m.undefList[:0]
	for _, g := range m.gates {
		if g != nil && g.IsUndef() {
			m.undefList = append(m.undefList, g)
		}
	}
}

// RebuildAuxLists refreshes the floating, unused, and undef lists
// together. Callers that only need the DFS list should call RebuildDfs
// alone; these three are informational bookkeeping, not used by strash,
// simulation, or fraig.
func (m *Manager) RebuildAuxLists() {
	m.RebuildFloatingList()
	m.RebuildUnusedList()
	m.RebuildUndefList()
}
