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

// buildStructuralDuplicate builds two AIGs with identical fanin
// signatures (spec §8 scenario S3): `6 = 2 & 4`, `8 = 2 & 4`, each driving
// its own PO.
func buildStructuralDuplicate() (m *Manager, g6, g8 *Gate) {
	m = NewManager(4, 2)
	pi1 := m.NewPI(1, 0)
	pi2 := m.NewPI(2, 0)
	g6 = m.NewAig(3, 0)
	g6.SetFanin0(pi1, false)
	g6.SetFanin1(pi2, false)
	g8 = m.NewAig(4, 0)
	g8.SetFanin0(pi1, false)
	g8.SetFanin1(pi2, false)
	po1 := m.NewPO(5, 0)
	po1.SetFanin0(g6, false)
	po2 := m.NewPO(6, 0)
	po2.SetFanin0(g8, false)
	m.RebuildDfs()
	return m, g6, g8
}

func TestStrashMergesStructuralDuplicate(t *testing.T) {
	m, g6, _ := buildStructuralDuplicate()
	Strash(m)

	m.CountAig()
	if m.NAig() != 1 {
		t.Fatalf("expected 1 surviving AIG gate after strash, got %d", m.NAig())
	}
	if m.Gate(4) != nil {
		t.Fatalf("expected gate 4 (the later duplicate) to be deleted")
	}
	if m.PO(1).Fanin0.Target != g6 {
		t.Fatalf("expected PO 1 to now be driven by the earlier duplicate")
	}
}

func TestStrashIsIdempotent(t *testing.T) {
	m, _, _ := buildStructuralDuplicate()
	Strash(m)
	first := m.NAig()
	firstDfsLen := len(m.DfsList())

	Strash(m)
	if m.NAig() != first {
		t.Fatalf("second strash changed AIG count: %d -> %d", first, m.NAig())
	}
	if len(m.DfsList()) != firstDfsLen {
		t.Fatalf("second strash changed DFS list length: %d -> %d", firstDfsLen, len(m.DfsList()))
	}
}

func TestStrashUnaffectedByIndependentGates(t *testing.T) {
	// Two independent ANDs over four distinct PIs (spec §8 scenario S5):
	// no structural duplicate exists, so strash must not merge anything.
	m := NewManager(8, 2)
	pi1 := m.NewPI(1, 0)
	pi2 := m.NewPI(2, 0)
	pi3 := m.NewPI(5, 0)
	pi4 := m.NewPI(6, 0)
	g6 := m.NewAig(3, 0)
	g6.SetFanin0(pi1, false)
	g6.SetFanin1(pi2, false)
	g8 := m.NewAig(7, 0)
	g8.SetFanin0(pi3, false)
	g8.SetFanin1(pi4, false)
	po1 := m.NewPO(9, 0)
	po1.SetFanin0(g6, false)
	po2 := m.NewPO(10, 0)
	po2.SetFanin0(g8, false)
	m.RebuildDfs()

	Strash(m)
	m.CountAig()
	if m.NAig() != 2 {
		t.Fatalf("expected both independent AIGs to survive, got NAig=%d", m.NAig())
	}
}
