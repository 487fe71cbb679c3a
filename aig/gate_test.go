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

func TestMakeLit(t *testing.T) {
	cases := []struct {
		v   uint32
		inv bool
	}{
		{0, false}, {0, true}, {1, false}, {1, true}, {1000, true},
	}
	for _, c := range cases {
		l := MakeLit(c.v, c.inv)
		if l.Var() != c.v || l.Inv() != c.inv {
			t.Errorf("MakeLit(%d, %v) round-trip failed: got Var=%d Inv=%v", c.v, c.inv, l.Var(), l.Inv())
		}
	}
}

func TestFanoutReciprocity(t *testing.T) {
	m := NewManager(3, 1)
	pi1 := m.NewPI(1, 0)
	pi2 := m.NewPI(2, 0)
	and := m.NewAig(3, 0)
	and.SetFanin0(pi1, false)
	and.SetFanin1(pi2, true)

	found0, found1 := false, false
	for _, e := range pi1.Fanout() {
		if e.Target == and && !e.Inv {
			found0 = true
		}
	}
	for _, e := range pi2.Fanout() {
		if e.Target == and && e.Inv {
			found1 = true
		}
	}
	if !found0 || !found1 {
		t.Fatalf("fanout not reciprocal to fanin: found0=%v found1=%v", found0, found1)
	}
}

func TestSetFaninTwiceIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic setting fanin0 twice")
		}
	}()
	m := NewManager(2, 0)
	pi := m.NewPI(1, 0)
	and := m.NewAig(2, 0)
	and.SetFanin0(pi, false)
	and.SetFanin0(pi, true)
}

func TestDuplicateFanoutAllowed(t *testing.T) {
	m := NewManager(2, 0)
	pi := m.NewPI(1, 0)
	and := m.NewAig(2, 0)
	and.SetFanin0(pi, false)
	and.SetFanin1(pi, false)
	if len(pi.Fanout()) != 2 {
		t.Fatalf("expected 2 fanout edges for self-AND, got %d", len(pi.Fanout()))
	}
}
