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

package aag

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ladsiii/fraig/aig"
)

// Write emits m in AAG textual format (spec §6.2), following the same
// section order Read expects: header, PI literals, PO literals, AND
// triples in DFS order, then an "i"/"o" symbol table for any gate that
// carries one. It does not re-derive M from the live gate count; M is
// always m.MaxIdx, matching cirMgr.cpp:printNetlist's behavior of
// preserving the original header's variable ceiling across strashing
// and fraiging even though some interior variables are now unused.
func Write(w io.Writer, m *aig.Manager) error {
	bw := bufio.NewWriter(w)

	nPI := m.NPI()
	nPO := m.NPO()
	var nAIG int
	for _, g := range m.DfsList() {
		if g.IsAig() {
			nAIG++
		}
	}

	if _, err := fmt.Fprintf(bw, "aag %d %d %d %d %d\n", m.MaxIdx, nPI, m.NLatch, nPO, nAIG); err != nil {
		return err
	}

	for i := 0; i < nPI; i++ {
		if _, err := fmt.Fprintf(bw, "%d\n", m.PI(i).Var*2); err != nil {
			return err
		}
	}

	for i := 0; i < nPO; i++ {
		po := m.PO(i)
		lit := po.Fanin0.Target.Var * 2
		if po.Fanin0.Inv {
			lit |= 1
		}
		if _, err := fmt.Fprintf(bw, "%d\n", lit); err != nil {
			return err
		}
	}

	for _, g := range m.DfsList() {
		if !g.IsAig() {
			continue
		}
		f0 := g.Fanin0.Target.Var * 2
		if g.Fanin0.Inv {
			f0 |= 1
		}
		f1 := g.Fanin1.Target.Var * 2
		if g.Fanin1.Inv {
			f1 |= 1
		}
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", g.Var*2, f0, f1); err != nil {
			return err
		}
	}

	for i := 0; i < nPI; i++ {
		if sym := m.PI(i).Symbol; sym != "" {
			if _, err := fmt.Fprintf(bw, "i%d %s\n", i, sym); err != nil {
				return err
			}
		}
	}
	for i := 0; i < nPO; i++ {
		if sym := m.PO(i).Symbol; sym != "" {
			if _, err := fmt.Fprintf(bw, "o%d %s\n", i, sym); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
