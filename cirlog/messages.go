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

// Package cirlog formats the stable diagnostic messages exposed across
// the command surface (spec §6.4). Every stable diagnostic message in
// the module funnels through one of these functions, the way the
// teacher repo funnels every compile diagnostic through
// plan/pir.errorf/CompileError.WriteTo rather than scattering
// fmt.Fprintf calls through the optimizer passes.
package cirlog

import (
	"fmt"
	"io"
)

func polarity(inv bool) string {
	if inv {
		return "!"
	}
	return ""
}

// Strashing reports a structural-hash merge: "Strashing: <alive> merging <dead>...".
func Strashing(w io.Writer, alive, dead uint32) {
	fmt.Fprintf(w, "Strashing: %d merging %d...\n", alive, dead)
}

// FraigMerging reports a fraig-driven merge, optionally inverted:
// "Fraig: <alive> merging [!]<dead>...".
func FraigMerging(w io.Writer, alive, dead uint32, inv bool) {
	fmt.Fprintf(w, "Fraig: %d merging %s%d...\n", alive, polarity(inv), dead)
}

// Proving reports the start of one SAT query. When repIsConst is true
// the representative is the constant gate, so the message degenerates
// to "Prove [!]<cand> = 1...".
func Proving(w io.Writer, repIsConst bool, repVar, candVar uint32, inv bool) {
	if repIsConst {
		fmt.Fprintf(w, "Prove %s%d = 1...", polarity(inv), candVar)
	} else {
		fmt.Fprintf(w, "Prove (%d, %s%d)...", repVar, polarity(inv), candVar)
	}
}

// UpdateUnsat reports FEC-group bookkeeping after committing UNSAT merges.
func UpdateUnsat(w io.Writer, nGroups int) {
	fmt.Fprintf(w, "Updating by UNSAT... Total #FEC Group = %d\n", nGroups)
}

// UpdateSat reports FEC-group bookkeeping after a SAT-driven re-simulation.
func UpdateSat(w io.Writer, nGroups int) {
	fmt.Fprintf(w, "Updating by SAT... Total #FEC Group = %d\n", nGroups)
}

// PatternsSimulated reports how many patterns a simulation command consumed.
func PatternsSimulated(w io.Writer, n int) {
	fmt.Fprintf(w, "%d patterns simulated.\n", n)
}
