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

// Package driver implements the fraig orchestration loop (spec §4.H):
// prove each FEC group's candidates against its representative, merge
// on UNSAT, re-simulate on SAT counterexamples, and repeat until every
// group has been resolved.
//
// The orchestration shape — a fixed sequence of named passes run
// repeatedly until a worklist empties — is modeled on
// plan/pir.(*Trace).optimize in the teacher repo, which runs a fixed
// list of named rewrite passes in sequence; here the "passes" are the
// pre-process/encode/prove/commit steps of one outer iteration instead
// of a one-shot list, because spec §4.H's loop condition ("while FEC
// groups remain") has no teacher analogue.
package driver

import (
	"context"
	"io"
	"math"

	"github.com/ladsiii/fraig/aig"
	"github.com/ladsiii/fraig/cirlog"
	"github.com/ladsiii/fraig/sat"
)

// NewSolver constructs a fresh, uninitialized SAT solver for one outer
// iteration. Run calls it once per iteration since each iteration needs
// its own clean incremental solver state (spec §4.H step 1).
type NewSolver func() sat.Solver

func satVar(g *aig.Gate) sat.VarID { return sat.VarID(g.Var + 1) }

type mergePair struct {
	Alive, Dead aig.Candidate
}

// Run executes the fraig loop over m starting from groups, the initial
// FEC partition from a prior random simulation (spec §4.H). ctx is
// checked only at the start of each outer iteration: if it is done, Run
// returns ctx.Err() there, leaving buffered merges uncommitted and
// skipping the final strash. There is no cancellation inside an
// iteration or a SAT query.
func Run(ctx context.Context, m *aig.Manager, newSolver NewSolver, groups []*aig.FECGroup) error {
	unsatMergeRatio := 0.3
	const unsatMergeRatioIncrement = 0.9

	model := aig.NewPatternModel(m.NPI())
	periodCnt := 0
	var pending []mergePair

	for len(groups) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		solver := newSolver()
		solver.Initialize()
		for range m.AllGates() {
			solver.NewVar()
		}
		solver.AssertProperty(satVar(m.ConstGate()), false)

		groups = aig.RefineFECGroups(groups)
		assignDfsOrder(m)
		for _, g := range groups {
			g.SortDfsOrder()
			g.LinkToGates()
		}

		dfs := m.DfsList()
		for dfsID, cur := range dfs {
			if !cur.IsAig() {
				continue
			}
			solver.AddAigCNF(
				satVar(cur), satVar(cur.Fanin0.Target), cur.Fanin0.Inv,
				satVar(cur.Fanin1.Target), cur.Fanin1.Inv,
			)

			grp := cur.Grp()
			if grp == nil {
				continue
			}
			repC := grp.Rep()
			if repC.Gate == cur {
				continue
			}
			candC := grp.Cand(cur.GrpIdx())

			if prove(solver, repC, candC, m.Log) {
				// SAT: inequivalent. Collect the counterexample.
				collectCounterExample(m, solver, model, periodCnt)
				periodCnt++
				if periodCnt >= aig.WordBits {
					aig.Simulate(m, model)
					relinkGroups(groups)
					cirlog.UpdateSat(m.Log, len(groups))
					periodCnt = 0
					model = aig.NewPatternModel(m.NPI())
				}
				continue
			}

			// UNSAT: functionally equivalent. Buffer the merge.
			pending = append(pending, mergePair{Alive: repC, Dead: candC})
			grp.LazyDelete(cur.GrpIdx())
			ratio := float64(dfsID) / float64(len(dfs))
			if ratio > unsatMergeRatio && len(pending) > 0 {
				commitMerges(m, pending)
				pending = pending[:0]
				groups = aig.RefineFECGroups(groups)
				cirlog.UpdateUnsat(m.Log, len(groups))
				unsatMergeRatio = math.Min(1.0, unsatMergeRatio+unsatMergeRatioIncrement)
				break
			}
		}
		m.RebuildDfs()
	}

	commitMerges(m, pending)
	cirlog.UpdateUnsat(m.Log, len(groups))
	m.RebuildDfs()
	groups = aig.RefineFECGroups(groups)
	aig.Simulate(m, model) // residual (<WordBits, zero-padded) counterexamples
	cirlog.UpdateSat(m.Log, len(groups))

	aig.Strash(m)

	if aig.Debug && len(groups) != 0 {
		panic("driver: fec groups not empty after fraig")
	}
	return nil
}

func assignDfsOrder(m *aig.Manager) {
	for i, g := range m.DfsList() {
		if g.IsAig() {
			g.SetDfsOrder(i + 1)
		}
	}
	m.ConstGate().SetDfsOrder(0) // nothing may merge into a non-constant through the constant
}

func relinkGroups(groups []*aig.FECGroup) {
	for _, g := range groups {
		g.LinkToGates()
	}
}

func prove(solver sat.Solver, rep, cand aig.Candidate, log io.Writer) bool {
	newV := solver.NewVar()
	inv := rep.Inv != cand.Inv
	solver.AddXorCNF(newV, satVar(rep.Gate), rep.Inv, satVar(cand.Gate), cand.Inv)
	cirlog.Proving(log, rep.Gate.IsConst(), rep.Gate.Var, cand.Gate.Var, inv)
	solver.AssumeRelease()
	solver.AssumeProperty(newV, true)
	return solver.AssumeSolve()
}

func collectCounterExample(m *aig.Manager, solver sat.Solver, model *aig.PatternModel, col int) {
	for i := 0; i < m.NPI(); i++ {
		val := solver.GetValue(satVar(m.PI(i)))
		switch val {
		case 0:
			model.Set0(i, col)
		case 1:
			model.Set1(i, col)
		default:
			if aig.Debug {
				panic("driver: solver returned indeterminate value for a primary input")
			}
		}
	}
}

func commitMerges(m *aig.Manager, pairs []mergePair) {
	for _, p := range pairs {
		inv := p.Alive.Inv != p.Dead.Inv
		cirlog.FraigMerging(m.Log, p.Alive.Gate.Var, p.Dead.Gate.Var, inv)
		aig.Merge(m, p.Alive.Gate, p.Dead.Gate, inv)
	}
}
