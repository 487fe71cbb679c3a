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

package sat

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// GiniSolver implements Solver on top of github.com/irifrance/gini, the
// real incremental Go SAT solver present in the retrieval pack (its
// z.Lit/Assume/Solve/Value shape is what the abstract Solver contract in
// solver.go was
// modeled on). Clauses are added directly at the CNF level, the same way
// the vendored gini/logic.C.ToCnf helper Tseitin-encodes an AND gate as
// three two/three-literal clauses.
type GiniSolver struct {
	g     *gini.Gini
	assum []z.Lit
}

// NewGiniSolver constructs a backend with no variables allocated yet.
// Callers must call Initialize before use.
func NewGiniSolver() *GiniSolver {
	return &GiniSolver{}
}

func toVar(v VarID) z.Var { return z.Var(int(v)) }

func lit(v VarID, inv bool) z.Lit {
	zv := toVar(v)
	if inv {
		return zv.Neg()
	}
	return zv.Pos()
}

// Initialize implements Solver.
func (s *GiniSolver) Initialize() {
	s.g = gini.New()
}

// NewVar implements Solver.
func (s *GiniSolver) NewVar() VarID {
	return VarID(int(s.g.NewVar()))
}

func addClause(g *gini.Gini, lits ...z.Lit) {
	for _, l := range lits {
		g.Add(l)
	}
	g.Add(z.LitNull)
}

// AddAigCNF implements Solver: y <-> (a^aInv) & (b^bInv), Tseitin-encoded
// as (!y|a')(!y|b')(y|!a'|!b') where a'/b' already carry their polarity.
func (s *GiniSolver) AddAigCNF(y, a VarID, aInv bool, b VarID, bInv bool) {
	yl, al, bl := lit(y, false), lit(a, aInv), lit(b, bInv)
	addClause(s.g, yl.Not(), al)
	addClause(s.g, yl.Not(), bl)
	addClause(s.g, yl, al.Not(), bl.Not())
}

// AddXorCNF implements Solver: y <-> (a^aInv) ^ (b^bInv), the standard
// four-clause Tseitin XOR encoding.
func (s *GiniSolver) AddXorCNF(y, a VarID, aInv bool, b VarID, bInv bool) {
	yl, al, bl := lit(y, false), lit(a, aInv), lit(b, bInv)
	addClause(s.g, yl.Not(), al, bl)
	addClause(s.g, yl.Not(), al.Not(), bl.Not())
	addClause(s.g, yl, al.Not(), bl)
	addClause(s.g, yl, al, bl.Not())
}

// AssertProperty implements Solver.
func (s *GiniSolver) AssertProperty(v VarID, polarity bool) {
	s.g.Add(lit(v, !polarity))
	s.g.Add(z.LitNull)
}

// AssumeRelease implements Solver: drops whatever assumptions were
// accumulated for the previous query, so a stale assumption from one
// prove() call can never leak into the next (spec §4.G).
func (s *GiniSolver) AssumeRelease() {
	s.assum = s.assum[:0]
}

// AssumeProperty implements Solver.
func (s *GiniSolver) AssumeProperty(v VarID, polarity bool) {
	s.assum = append(s.assum, lit(v, !polarity))
}

// AssumeSolve implements Solver.
func (s *GiniSolver) AssumeSolve() bool {
	s.g.Assume(s.assum...)
	return s.g.Solve() == 1
}

// GetValue implements Solver. gini's Value always returns a concrete
// boolean for any variable known to the solver, so this backend never
// actually produces the -1 (indeterminate) outcome the abstract contract
// allows for — that case exists for solvers with a genuine unassigned
// state, and fraig.go's fatal assertion on it is effectively dead code
// against this backend, which is the expected, documented situation.
func (s *GiniSolver) GetValue(v VarID) int {
	if s.g.Value(lit(v, false)) {
		return 1
	}
	return 0
}
