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

// Package sat defines the abstract SAT-solver contract the fraig driver
// depends on (spec §4.G) and a concrete backend on top of
// github.com/irifrance/gini.
package sat

// VarID is a SAT solver variable identifier. By convention (spec §4.G
// "Variable mapping") the SAT variable for an AIG gate with variable v
// is v+1, reserving 0 for the solver's internal sentinel.
type VarID int

// Solver is the abstract contract the fraig driver consumes. It is
// intentionally narrow: the driver only ever initializes a solver once
// per outer iteration, adds each gate's clauses exactly once as it is
// first encountered in DFS order, and then runs a sequence of
// assume/solve queries against fresh miter variables (spec §4.G, §4.H).
type Solver interface {
	// Initialize resets the solver to an empty state.
	Initialize()

	// NewVar allocates a fresh solver variable.
	NewVar() VarID

	// AddAigCNF encodes y <-> (a^aInv) & (b^bInv).
	AddAigCNF(y, a VarID, aInv bool, b VarID, bInv bool)

	// AddXorCNF encodes y <-> (a^aInv) ^ (b^bInv).
	AddXorCNF(y, a VarID, aInv bool, b VarID, bInv bool)

	// AssertProperty permanently asserts that v's value equals polarity.
	AssertProperty(v VarID, polarity bool)

	// AssumeRelease clears any assumptions left over from a prior query.
	AssumeRelease()

	// AssumeProperty adds a unit assumption for the next Solve call.
	AssumeProperty(v VarID, polarity bool)

	// AssumeSolve solves under the accumulated assumptions. true means SAT.
	AssumeSolve() bool

	// GetValue returns 0, 1, or -1 (indeterminate) for v under the last
	// AssumeSolve's model. A -1 result after a SAT outcome for a
	// primary-input variable is a solver contract violation (spec §7
	// SolverIndeterminate) and the caller asserts it fatal in debug
	// builds.
	GetValue(v VarID) int
}
