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

// Package aag implements the textual AAG (ASCII And-Inverter-Graph)
// reader and writer (spec §6.1, §6.2) — the parser/writer the rest of
// the core treats as an external collaborator, but which must exist for
// the module to be runnable end-to-end (SPEC_FULL.md §6).
//
// Token order and error phrasing are grounded in
// original_source/src/cir/cirParse.cpp and cirMgr.cpp's parseError: a
// header line, I PI literals, L latch pairs (parsed and counted but
// otherwise unsupported — spec §1 non-goal), O PO literals, A AND
// triples, and an optional symbol table terminated by an optional
// comment section.
package aag

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ladsiii/fraig/aig"
)

// ParseError reports a structural violation of the AAG format, carrying
// the 1-based source line for diagnostics — the same shape as
// plan/pir.CompileError in the teacher repo (a value type pairing a
// message with its origin), used here instead of a bare fmt.Errorf so
// callers can report line numbers uniformly.
type ParseError struct {
	Line    int
	Message string
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type reader struct {
	sc   *bufio.Scanner
	line int
}

func (r *reader) nextLine() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return r.sc.Text(), true
}

func (r *reader) fail(format string, args ...interface{}) error {
	return &ParseError{Line: r.line, Message: fmt.Sprintf(format, args...)}
}

// Read parses an AAG-format netlist from src and builds its gate graph.
// On success the manager's DFS, floating, unused, and undef lists are
// already built and its AIG count already computed, mirroring
// CirMgr::readCircuit's post-parse bookkeeping.
func Read(src io.Reader) (*aig.Manager, error) {
	r := &reader{sc: bufio.NewScanner(src)}
	r.sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	maxIdx, nPI, nLatch, nPO, nAIG, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	m := aig.NewManager(maxIdx, nPO)
	m.NLatch = nLatch

	if err := parsePIs(r, m, nPI); err != nil {
		return nil, err
	}
	if err := skipLatches(r, nLatch); err != nil {
		return nil, err
	}
	if err := parsePOs(r, m, nPO, maxIdx); err != nil {
		return nil, err
	}
	if err := parseAigs(r, m, nAIG); err != nil {
		return nil, err
	}
	parseSymbolsAndComment(r, m, nPI, nPO)

	m.RebuildDfs()
	m.RebuildAuxLists()
	m.CountAig()
	return m, nil
}

func parseHeader(r *reader) (maxIdx, nPI, nLatch, nPO, nAIG uint32, err error) {
	line, ok := r.nextLine()
	if !ok {
		return 0, 0, 0, 0, 0, r.fail("missing \"aag\" header")
	}
	fields := strings.Fields(line)
	if len(fields) != 6 || fields[0] != "aag" {
		return 0, 0, 0, 0, 0, r.fail("malformed header %q", line)
	}
	vals := make([]uint32, 5)
	for i, f := range fields[1:] {
		n, perr := strconv.ParseUint(f, 10, 32)
		if perr != nil {
			return 0, 0, 0, 0, 0, r.fail("illegal header field %q", f)
		}
		vals[i] = uint32(n)
	}
	return vals[0], vals[1], vals[2], vals[3], vals[4], nil
}

func parsePIs(r *reader, m *aig.Manager, nPI uint32) error {
	for i := uint32(0); i < nPI; i++ {
		line, ok := r.nextLine()
		if !ok {
			return r.fail("missing PI literal %d", i)
		}
		lit, err := strconv.ParseUint(strings.TrimSpace(line), 10, 32)
		if err != nil {
			return r.fail("illegal PI literal %q", line)
		}
		if lit&1 != 0 {
			return r.fail("PI literal %d cannot be inverted", lit)
		}
		m.NewPI(uint32(lit)>>1, uint32(r.line))
	}
	return nil
}

// skipLatches consumes nLatch "lit next" pairs without modeling them:
// sequential logic is out of scope (spec §1), but the latch count still
// occupies its declared position in the file, between the PI and PO
// sections, so the remaining offsets must be skipped correctly.
func skipLatches(r *reader, nLatch uint32) error {
	for i := uint32(0); i < nLatch; i++ {
		line, ok := r.nextLine()
		if !ok {
			return r.fail("missing latch definition %d", i)
		}
		if len(strings.Fields(line)) < 1 {
			return r.fail("malformed latch line %q", line)
		}
	}
	return nil
}

func parsePOs(r *reader, m *aig.Manager, nPO, maxIdx uint32) error {
	for i := uint32(0); i < nPO; i++ {
		line, ok := r.nextLine()
		if !ok {
			return r.fail("missing PO literal %d", i)
		}
		lit, err := strconv.ParseUint(strings.TrimSpace(line), 10, 32)
		if err != nil {
			return r.fail("illegal PO literal %q", line)
		}
		po := m.NewPO(maxIdx+1+i, uint32(r.line))
		fanin := m.QueryGate(uint32(lit) >> 1)
		po.SetFanin0(fanin, lit&1 != 0)
	}
	return nil
}

func parseAigs(r *reader, m *aig.Manager, nAIG uint32) error {
	for i := uint32(0); i < nAIG; i++ {
		line, ok := r.nextLine()
		if !ok {
			return r.fail("missing AND gate %d", i)
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return r.fail("malformed AND line %q", line)
		}
		lits := make([]uint64, 3)
		for j, f := range fields {
			n, perr := strconv.ParseUint(f, 10, 32)
			if perr != nil {
				return r.fail("illegal literal %q", f)
			}
			lits[j] = n
		}
		gLit, f0Lit, f1Lit := lits[0], lits[1], lits[2]
		if gLit&1 != 0 {
			return r.fail("AND gate literal %d cannot be inverted", gLit)
		}
		gVar := uint32(gLit) >> 1
		g := m.QueryGate(gVar)
		if g.IsUndef() {
			// Promote the undef placeholder created by an earlier
			// forward reference in place: other gates may already hold
			// fanin edges pointing at this exact *Gate value, and those
			// edges must keep resolving to the same object once it
			// becomes a real AND gate.
			g.Kind = aig.KindAIG
			g.LineNo = uint32(r.line)
		}
		f0 := m.QueryGate(uint32(f0Lit) >> 1)
		f1 := m.QueryGate(uint32(f1Lit) >> 1)
		g.SetFanin0(f0, f0Lit&1 != 0)
		g.SetFanin1(f1, f1Lit&1 != 0)
	}
	return nil
}

func parseSymbolsAndComment(r *reader, m *aig.Manager, nPI, nPO uint32) {
	for {
		line, ok := r.nextLine()
		if !ok {
			return
		}
		if line == "c" {
			return // remainder of the file is free-form comment text
		}
		if len(line) == 0 {
			continue
		}
		kind := line[0]
		if kind != 'i' && kind != 'o' {
			continue
		}
		rest := line[1:]
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			continue
		}
		idx, err := strconv.Atoi(rest[:sp])
		if err != nil {
			continue
		}
		name := rest[sp+1:]
		switch kind {
		case 'i':
			if idx >= 0 && uint32(idx) < nPI {
				m.PI(idx).Symbol = name
			}
		case 'o':
			if idx >= 0 && uint32(idx) < nPO {
				m.PO(idx).Symbol = name
			}
		}
	}
}
