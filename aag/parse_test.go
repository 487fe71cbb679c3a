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
	"bytes"
	"strings"
	"testing"
)

// trivialIdentity is spec §8 scenario S1: two PIs (literals 2, 4) and a
// single PO wired straight to the second PI, with no AIG gates at all.
const trivialIdentity = "aag 2 2 0 1 0\n2\n4\n4\n"

func TestReadTrivialIdentity(t *testing.T) {
	m, err := Read(strings.NewReader(trivialIdentity))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.NPI() != 2 {
		t.Fatalf("expected 2 PIs, got %d", m.NPI())
	}
	if m.NPO() != 1 {
		t.Fatalf("expected 1 PO, got %d", m.NPO())
	}
	po := m.PO(0)
	if po.Fanin0.Target != m.PI(1) || po.Fanin0.Inv {
		t.Fatalf("PO must be driven directly and non-inverted by the second PI")
	}
}

func TestReadConstantCollapseAig(t *testing.T) {
	// spec §8 scenario S2: `6 2 3` i.e. gate 3 = x AND !x; the PO literal
	// 6 is gate 3 itself.
	src := "aag 3 1 0 1 1\n2\n6\n6 2 3\n"
	m, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	g3 := m.Gate(3)
	if g3 == nil || !g3.IsAig() {
		t.Fatalf("expected gate 3 to be an AIG")
	}
	if g3.Fanin0.Target != m.PI(0) || g3.Fanin0.Inv {
		t.Fatalf("gate 3's fanin0 should be PI x, non-inverted")
	}
	if g3.Fanin1.Target != m.PI(0) || !g3.Fanin1.Inv {
		t.Fatalf("gate 3's fanin1 should be PI x, inverted")
	}
}

func TestReadParsesLatchCount(t *testing.T) {
	// L=1 is parsed (a count), but this core is purely combinational; the
	// latch line itself must still be consumed to keep offsets correct.
	src := "aag 3 1 1 1 0\n2\n4 5\n4\n"
	m, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.NLatch != 1 {
		t.Fatalf("expected NLatch=1 to be recorded, got %d", m.NLatch)
	}
}

func TestReadMalformedHeaderFails(t *testing.T) {
	_, err := Read(strings.NewReader("not an aag file\n"))
	if err == nil {
		t.Fatal("expected a ParseError for a malformed header")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestReadTruncatedFileFails(t *testing.T) {
	_, err := Read(strings.NewReader("aag 2 2 0 1 0\n2\n"))
	if err == nil {
		t.Fatal("expected an error for a file missing its PO literal")
	}
}

func TestReadParsesSymbols(t *testing.T) {
	src := "aag 2 2 0 1 0\n2\n4\n4\ni0 x\no0 y\n"
	m, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.PI(0).Symbol != "x" {
		t.Errorf("expected PI 0 symbol %q, got %q", "x", m.PI(0).Symbol)
	}
	if m.PO(0).Symbol != "y" {
		t.Errorf("expected PO 0 symbol %q, got %q", "y", m.PO(0).Symbol)
	}
}

func TestReadStopsAtCommentSection(t *testing.T) {
	src := "aag 2 2 0 1 0\n2\n4\n4\nc\nthis is not a symbol line o0 garbage\n"
	m, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.PO(0).Symbol != "" {
		t.Fatalf("text after the 'c' comment marker must not be parsed as symbols")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	m, err := Read(strings.NewReader(trivialIdentity))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	m2, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-Read of written output: %v", err)
	}
	if m2.NPI() != m.NPI() || m2.NPO() != m.NPO() {
		t.Fatalf("round-trip changed PI/PO counts: (%d,%d) -> (%d,%d)", m.NPI(), m.NPO(), m2.NPI(), m2.NPO())
	}
	if m2.PO(0).Fanin0.Target != m2.PI(1) {
		t.Fatalf("round-trip lost the PO's fanin wiring")
	}
}
