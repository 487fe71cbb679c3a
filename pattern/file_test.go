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

package pattern

import (
	"strings"
	"testing"
)

func TestLoadFileAcceptsValidPatterns(t *testing.T) {
	patterns, err := LoadFile(strings.NewReader("010\n111\n000\n"), 3)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := []string{"010", "111", "000"}
	if len(patterns) != len(want) {
		t.Fatalf("expected %d patterns, got %d", len(want), len(patterns))
	}
	for i, p := range patterns {
		if p != want[i] {
			t.Errorf("pattern %d: expected %q, got %q", i, want[i], p)
		}
	}
}

func TestLoadFileRejectsWrongLength(t *testing.T) {
	// spec §8 scenario S6: n_pi=3, pattern line "0110" (length 4).
	_, err := LoadFile(strings.NewReader("0110\n"), 3)
	if err == nil {
		t.Fatal("expected a FormatError for a length mismatch")
	}
	if _, ok := err.(*FormatError); !ok {
		t.Fatalf("expected *FormatError, got %T", err)
	}
}

func TestLoadFileRejectsNonBinaryCharacter(t *testing.T) {
	_, err := LoadFile(strings.NewReader("01x\n"), 3)
	if err == nil {
		t.Fatal("expected a FormatError for a non-0/1 character")
	}
}

func TestLoadFileAbortsWithoutPartialResults(t *testing.T) {
	_, err := LoadFile(strings.NewReader("010\n111\n0110\n"), 3)
	if err == nil {
		t.Fatal("expected the malformed third line to abort the whole load")
	}
}

func TestLoadFileEmptyInputSucceedsWithZeroPatterns(t *testing.T) {
	// spec §9 open question: EOF with zero valid patterns is success, not
	// an error.
	patterns, err := LoadFile(strings.NewReader(""), 3)
	if err != nil {
		t.Fatalf("LoadFile on empty input: %v", err)
	}
	if len(patterns) != 0 {
		t.Fatalf("expected 0 patterns, got %d", len(patterns))
	}
}
