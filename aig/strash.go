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

import (
	"github.com/dchest/siphash"

	"github.com/ladsiii/fraig/cirlog"
)

// strashKey is the canonical fanin signature of an AIG gate: the
// unordered pair {lit(fanin0), lit(fanin1)} (spec §4.C). Canonicalizing
// the pair order (smaller literal first) is what makes two structurally
// identical AND gates compare equal regardless of the order their
// fanins were written in the source netlist.
type strashKey struct {
	lo, hi uint64
}

func literalOf(e Edge) uint64 {
	v := uint64(e.Target.Var) << 1
	if e.Inv {
		v |= 1
	}
	return v
}

func keyOf(g *Gate) strashKey {
	a, b := literalOf(g.Fanin0), literalOf(g.Fanin1)
	if a > b {
		a, b = b, a
	}
	return strashKey{lo: a, hi: b}
}

// hashKey folds a strashKey down to a single siphash-keyed bucket id,
// the way the teacher keys symbol buckets in ion/zion/hash.go and
// vm/siphash_generic.go with github.com/dchest/siphash rather than a
// hand-rolled mix function.
func hashKey(k strashKey) uint64 {
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(k.lo >> (8 * i))
		buf[8+i] = byte(k.hi >> (8 * i))
	}
	return siphash.Hash(0, 0, buf[:])
}

// Strash canonicalizes the AIG by merging gates that share a fanin
// signature (spec §4.C). It walks the current DFS list in order —
// fanins are visited before the gate that uses them, so the hash
// table's representative for any key is always the structurally
// earliest survivor — probing a hash map keyed by strashKey and merging
// on every hit.
//
// Strash is idempotent (spec §8 property 4): a second call finds no more
// duplicate keys, since the first call already reduced every class to
// one representative.
func Strash(m *Manager) {
	type bucket struct {
		key  strashKey
		gate *Gate
	}
	table := make(map[uint64][]bucket, len(m.DfsList()))

	for _, g := range m.DfsList() {
		if !g.IsAig() {
			continue
		}
		k := keyOf(g)
		h := hashKey(k)
		chain := table[h]
		merged := false
		for _, b := range chain {
			if b.key == k {
				cirlog.Strashing(m.Log, b.gate.Var, g.Var)
				Merge(m, b.gate, g, false)
				merged = true
				break
			}
		}
		if !merged {
			table[h] = append(chain, bucket{key: k, gate: g})
		}
	}

	m.RebuildDfs()
	m.RebuildFloatingList()
	m.CountAig()
}
