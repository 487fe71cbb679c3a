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

import "math/rand"

// RandomModel fills a fresh PatternModel with WordBits uniformly random
// patterns per PI, for CIRSIMulate -random (spec §6.3). rng may be a
// seeded *rand.Rand for reproducibility in tests, or nil to use the
// package-level default source.
func RandomModel(nPI int, rng *rand.Rand) *PatternModel {
	model := NewPatternModel(nPI)
	for i := 0; i < nPI; i++ {
		var word uint64
		if rng != nil {
			word = rng.Uint64()
		} else {
			word = rand.Uint64()
		}
		model.rows[i] = word
	}
	return model
}
