// Copyright 2025 The Energy-Mix-Problem Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mineigen

import (
	"github.com/darkmatter2000/Energy-Mix-Problem/qubomodel"
)

// Exact is the deterministic strategy: the QUBO objective is a diagonal
// operator over binary states, so its full spectrum is the energy of every
// basis state. Exact scans all 2^n of them and returns the argmin, breaking
// ties toward the lowest basis-state index. It is only feasible for small bit
// counts.
type Exact struct{}

// FindGroundState scans the diagonal spectrum for the minimum energy.
func (Exact) FindGroundState(q *qubomodel.QUBOModel) (*GroundState, error) {
	energies := q.EnergyTable()
	best := 0
	for z, e := range energies {
		if e < energies[best] {
			best = z
		}
	}
	return &GroundState{
		Bits:        bitsOf(best, q.NumBits()),
		Energy:      energies[best],
		Evaluations: len(energies),
	}, nil
}
