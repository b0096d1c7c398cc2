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
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultShots is the number of measurements taken per objective evaluation
// when the caller does not specify one.
const DefaultShots = 1024

// sampler draws repeated stochastic measurements from a statevector and keeps
// the lowest-energy bitstring observed across the whole run. The running best
// is what the heuristic strategies return: the outer optimizer steers the
// distribution, but any ground state ever measured is never lost.
type sampler struct {
	energies   []float64
	shots      int
	src        rand.Source
	bestState  int
	bestEnergy float64
	observed   bool
}

func newSampler(energies []float64, shots int, src rand.Source) *sampler {
	if shots <= 0 {
		shots = DefaultShots
	}
	return &sampler{energies: energies, shots: shots, src: src}
}

// estimate measures the state `shots` times and returns the sample mean of the
// energy, recording the best bitstring seen.
func (s *sampler) estimate(sv *Statevector) float64 {
	cat := distuv.NewCategorical(sv.Probabilities(), s.src)
	sum := 0.0
	for i := 0; i < s.shots; i++ {
		z := int(cat.Rand())
		e := s.energies[z]
		sum += e
		if !s.observed || e < s.bestEnergy {
			s.observed = true
			s.bestState = z
			s.bestEnergy = e
		}
	}
	return sum / float64(s.shots)
}

// best returns the lowest-energy measurement of the run as a GroundState,
// leaving the evaluation count for the caller to fill in.
func (s *sampler) best(numBits int) *GroundState {
	return &GroundState{
		Bits:   bitsOf(s.bestState, numBits),
		Energy: s.bestEnergy,
	}
}
