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
	"math"
	"math/rand/v2"

	"github.com/darkmatter2000/Energy-Mix-Problem/qubomodel"
)

// VQE is the variational strategy: a hardware-efficient ansatz of RY rotation
// layers separated by CZ entangling chains, with a classical optimizer
// minimizing the sampled expectation of the QUBO energy over the rotation
// angles.
//
// Given a fixed Seed the strategy is deterministic.
type VQE struct {
	// Reps is the number of entangling layers; the ansatz has Reps+1 RY layers.
	// Zero means 1.
	Reps int
	// Shots is the number of measurements per expectation estimate. Zero means
	// DefaultShots.
	Shots int
	// Seed drives all stochastic sampling and the initial angles.
	Seed uint64
	// Optimizer is the classical outer-loop minimizer. Nil means the library
	// default.
	Optimizer Optimizer
}

// FindGroundState searches for the lowest-energy bit assignment of the QUBO.
func (s *VQE) FindGroundState(q *qubomodel.QUBOModel) (*GroundState, error) {
	n := q.NumBits()
	reps := s.Reps
	if reps <= 0 {
		reps = 1
	}
	energies := q.EnergyTable()
	if n == 0 {
		return &GroundState{Bits: []uint8{}, Energy: energies[0]}, nil
	}
	src := rand.NewPCG(s.Seed, s.Seed+1)
	rng := rand.New(src)
	smp := newSampler(energies, s.Shots, src)

	objective := func(params []float64) float64 {
		sv := NewZeroState(n)
		p := 0
		for layer := 0; layer <= reps; layer++ {
			for qubit := 0; qubit < n; qubit++ {
				sv.RY(qubit, params[p])
				p++
			}
			if layer < reps {
				for qubit := 0; qubit+1 < n; qubit++ {
					sv.CZ(qubit, qubit+1)
				}
			}
		}
		return smp.estimate(sv)
	}

	// Angles near pi/2 start every qubit close to an even superposition, so
	// early sampling covers the whole state space.
	x0 := make([]float64, (reps+1)*n)
	for i := range x0 {
		x0[i] = math.Pi/2 + 0.25*rng.NormFloat64()
	}

	opt := s.Optimizer
	if opt == nil {
		opt = defaultOptimizer()
	}
	_, evals, err := opt.Minimize(objective, x0)
	if err != nil {
		return nil, err
	}
	gs := smp.best(n)
	gs.Evaluations = evals
	return gs, nil
}
