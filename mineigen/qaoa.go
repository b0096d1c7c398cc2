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

	"github.com/darkmatter2000/Energy-Mix-Problem/qubomodel"
)

// QAOA is the alternating-operator strategy: starting from the uniform
// superposition, it interleaves diagonal cost-phase layers with transverse RX
// mixer layers, samples the resulting state, and lets a classical optimizer
// search the layer angles for the lowest sample-mean energy.
//
// Given a fixed Seed the strategy is deterministic.
type QAOA struct {
	// Reps is the number of (cost, mixer) layer pairs. Zero means 1.
	Reps int
	// Shots is the number of measurements per objective evaluation. Zero means
	// DefaultShots.
	Shots int
	// Seed drives all stochastic sampling and the initial angles.
	Seed uint64
	// Optimizer is the classical outer-loop minimizer. Nil means the library
	// default.
	Optimizer Optimizer
}

// FindGroundState searches for the lowest-energy bit assignment of the QUBO.
func (s *QAOA) FindGroundState(q *qubomodel.QUBOModel) (*GroundState, error) {
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
		sv := NewUniformState(n)
		for layer := 0; layer < reps; layer++ {
			gamma, beta := params[2*layer], params[2*layer+1]
			sv.PhaseByEnergy(gamma, energies)
			for qubit := 0; qubit < n; qubit++ {
				sv.RX(qubit, 2*beta)
			}
		}
		return smp.estimate(sv)
	}

	// Small initial angles keep the first evaluations close to the uniform
	// superposition, so early sampling covers the whole state space.
	x0 := make([]float64, 2*reps)
	for i := range x0 {
		x0[i] = 0.01 + 0.1*rng.Float64()
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
