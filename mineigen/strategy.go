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

// Package mineigen finds minimum-energy configurations of QUBO models through
// interchangeable strategies: sampled alternating-operator search (QAOA), a
// variational ansatz with a classical outer optimizer (VQE), and a
// deterministic exact scan of the diagonal spectrum.
//
// The Solve adapter wraps any strategy behind one contract: it decodes the
// winning bit assignment back into the original integer variables and scores
// it against the original, unpenalized objective.
package mineigen

import (
	"errors"
	"fmt"

	"github.com/darkmatter2000/Energy-Mix-Problem/qubomodel"
)

// ErrInfeasibleResult holds the error when a strategy converges to a bit
// assignment whose decoded integers violate the original constraints. It
// signals that the penalty was too weak, and must be surfaced rather than
// reported as an optimum.
var ErrInfeasibleResult = errors.New("decoded assignment violates the original constraints")

// GroundState is a strategy's raw output: the lowest-energy bit assignment it
// found, its penalized QUBO energy, and the number of classical objective
// evaluations spent finding it.
type GroundState struct {
	Bits        []uint8
	Energy      float64
	Evaluations int
}

// Strategy is a minimum-eigenvalue finder: any search that returns the
// lowest-energy configuration of an objective expressed as a diagonal operator
// over binary states.
type Strategy interface {
	FindGroundState(q *qubomodel.QUBOModel) (*GroundState, error)
}

// Status reports whether a solve produced a constraint-satisfying optimum.
type Status int

const (
	// StatusOptimal means the decoded assignment satisfies the original
	// constraints.
	StatusOptimal Status = iota
	// StatusInfeasible means the decoded assignment violates at least one
	// original constraint.
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	}
	return "UNKNOWN"
}

// Result is the outcome of solving a QUBO model with a strategy. Objective is
// the value of the original, unpenalized objective at the decoded assignment;
// the penalized QUBO energy is never surfaced as the minimum cost.
type Result struct {
	Bits        []uint8
	Assignment  map[string]int64
	Objective   float64
	Evaluations int
	Status      Status
}

// Solve runs the strategy on the QUBO model, decodes the winning bit
// assignment through the inverse binary expansion, and evaluates the original
// objective on the decoded integers.
//
// If the decoded assignment violates an original constraint, the result is
// returned flagged StatusInfeasible together with ErrInfeasibleResult.
func Solve(q *qubomodel.QUBOModel, strategy Strategy) (*Result, error) {
	gs, err := strategy.FindGroundState(q)
	if err != nil {
		return nil, err
	}
	assignment := q.Decode(gs.Bits)
	objective, err := q.Source().Evaluate(assignment)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Bits:        gs.Bits,
		Assignment:  assignment,
		Objective:   objective,
		Evaluations: gs.Evaluations,
		Status:      StatusOptimal,
	}
	feasible, err := q.Source().Feasible(assignment)
	if err != nil {
		return nil, err
	}
	if !feasible {
		result.Status = StatusInfeasible
		return result, fmt.Errorf("solve: %w", ErrInfeasibleResult)
	}
	return result, nil
}

// bitsOf unpacks basis state z into n binary digits, bit 0 least significant.
func bitsOf(z, n int) []uint8 {
	bits := make([]uint8, n)
	for i := range bits {
		bits[i] = uint8(z >> i & 1)
	}
	return bits
}
