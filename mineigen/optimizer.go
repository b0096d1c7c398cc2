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
	"gonum.org/v1/gonum/optimize"
)

// Default classical optimizer limits, used when the caller supplies none.
const (
	DefaultMaxEvaluations = 250
	DefaultTolerance      = 1e-6
)

// Optimizer is a gradient-free numeric minimizer over a fixed-length real
// parameter vector. It returns the best parameters found and the number of
// objective evaluations performed. Implementations must be deterministic for a
// deterministic objective.
type Optimizer interface {
	Minimize(f func([]float64) float64, x0 []float64) (x []float64, evals int, err error)
}

// NelderMead is a derivative-free simplex optimizer, bounded by an evaluation
// cap and an absolute function-convergence tolerance.
type NelderMead struct {
	// MaxEvaluations caps the number of objective evaluations. Zero means
	// DefaultMaxEvaluations.
	MaxEvaluations int
	// Tolerance is the absolute function-convergence tolerance. Zero means
	// DefaultTolerance.
	Tolerance float64
}

// Minimize runs the simplex search from x0.
func (nm *NelderMead) Minimize(f func([]float64) float64, x0 []float64) ([]float64, int, error) {
	maxEvals := nm.MaxEvaluations
	if maxEvals <= 0 {
		maxEvals = DefaultMaxEvaluations
	}
	tol := nm.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	problem := optimize.Problem{Func: f}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol,
			Iterations: 50,
		},
	}
	start := append([]float64(nil), x0...)
	result, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, 0, err
	}
	return result.X, result.Stats.FuncEvaluations, nil
}

func defaultOptimizer() Optimizer {
	return &NelderMead{}
}
