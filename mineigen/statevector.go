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
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Statevector is a dense simulated quantum state over n qubits: 2^n complex
// amplitudes indexed by the computational basis state read as an integer with
// qubit 0 least significant.
type Statevector struct {
	n    int
	amps []complex128
}

// NewZeroState returns the state |0...0>.
func NewZeroState(n int) *Statevector {
	sv := &Statevector{n: n, amps: make([]complex128, 1<<n)}
	sv.amps[0] = 1
	return sv
}

// NewUniformState returns the uniform superposition |+>^n.
func NewUniformState(n int) *Statevector {
	sv := &Statevector{n: n, amps: make([]complex128, 1<<n)}
	a := complex(1/math.Sqrt(float64(len(sv.amps))), 0)
	for i := range sv.amps {
		sv.amps[i] = a
	}
	return sv
}

// NumQubits returns the number of qubits in the state.
func (sv *Statevector) NumQubits() int {
	return sv.n
}

// apply1Q applies a 2x2 unitary, given by its action on the (|0>,|1>) pair of
// amplitudes, to the given qubit.
func (sv *Statevector) apply1Q(qubit int, f func(a0, a1 complex128) (complex128, complex128)) {
	step := 1 << qubit
	for base := 0; base < len(sv.amps); base += 2 * step {
		for off := 0; off < step; off++ {
			i0 := base + off
			i1 := i0 + step
			sv.amps[i0], sv.amps[i1] = f(sv.amps[i0], sv.amps[i1])
		}
	}
}

// RY applies a rotation of `theta` around the Y axis to the given qubit.
func (sv *Statevector) RY(qubit int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	sv.apply1Q(qubit, func(a0, a1 complex128) (complex128, complex128) {
		return c*a0 - s*a1, s*a0 + c*a1
	})
}

// RX applies a rotation of `theta` around the X axis to the given qubit.
func (sv *Statevector) RX(qubit int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	is := complex(0, math.Sin(theta/2))
	sv.apply1Q(qubit, func(a0, a1 complex128) (complex128, complex128) {
		return c*a0 - is*a1, -is*a0 + c*a1
	})
}

// CZ applies a controlled-Z between the two qubits: basis states with both
// bits set pick up a sign flip.
func (sv *Statevector) CZ(a, b int) {
	ma, mb := 1<<a, 1<<b
	for z := range sv.amps {
		if z&ma != 0 && z&mb != 0 {
			sv.amps[z] = -sv.amps[z]
		}
	}
}

// PhaseByEnergy applies the diagonal cost evolution exp(-i*gamma*E(z)) to
// every basis state. `energies` must have one entry per basis state.
func (sv *Statevector) PhaseByEnergy(gamma float64, energies []float64) {
	for z := range sv.amps {
		sv.amps[z] *= cmplx.Exp(complex(0, -gamma*energies[z]))
	}
}

// Probabilities returns the measurement probability of every basis state.
func (sv *Statevector) Probabilities() []float64 {
	probs := make([]float64, len(sv.amps))
	for z, a := range sv.amps {
		re, im := real(a), imag(a)
		probs[z] = re*re + im*im
	}
	return probs
}

// Expectation returns the exact expectation value of the diagonal operator
// given by `energies` in this state.
func (sv *Statevector) Expectation(energies []float64) float64 {
	return floats.Dot(sv.Probabilities(), energies)
}
