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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func totalProbability(sv *Statevector) float64 {
	return floats.Sum(sv.Probabilities())
}

func TestNewZeroState(t *testing.T) {
	sv := NewZeroState(3)
	require.Equal(t, 3, sv.NumQubits())
	probs := sv.Probabilities()
	require.Len(t, probs, 8)
	assert.Equal(t, 1.0, probs[0])
	assert.InDelta(t, 1.0, totalProbability(sv), 1e-12)
}

func TestNewUniformState(t *testing.T) {
	sv := NewUniformState(3)
	for z, p := range sv.Probabilities() {
		assert.InDelta(t, 1.0/8.0, p, 1e-12, "basis state %d", z)
	}
	assert.InDelta(t, 1.0, totalProbability(sv), 1e-12)
}

func TestRYRotatesZeroToOne(t *testing.T) {
	sv := NewZeroState(1)
	sv.RY(0, math.Pi)
	probs := sv.Probabilities()
	assert.InDelta(t, 0.0, probs[0], 1e-12)
	assert.InDelta(t, 1.0, probs[1], 1e-12)
}

func TestRYHalfAngle(t *testing.T) {
	theta := 0.7
	sv := NewZeroState(1)
	sv.RY(0, theta)
	probs := sv.Probabilities()
	s := math.Sin(theta / 2)
	assert.InDelta(t, s*s, probs[1], 1e-12)
}

func TestRXRotatesZeroToOne(t *testing.T) {
	sv := NewZeroState(1)
	sv.RX(0, math.Pi)
	probs := sv.Probabilities()
	assert.InDelta(t, 0.0, probs[0], 1e-12)
	assert.InDelta(t, 1.0, probs[1], 1e-12)
}

func TestRotationsTargetTheRightQubit(t *testing.T) {
	// Flipping qubit 1 of |000> must land on |010>, i.e. basis state 2.
	sv := NewZeroState(3)
	sv.RX(1, math.Pi)
	probs := sv.Probabilities()
	assert.InDelta(t, 1.0, probs[2], 1e-12)
}

func TestGatesPreserveNorm(t *testing.T) {
	sv := NewUniformState(4)
	sv.RY(0, 0.3)
	sv.RX(2, 1.1)
	sv.CZ(1, 3)
	sv.PhaseByEnergy(0.8, make([]float64, 16))
	assert.InDelta(t, 1.0, totalProbability(sv), 1e-12)
}

func TestCZFlipsOnlyBothSet(t *testing.T) {
	sv := NewUniformState(2)
	before := append([]complex128(nil), sv.amps...)
	sv.CZ(0, 1)
	assert.Equal(t, before[0], sv.amps[0])
	assert.Equal(t, before[1], sv.amps[1])
	assert.Equal(t, before[2], sv.amps[2])
	assert.Equal(t, -before[3], sv.amps[3])
}

func TestPhaseByEnergyKeepsProbabilities(t *testing.T) {
	energies := []float64{4, -1, 0.5, 2}
	sv := NewUniformState(2)
	want := sv.Probabilities()
	sv.PhaseByEnergy(1.3, energies)
	got := sv.Probabilities()
	for z := range want {
		assert.InDelta(t, want[z], got[z], 1e-12, "basis state %d", z)
	}
}

func TestExpectationOfUniformIsMean(t *testing.T) {
	energies := []float64{4, -1, 0.5, 2}
	sv := NewUniformState(2)
	want := floats.Sum(energies) / 4
	assert.InDelta(t, want, sv.Expectation(energies), 1e-12)
}
