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

package qubomodel

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidPenalty holds the error when a QUBO reformulation is requested
// with a zero or negative penalty. Such a penalty would let constraint-violating
// assignments dominate feasible ones.
var ErrInvalidPenalty = errors.New("penalty must be positive")

// BitVar describes one binary variable of a QUBOModel: the integer variable it
// expands (or the slack variable of a constraint) and its weight in the
// expansion.
type BitVar struct {
	Owner  string
	Weight int64
}

// bitPair is an unordered pair of bit indices, normalized to a < b.
type bitPair struct {
	a, b int
}

func newBitPair(a, b int) bitPair {
	if a > b {
		a, b = b, a
	}
	return bitPair{a: a, b: b}
}

// QUBOModel is a quadratic objective over purely binary variables with no
// remaining explicit constraints; all constraint information has been absorbed
// into the objective through penalty terms. It retains the source model and
// the per-variable binary expansions so that solutions can be decoded and
// scored against the original objective.
type QUBOModel struct {
	source    *QuadraticModel
	encodings []BinaryExpansion // one per source variable, slack expansions appended
	numVarEnc int               // encodings[:numVarEnc] belong to source variables
	bits      []BitVar
	linear    []float64
	quad      map[bitPair]float64
	offset    float64
}

// NumBits returns the total number of binary variables, over all original
// variables and slack variables.
func (q *QUBOModel) NumBits() int {
	return len(q.bits)
}

// Bits returns a copy of the binary variable descriptors.
func (q *QUBOModel) Bits() []BitVar {
	return append([]BitVar(nil), q.bits...)
}

// Source returns the quadratic model this QUBO was derived from.
func (q *QUBOModel) Source() *QuadraticModel {
	return q.source
}

// Linear returns a copy of the linear coefficient per binary variable.
func (q *QUBOModel) Linear() []float64 {
	return append([]float64(nil), q.linear...)
}

// Quadratic returns a copy of the coefficient per unordered bit pair.
func (q *QUBOModel) Quadratic() map[[2]int]float64 {
	out := make(map[[2]int]float64, len(q.quad))
	for k, c := range q.quad {
		out[[2]int{k.a, k.b}] = c
	}
	return out
}

// Offset returns the constant term of the penalized objective.
func (q *QUBOModel) Offset() float64 {
	return q.offset
}

// sortedQuadKeys returns the bit-pair keys in index order, for deterministic
// evaluation.
func (q *QUBOModel) sortedQuadKeys() []bitPair {
	keys := make([]bitPair, 0, len(q.quad))
	for k := range q.quad {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	return keys
}

// Energy computes the penalized QUBO objective of a bit assignment. The slice
// must have exactly NumBits entries; each entry is 0 or 1.
func (q *QUBOModel) Energy(bits []uint8) float64 {
	e := q.offset
	for i, c := range q.linear {
		if bits[i] != 0 {
			e += c
		}
	}
	for _, k := range q.sortedQuadKeys() {
		if bits[k.a] != 0 && bits[k.b] != 0 {
			e += q.quad[k]
		}
	}
	return e
}

// EnergyTable computes the penalized energy of every one of the 2^n bit
// assignments, indexed by the assignment read as an integer with bit 0 least
// significant. It is only intended for small bit counts.
func (q *QUBOModel) EnergyTable() []float64 {
	n := len(q.bits)
	table := make([]float64, 1<<n)
	keys := q.sortedQuadKeys()
	for z := range table {
		e := q.offset
		for i, c := range q.linear {
			if z>>i&1 != 0 {
				e += c
			}
		}
		for _, k := range keys {
			if z>>k.a&1 != 0 && z>>k.b&1 != 0 {
				e += q.quad[k]
			}
		}
		table[z] = e
	}
	return table
}

// Decode reconstructs the original integer assignment from a bit assignment
// through the inverse binary expansion. Slack variables are internal and not
// included in the result.
func (q *QUBOModel) Decode(bits []uint8) map[string]int64 {
	out := make(map[string]int64, q.numVarEnc)
	pos := 0
	for i, enc := range q.encodings {
		n := enc.NumBits()
		if i < q.numVarEnc {
			out[enc.Var] = enc.Decode(bits[pos : pos+n])
		}
		pos += n
	}
	return out
}

// addLinear accumulates a linear coefficient on a bit.
func (q *QUBOModel) addLinear(bit int, c float64) {
	q.linear[bit] += c
}

// addQuad accumulates a coefficient on a bit pair, folding diagonal terms into
// the linear part since x*x == x on binaries.
func (q *QUBOModel) addQuad(a, b int, c float64) {
	if a == b {
		q.linear[a] += c
		return
	}
	q.quad[newBitPair(a, b)] += c
}

// DefaultPenalty returns a penalty large enough that any assignment violating
// a constraint of the model by at least one unit costs more than the best
// feasible assignment can save: one plus the objective's maximum spread over
// the variable box.
func DefaultPenalty(m *QuadraticModel) float64 {
	p := 1.0
	box := func(ind VarIndex) float64 {
		d := m.vars[ind].Dom
		return math.Max(math.Abs(float64(d.Lower)), math.Abs(float64(d.Upper)))
	}
	for i, c := range m.linear {
		p += math.Abs(c) * box(VarIndex(i))
	}
	for _, k := range m.sortedQuadKeys() {
		p += math.Abs(m.quad[k]) * box(k.a) * box(k.b)
	}
	return p
}

// ToQUBO converts a bounded-integer quadratic model into an unconstrained
// binary quadratic model.
//
// Every integer variable is binary-expanded and substituted into the
// objective, turning linear terms into linear terms over bits and quadratic
// terms into a bilinear cross-product over both variables' bits. Every linear
// inequality gains a non-negative integer slack variable turning it into an
// equality, and the squared equality residual, scaled by `penalty`, is added
// to the objective.
//
// The conversion is a pure function of the model and the penalty: the same
// inputs produce identical coefficient mappings.
func ToQUBO(m *QuadraticModel, penalty float64) (*QUBOModel, error) {
	if penalty <= 0 {
		return nil, fmt.Errorf("penalty %v: %w", penalty, ErrInvalidPenalty)
	}

	q := &QUBOModel{
		source:    m,
		numVarEnc: len(m.vars),
		quad:      make(map[bitPair]float64),
	}

	// Binary-expand every variable; remember where each variable's bits start.
	bitStart := make([]int, len(m.vars))
	for i, v := range m.vars {
		enc := NewBinaryExpansion(v.Name, v.Dom)
		q.encodings = append(q.encodings, enc)
		bitStart[i] = len(q.bits)
		for _, w := range enc.Weights {
			q.bits = append(q.bits, BitVar{Owner: v.Name, Weight: w})
		}
	}

	// Slack expansions come after all variable bits.
	slackStart := make([]int, len(m.constrs))
	for ci, ct := range m.constrs {
		if ct.Sense == SenseEQ {
			slackStart[ci] = -1
			continue
		}
		ub := slackBound(m, ct)
		name := fmt.Sprintf("slack_%d", ci)
		enc := NewBinaryExpansion(name, NewDomain(0, ub))
		q.encodings = append(q.encodings, enc)
		slackStart[ci] = len(q.bits)
		for _, w := range enc.Weights {
			q.bits = append(q.bits, BitVar{Owner: name, Weight: w})
		}
	}
	q.linear = make([]float64, len(q.bits))

	// Substitute the expansions into the objective.
	q.offset = m.offset
	for i, c := range m.linear {
		if c == 0 {
			continue
		}
		enc := q.encodings[i]
		q.offset += c * float64(enc.Offset)
		for k, w := range enc.Weights {
			q.addLinear(bitStart[i]+k, c*float64(w))
		}
	}
	for _, key := range m.sortedQuadKeys() {
		c := m.quad[key]
		if c == 0 {
			continue
		}
		ea, eb := q.encodings[key.a], q.encodings[key.b]
		q.offset += c * float64(ea.Offset) * float64(eb.Offset)
		for k, w := range ea.Weights {
			q.addLinear(bitStart[key.a]+k, c*float64(w)*float64(eb.Offset))
		}
		for l, u := range eb.Weights {
			q.addLinear(bitStart[key.b]+l, c*float64(u)*float64(ea.Offset))
		}
		for k, w := range ea.Weights {
			for l, u := range eb.Weights {
				q.addQuad(bitStart[key.a]+k, bitStart[key.b]+l, c*float64(w)*float64(u))
			}
		}
	}

	// Fold each constraint into the objective: penalty * (lhs - slack - rhs)^2
	// expanded over the bit weights.
	for ci, ct := range m.constrs {
		var idx []int
		var coef []float64
		target := ct.RHS
		for i, a := range ct.Coeffs {
			if a == 0 {
				continue
			}
			enc := q.encodings[i]
			target -= a * float64(enc.Offset)
			for k, w := range enc.Weights {
				idx = append(idx, bitStart[i]+k)
				coef = append(coef, a*float64(w))
			}
		}
		if slackStart[ci] >= 0 {
			sign := -1.0 // >=: lhs - slack == rhs
			if ct.Sense == SenseLE {
				sign = 1.0 // <=: lhs + slack == rhs
			}
			enc := q.encodings[q.numVarEnc+slackIndex(slackStart, ci)]
			for k, w := range enc.Weights {
				idx = append(idx, slackStart[ci]+k)
				coef = append(coef, sign*float64(w))
			}
		}
		addSquaredResidual(q, idx, coef, target, penalty)
	}

	return q, nil
}

// slackIndex maps a constraint index to its position among the slack
// expansions, skipping equality constraints which have none.
func slackIndex(slackStart []int, ci int) int {
	n := 0
	for i := 0; i < ci; i++ {
		if slackStart[i] >= 0 {
			n++
		}
	}
	return n
}

// slackBound returns the upper bound of the slack variable for an inequality:
// the largest possible residual between the constraint's left-hand side and
// its right-hand side over the variable box.
func slackBound(m *QuadraticModel, ct Constraint) int64 {
	lo, hi := 0.0, 0.0
	for i, a := range ct.Coeffs {
		d := m.vars[i].Dom
		x, y := a*float64(d.Lower), a*float64(d.Upper)
		lo += math.Min(x, y)
		hi += math.Max(x, y)
	}
	var bound float64
	if ct.Sense == SenseGE {
		bound = hi - ct.RHS
	} else {
		bound = ct.RHS - lo
	}
	if bound < 0 {
		return 0
	}
	return int64(math.Floor(bound))
}

// addSquaredResidual adds penalty*(sum(coef[j]*x[idx[j]]) - target)^2 to the
// objective, using x^2 == x to fold diagonal terms into the linear part.
func addSquaredResidual(q *QUBOModel, idx []int, coef []float64, target, penalty float64) {
	q.offset += penalty * target * target
	for j, g := range coef {
		q.addLinear(idx[j], penalty*(g*g-2*target*g))
	}
	for j := 0; j < len(idx); j++ {
		for k := j + 1; k < len(idx); k++ {
			q.addQuad(idx[j], idx[k], 2*penalty*coef[j]*coef[k])
		}
	}
}
