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

// BinaryExpansion encodes a bounded integer variable as a weighted sum of
// binary digits: value = Offset + sum(Weights[k] * bit[k]).
//
// The weights are powers of two except for the last one, which is capped so
// that the maximum representable value equals the domain's upper bound
// exactly. The expansion is lossless over the full domain and no value outside
// the domain is representable.
type BinaryExpansion struct {
	Var     string
	Offset  int64
	Weights []int64
}

// numBitsFor returns the smallest k with 2^k > span.
func numBitsFor(span int64) int {
	k := 0
	for span >= 1<<k {
		k++
	}
	return k
}

// NewBinaryExpansion computes the binary expansion of a variable with the
// given domain. A singleton domain needs no bits; its value is the offset.
func NewBinaryExpansion(name string, dom Domain) BinaryExpansion {
	e := BinaryExpansion{Var: name, Offset: dom.Lower}
	span := dom.Upper - dom.Lower
	if span <= 0 {
		return e
	}
	k := numBitsFor(span)
	e.Weights = make([]int64, k)
	for p := 0; p < k-1; p++ {
		e.Weights[p] = 1 << p
	}
	// The last weight is capped so the expansion tops out at the bound.
	e.Weights[k-1] = span - (1<<(k-1) - 1)
	return e
}

// NumBits returns the number of binary digits in the expansion.
func (e BinaryExpansion) NumBits() int {
	return len(e.Weights)
}

// MaxValue returns the largest representable value, which equals the domain's
// upper bound.
func (e BinaryExpansion) MaxValue() int64 {
	v := e.Offset
	for _, w := range e.Weights {
		v += w
	}
	return v
}

// Decode reconstructs the integer value from its binary digits. The slice must
// have exactly NumBits entries; each entry is 0 or 1.
func (e BinaryExpansion) Decode(bits []uint8) int64 {
	v := e.Offset
	for k, b := range bits {
		if b != 0 {
			v += e.Weights[k]
		}
	}
	return v
}

// Encode produces one valid digit assignment for the value. It is the inverse
// of Decode up to encoding ambiguity: the capped weight can make some values
// representable in more than one way, but Decode(Encode(v)) == v always holds
// for values inside the domain.
func (e BinaryExpansion) Encode(value int64) []uint8 {
	bits := make([]uint8, len(e.Weights))
	rem := value - e.Offset
	// Greedy from the largest weight; weights are nondecreasing except that the
	// capped last weight may be smaller than its predecessor.
	for k := len(e.Weights) - 1; k >= 0; k-- {
		if rem >= e.Weights[k] {
			bits[k] = 1
			rem -= e.Weights[k]
		}
	}
	return bits
}
