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

// Domain stores the closed integer interval `[Lower,Upper]`. If `Lower` is greater
// than `Upper`, the domain is considered empty.
type Domain struct {
	Lower int64
	Upper int64
}

// NewDomain creates a new domain of a single interval `[lower,upper]`.
func NewDomain(lower, upper int64) Domain {
	return Domain{Lower: lower, Upper: upper}
}

// NewSingleDomain creates a new singleton domain `[val,val]`.
func NewSingleDomain(val int64) Domain {
	return Domain{Lower: val, Upper: val}
}

// IsEmpty reports whether the domain contains no values.
func (d Domain) IsEmpty() bool {
	return d.Lower > d.Upper
}

// Size returns the number of values in the domain. An empty domain has size zero.
func (d Domain) Size() int64 {
	if d.IsEmpty() {
		return 0
	}
	return d.Upper - d.Lower + 1
}

// Contains reports whether `val` is inside the domain.
func (d Domain) Contains(val int64) bool {
	return val >= d.Lower && val <= d.Upper
}
