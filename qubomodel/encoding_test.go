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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBinaryExpansion(t *testing.T) {
	testCases := []struct {
		name       string
		dom        Domain
		wantOffset int64
		wantBits   []int64
	}{
		{name: "upper_3", dom: NewDomain(0, 3), wantOffset: 0, wantBits: []int64{1, 2}},
		{name: "upper_4_capped", dom: NewDomain(0, 4), wantOffset: 0, wantBits: []int64{1, 2, 1}},
		{name: "upper_2_capped", dom: NewDomain(0, 2), wantOffset: 0, wantBits: []int64{1, 1}},
		{name: "upper_7", dom: NewDomain(0, 7), wantOffset: 0, wantBits: []int64{1, 2, 4}},
		{name: "boolean", dom: NewDomain(0, 1), wantOffset: 0, wantBits: []int64{1}},
		{name: "singleton", dom: NewSingleDomain(2), wantOffset: 2, wantBits: nil},
		{name: "shifted", dom: NewDomain(1, 6), wantOffset: 1, wantBits: []int64{1, 2, 2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewBinaryExpansion("v", tc.dom)
			if got.Offset != tc.wantOffset {
				t.Errorf("NewBinaryExpansion(%v).Offset = %d, want %d", tc.dom, got.Offset, tc.wantOffset)
			}
			if diff := cmp.Diff(tc.wantBits, got.Weights); diff != "" {
				t.Errorf("NewBinaryExpansion(%v).Weights returned unexpected diff (-want +got):\n%s", tc.dom, diff)
			}
			if got.MaxValue() != tc.dom.Upper {
				t.Errorf("NewBinaryExpansion(%v).MaxValue() = %d, want %d", tc.dom, got.MaxValue(), tc.dom.Upper)
			}
		})
	}
}

func TestBinaryExpansionRoundTrip(t *testing.T) {
	domains := []Domain{
		NewDomain(0, 1),
		NewDomain(0, 2),
		NewDomain(0, 3),
		NewDomain(0, 4),
		NewDomain(0, 10),
		NewDomain(3, 9),
		NewSingleDomain(5),
	}
	for _, dom := range domains {
		e := NewBinaryExpansion("v", dom)
		for val := dom.Lower; val <= dom.Upper; val++ {
			bits := e.Encode(val)
			if len(bits) != e.NumBits() {
				t.Fatalf("Encode(%d) over %v returned %d bits, want %d", val, dom, len(bits), e.NumBits())
			}
			if got := e.Decode(bits); got != val {
				t.Errorf("Decode(Encode(%d)) over %v = %d, want %d", val, dom, got, val)
			}
		}
	}
}

func TestBinaryExpansionNeverLeavesDomain(t *testing.T) {
	domains := []Domain{
		NewDomain(0, 2),
		NewDomain(0, 4),
		NewDomain(0, 5),
		NewDomain(2, 7),
	}
	for _, dom := range domains {
		e := NewBinaryExpansion("v", dom)
		n := e.NumBits()
		for z := 0; z < 1<<n; z++ {
			bits := make([]uint8, n)
			for i := range bits {
				bits[i] = uint8(z >> i & 1)
			}
			if got := e.Decode(bits); !dom.Contains(got) {
				t.Errorf("Decode(%b) over %v = %d, outside the domain", z, dom, got)
			}
		}
	}
}
