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

// Package energymix models the electricity-mix cost-minimization problem:
// pick an integer production level per source, within installed capacity, so
// that total production covers demand at minimum cost.
package energymix

import (
	"fmt"
	"sort"
	"strings"

	"github.com/darkmatter2000/Energy-Mix-Problem/mineigen"
	"github.com/darkmatter2000/Energy-Mix-Problem/qubomodel"
)

// BuildModel constructs the cost model: one integer variable per named source
// bounded by `[0, bounds[name]]`, a quadratic objective to minimize, and the
// single demand constraint `sum(v) >= minTotal`.
//
// Cost terms referencing an undeclared source fail with ErrUnknownVariable;
// negative capacities or duplicate names fail with ErrInvalidBound.
func BuildModel(bounds map[string]int64, linearCosts map[string]float64, quadraticCosts map[[2]string]float64, minTotal float64) (*qubomodel.QuadraticModel, error) {
	names := make([]string, 0, len(bounds))
	for name := range bounds {
		names = append(names, name)
	}
	sort.Strings(names)

	qb := qubomodel.NewBuilder()
	vars := make(map[string]qubomodel.IntVar, len(names))
	for _, name := range names {
		vars[name] = qb.NewIntVar(name, 0, bounds[name])
	}

	obj := qubomodel.NewQuadExpr()
	linNames := make([]string, 0, len(linearCosts))
	for name := range linearCosts {
		linNames = append(linNames, name)
	}
	sort.Strings(linNames)
	for _, name := range linNames {
		v, ok := vars[name]
		if !ok {
			return nil, fmt.Errorf("linear cost on %q: %w", name, qubomodel.ErrUnknownVariable)
		}
		obj.AddTerm(v, linearCosts[name])
	}
	pairs := make([][2]string, 0, len(quadraticCosts))
	for pair := range quadraticCosts {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	for _, pair := range pairs {
		a, okA := vars[pair[0]]
		b, okB := vars[pair[1]]
		if !okA {
			return nil, fmt.Errorf("quadratic cost on %q: %w", pair[0], qubomodel.ErrUnknownVariable)
		}
		if !okB {
			return nil, fmt.Errorf("quadratic cost on %q: %w", pair[1], qubomodel.ErrUnknownVariable)
		}
		obj.AddQuadTerm(a, b, quadraticCosts[pair])
	}
	qb.Minimize(obj)

	demand := qubomodel.NewLinearExpr()
	for _, name := range names {
		demand.Add(vars[name])
	}
	qb.AddGreaterOrEqual(demand, minTotal)

	return qb.Build()
}

// Report renders a solve result as a human-readable allocation report: each
// source's share of total demand as a percentage, the objective value, and the
// number of objective evaluations the strategy spent.
func Report(result *mineigen.Result, totalDemand float64) string {
	names := make([]string, 0, len(result.Assignment))
	for name := range result.Assignment {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		share := float64(result.Assignment[name]) / totalDemand * 100
		fmt.Fprintf(&b, "%s: %v%% of demand\n", name, share)
	}
	fmt.Fprintf(&b, "minimum cost: %v\n", result.Objective)
	fmt.Fprintf(&b, "evaluations: %d\n", result.Evaluations)
	fmt.Fprintf(&b, "status: %v\n", result.Status)
	return b.String()
}

// PairCost is one quadratic cost term between two sources, in a form that maps
// cleanly onto configuration files.
type PairCost struct {
	A    string  `mapstructure:"a"`
	B    string  `mapstructure:"b"`
	Cost float64 `mapstructure:"cost"`
}

// Scenario is a complete, loadable description of an energy-mix problem.
type Scenario struct {
	Capacities map[string]int64   `mapstructure:"capacities"`
	UnitCosts  map[string]float64 `mapstructure:"unit_costs"`
	PairCosts  []PairCost         `mapstructure:"pair_costs"`
	MinDemand  float64            `mapstructure:"min_demand"`
}

// Model builds the quadratic model of the scenario.
func (s Scenario) Model() (*qubomodel.QuadraticModel, error) {
	quad := make(map[[2]string]float64, len(s.PairCosts))
	for _, pc := range s.PairCosts {
		quad[[2]string{pc.A, pc.B}] += pc.Cost
	}
	return BuildModel(s.Capacities, s.UnitCosts, quad, s.MinDemand)
}

// DefaultScenario returns the three-source demonstration problem: solar, hydro
// and wind with capacities 3, 4 and 2, unit costs 2, 3 and 1, a coupling cost
// of 1/3 between every pair, and a demand of 7.
func DefaultScenario() Scenario {
	return Scenario{
		Capacities: map[string]int64{"solar": 3, "hydro": 4, "wind": 2},
		UnitCosts:  map[string]float64{"solar": 2, "hydro": 3, "wind": 1},
		PairCosts: []PairCost{
			{A: "solar", B: "hydro", Cost: 1.0 / 3.0},
			{A: "solar", B: "wind", Cost: 1.0 / 3.0},
			{A: "hydro", B: "wind", Cost: 1.0 / 3.0},
		},
		MinDemand: 7,
	}
}
