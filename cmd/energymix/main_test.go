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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/darkmatter2000/Energy-Mix-Problem/energymix"
)

func TestLoadScenarioEmptyPathIsDefault(t *testing.T) {
	got, err := loadScenario("")
	if err != nil {
		t.Fatalf("loadScenario(\"\") returned unexpected error: %v", err)
	}
	if diff := cmp.Diff(energymix.DefaultScenario(), got); diff != "" {
		t.Errorf("loadScenario(\"\") returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestLoadScenarioFromYAML(t *testing.T) {
	const doc = `capacities:
  gas: 5
  biomass: 3
unit_costs:
  gas: 1.5
  biomass: 2
pair_costs:
  - a: gas
    b: biomass
    cost: 0.25
min_demand: 4
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := loadScenario(path)
	if err != nil {
		t.Fatalf("loadScenario(%q) returned unexpected error: %v", path, err)
	}
	want := energymix.Scenario{
		Capacities: map[string]int64{"gas": 5, "biomass": 3},
		UnitCosts:  map[string]float64{"gas": 1.5, "biomass": 2},
		PairCosts:  []energymix.PairCost{{A: "gas", B: "biomass", Cost: 0.25}},
		MinDemand:  4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadScenario(%q) returned unexpected diff (-want +got):\n%s", path, diff)
	}
	if _, err := got.Model(); err != nil {
		t.Errorf("Model() on the loaded scenario returned unexpected error: %v", err)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := loadScenario(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("loadScenario() on a missing file returned nil error")
	}
}
