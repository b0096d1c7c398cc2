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

// The energymix command solves an electricity-mix cost-minimization problem
// three ways and prints the resulting allocations: two sampled variational
// heuristics (QAOA and VQE) and an exact scan of the full spectrum.
package main

import (
	"errors"
	goflag "flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darkmatter2000/Energy-Mix-Problem/energymix"
	"github.com/darkmatter2000/Energy-Mix-Problem/mineigen"
	"github.com/darkmatter2000/Energy-Mix-Problem/qubomodel"
)

var (
	scenarioFile string
	penalty      float64
	seed         uint64
	shots        int
	reps         int
	maxEvals     int
)

func main() {
	cmd := &cobra.Command{
		Use:   "energymix",
		Short: "Minimize the cost of an electricity production mix",
		Long: `energymix picks an integer production level for each energy source, within
installed capacity, so that total production covers demand at minimum cost.

The quadratic cost model is converted to QUBO form and solved with QAOA, VQE
and an exact eigensolver; each strategy's allocation is printed as shares of
total demand.`,
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario config file (YAML, TOML or JSON); empty runs the built-in three-source demo")
	cmd.Flags().Float64Var(&penalty, "penalty", 0, "constraint penalty weight; 0 picks a sufficient default from the objective's spread")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "seed for the stochastic strategies")
	cmd.Flags().IntVar(&shots, "shots", mineigen.DefaultShots, "measurements per objective evaluation")
	cmd.Flags().IntVar(&reps, "reps", 1, "circuit layer repetitions")
	cmd.Flags().IntVar(&maxEvals, "max-evals", mineigen.DefaultMaxEvaluations, "objective evaluation budget per strategy")
	cmd.Flags().AddGoFlagSet(goflag.CommandLine)

	if err := cmd.Execute(); err != nil {
		log.Errorf("energymix: %v", err)
		os.Exit(1)
	}
}

func loadScenario(path string) (energymix.Scenario, error) {
	if path == "" {
		return energymix.DefaultScenario(), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return energymix.Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var s energymix.Scenario
	if err := v.Unmarshal(&s); err != nil {
		return energymix.Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	return s, nil
}

func run(cmd *cobra.Command, args []string) error {
	scenario, err := loadScenario(scenarioFile)
	if err != nil {
		return err
	}
	model, err := scenario.Model()
	if err != nil {
		return err
	}

	p := penalty
	if p <= 0 {
		p = qubomodel.DefaultPenalty(model)
	}
	q, err := qubomodel.ToQUBO(model, p)
	if err != nil {
		return err
	}
	log.Infof("QUBO has %d bits, penalty weight %v", q.NumBits(), p)

	opt := &mineigen.NelderMead{MaxEvaluations: maxEvals}
	strategies := []struct {
		name     string
		strategy mineigen.Strategy
	}{
		{"QAOA", &mineigen.QAOA{Reps: reps, Shots: shots, Seed: seed, Optimizer: opt}},
		{"VQE", &mineigen.VQE{Reps: reps, Shots: shots, Seed: seed, Optimizer: opt}},
		{"exact eigensolver", mineigen.Exact{}},
	}
	for _, st := range strategies {
		res, err := mineigen.Solve(q, st.strategy)
		if err != nil {
			if !errors.Is(err, mineigen.ErrInfeasibleResult) {
				return fmt.Errorf("%s: %w", st.name, err)
			}
			log.Errorf("%s converged to an infeasible assignment; consider a larger --penalty", st.name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n%s\n", st.name, energymix.Report(res, scenario.MinDemand))
	}
	return nil
}
