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

// Package qubomodel offers an API to build quadratic cost models over bounded
// integer variables and reformulate them as quadratic unconstrained binary
// optimization (QUBO) problems.
//
// The `Builder` struct collects variables, a quadratic objective, and linear
// constraints, and produces an immutable `QuadraticModel`. The `ToQUBO`
// function binary-expands every bounded integer variable and folds each linear
// constraint into the objective through a penalty term with an auxiliary slack
// variable, yielding a `QUBOModel` over purely binary variables.
package qubomodel

import (
	"errors"
	"fmt"
	"sort"

	log "github.com/golang/glog"
)

var (
	// ErrInvalidBound holds the error when a variable is declared with an empty
	// or negative domain, or when a variable name is declared twice.
	ErrInvalidBound = errors.New("invalid variable bound")
	// ErrUnknownVariable holds the error when an objective or constraint term
	// references a variable that is not declared in the model being built.
	ErrUnknownVariable = errors.New("variable not declared in this model")
)

// VarIndex is the index of a variable in the quadratic model.
type VarIndex int32

// Sense is the comparison sense of a linear constraint.
type Sense int

const (
	// SenseLE is the constraint sense `lhs <= rhs`.
	SenseLE Sense = iota
	// SenseGE is the constraint sense `lhs >= rhs`.
	SenseGE
	// SenseEQ is the constraint sense `lhs == rhs`.
	SenseEQ
)

func (s Sense) String() string {
	switch s {
	case SenseLE:
		return "<="
	case SenseGE:
		return ">="
	case SenseEQ:
		return "=="
	}
	return "?"
}

// Variable is a named bounded integer quantity. Identity is the name, which is
// unique within a model.
type Variable struct {
	Name string
	Dom  Domain
}

// IntVar is a reference to an integer variable in the quadratic model.
type IntVar struct {
	ind VarIndex
	qb  *Builder
}

// Name returns the name of the variable.
func (v IntVar) Name() string {
	return v.qb.vars[v.ind].Name
}

// Domain returns the domain of the variable.
func (v IntVar) Domain() Domain {
	return v.qb.vars[v.ind].Dom
}

// Index returns the index of the variable.
func (v IntVar) Index() VarIndex {
	return v.ind
}

type varCoeff struct {
	v     IntVar
	coeff float64
}

type quadCoeff struct {
	a, b  IntVar
	coeff float64
}

// LinearExpr is a container for a linear expression over integer variables.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    float64
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// Add adds the variable with coefficient 1 to the LinearExpr and returns itself.
func (l *LinearExpr) Add(v IntVar) *LinearExpr {
	return l.AddTerm(v, 1)
}

// AddSum adds the sum of the variables to the LinearExpr and returns itself.
func (l *LinearExpr) AddSum(vs ...IntVar) *LinearExpr {
	for _, v := range vs {
		l.Add(v)
	}
	return l
}

// AddTerm adds the variable with the given coefficient to the LinearExpr and
// returns itself.
func (l *LinearExpr) AddTerm(v IntVar, coeff float64) *LinearExpr {
	l.varCoeffs = append(l.varCoeffs, varCoeff{v: v, coeff: coeff})
	return l
}

// AddConstant adds the constant to the LinearExpr and returns itself.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	l.offset += c
	return l
}

// QuadExpr is a container for a quadratic expression: a linear part plus
// coefficients on unordered variable pairs.
type QuadExpr struct {
	linear     LinearExpr
	quadCoeffs []quadCoeff
}

// NewQuadExpr creates a new empty QuadExpr.
func NewQuadExpr() *QuadExpr {
	return &QuadExpr{}
}

// AddTerm adds the variable with the given linear coefficient to the QuadExpr
// and returns itself.
func (q *QuadExpr) AddTerm(v IntVar, coeff float64) *QuadExpr {
	q.linear.AddTerm(v, coeff)
	return q
}

// AddQuadTerm adds the product term `coeff*a*b` to the QuadExpr and returns
// itself. The pair is unordered: the coefficient for (a,b) is the coefficient
// for (b,a).
func (q *QuadExpr) AddQuadTerm(a, b IntVar, coeff float64) *QuadExpr {
	q.quadCoeffs = append(q.quadCoeffs, quadCoeff{a: a, b: b, coeff: coeff})
	return q
}

// AddConstant adds the constant to the QuadExpr and returns itself.
func (q *QuadExpr) AddConstant(c float64) *QuadExpr {
	q.linear.AddConstant(c)
	return q
}

// Constraint is a linear constraint of an immutable QuadraticModel: a dense
// coefficient vector over the model's variables, a comparison sense, and a
// right-hand side.
type Constraint struct {
	Coeffs []float64
	Sense  Sense
	RHS    float64
}

type pairKey struct {
	a, b VarIndex // a <= b
}

func newPairKey(a, b VarIndex) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Builder collects variables, an objective, and constraints for a quadratic
// model.
type Builder struct {
	vars        []Variable
	index       map[string]VarIndex
	objLinear   map[VarIndex]float64
	objQuad     map[pairKey]float64
	objOffset   float64
	constraints []Constraint
	// The first and only the first error is reported in Build.
	err error
}

// NewBuilder creates and returns a new quadratic model Builder.
func NewBuilder() *Builder {
	return &Builder{
		index:     make(map[string]VarIndex),
		objLinear: make(map[VarIndex]float64),
		objQuad:   make(map[pairKey]float64),
	}
}

// setErrorf records the first error encountered while building, to be reported
// by Build.
func (qb *Builder) setErrorf(sentinel error, format string, a ...any) {
	args := make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = sentinel
	err := fmt.Errorf(format+": %w", args...)
	log.Errorf("%v", err)
	if qb.err == nil {
		qb.err = err
	}
}

// checkSameModel returns true if the variable belongs to this Builder. If not,
// an ErrUnknownVariable is set on the Builder.
func (qb *Builder) checkSameModel(v IntVar, context string) bool {
	if v.qb == qb {
		return true
	}
	qb.setErrorf(ErrUnknownVariable, "variable %q added to %s", v.Name(), context)
	return false
}

// NewIntVar declares a new integer variable with the inclusive bounds
// `[lb,ub]` and returns a reference to it. Declaring an empty domain, a
// negative lower bound, or a duplicate name records an ErrInvalidBound.
func (qb *Builder) NewIntVar(name string, lb, ub int64) IntVar {
	v := IntVar{ind: VarIndex(len(qb.vars)), qb: qb}
	dom := NewDomain(lb, ub)
	if dom.IsEmpty() || lb < 0 {
		qb.setErrorf(ErrInvalidBound, "variable %q has bounds [%d,%d]", name, lb, ub)
	} else if _, dup := qb.index[name]; dup {
		qb.setErrorf(ErrInvalidBound, "variable %q declared twice", name)
	}
	qb.vars = append(qb.vars, Variable{Name: name, Dom: dom})
	qb.index[name] = v.ind
	return v
}

// Minimize sets the objective of the model to minimize the given quadratic
// expression. Calling Minimize again replaces the previous objective.
func (qb *Builder) Minimize(expr *QuadExpr) {
	qb.objLinear = make(map[VarIndex]float64)
	qb.objQuad = make(map[pairKey]float64)
	qb.objOffset = expr.linear.offset
	for _, vc := range expr.linear.varCoeffs {
		if !qb.checkSameModel(vc.v, "objective") {
			return
		}
		qb.objLinear[vc.v.ind] += vc.coeff
	}
	for _, qc := range expr.quadCoeffs {
		if !qb.checkSameModel(qc.a, "objective") || !qb.checkSameModel(qc.b, "objective") {
			return
		}
		qb.objQuad[newPairKey(qc.a.ind, qc.b.ind)] += qc.coeff
	}
}

func (qb *Builder) addConstraint(expr *LinearExpr, sense Sense, rhs float64) {
	coeffs := make([]float64, len(qb.vars))
	for _, vc := range expr.varCoeffs {
		if !qb.checkSameModel(vc.v, "constraint") {
			return
		}
		coeffs[vc.v.ind] += vc.coeff
	}
	qb.constraints = append(qb.constraints, Constraint{
		Coeffs: coeffs,
		Sense:  sense,
		RHS:    rhs - expr.offset,
	})
}

// AddGreaterOrEqual adds the linear constraint `expr >= rhs`.
func (qb *Builder) AddGreaterOrEqual(expr *LinearExpr, rhs float64) {
	qb.addConstraint(expr, SenseGE, rhs)
}

// AddLessOrEqual adds the linear constraint `expr <= rhs`.
func (qb *Builder) AddLessOrEqual(expr *LinearExpr, rhs float64) {
	qb.addConstraint(expr, SenseLE, rhs)
}

// AddEquality adds the linear constraint `expr == rhs`.
func (qb *Builder) AddEquality(expr *LinearExpr, rhs float64) {
	qb.addConstraint(expr, SenseEQ, rhs)
}

// Build returns the immutable QuadraticModel, or the first error recorded
// while building.
func (qb *Builder) Build() (*QuadraticModel, error) {
	if qb.err != nil {
		return nil, qb.err
	}
	m := &QuadraticModel{
		vars:      append([]Variable(nil), qb.vars...),
		index:     make(map[string]VarIndex, len(qb.index)),
		linear:    make([]float64, len(qb.vars)),
		quad:      make(map[pairKey]float64, len(qb.objQuad)),
		offset:    qb.objOffset,
		constrs:   make([]Constraint, len(qb.constraints)),
	}
	for name, ind := range qb.index {
		m.index[name] = ind
	}
	for ind, c := range qb.objLinear {
		m.linear[ind] = c
	}
	for k, c := range qb.objQuad {
		m.quad[k] = c
	}
	for i, ct := range qb.constraints {
		coeffs := make([]float64, len(qb.vars))
		copy(coeffs, ct.Coeffs)
		m.constrs[i] = Constraint{Coeffs: coeffs, Sense: ct.Sense, RHS: ct.RHS}
	}
	return m, nil
}

// QuadraticModel is an immutable quadratic cost model: a linear coefficient
// per variable, a coefficient per unordered variable pair, a minimization
// objective, and zero or more linear constraints.
type QuadraticModel struct {
	vars    []Variable
	index   map[string]VarIndex
	linear  []float64
	quad    map[pairKey]float64
	offset  float64
	constrs []Constraint
}

// NumVariables returns the number of variables in the model.
func (m *QuadraticModel) NumVariables() int {
	return len(m.vars)
}

// Variables returns a copy of the model's variables in declaration order.
func (m *QuadraticModel) Variables() []Variable {
	return append([]Variable(nil), m.vars...)
}

// Constraints returns a copy of the model's linear constraints.
func (m *QuadraticModel) Constraints() []Constraint {
	out := make([]Constraint, len(m.constrs))
	for i, ct := range m.constrs {
		out[i] = Constraint{
			Coeffs: append([]float64(nil), ct.Coeffs...),
			Sense:  ct.Sense,
			RHS:    ct.RHS,
		}
	}
	return out
}

// sortedQuadKeys returns the quadratic term keys in index order. Coefficient
// iteration always goes through this so that evaluation and reformulation are
// deterministic.
func (m *QuadraticModel) sortedQuadKeys() []pairKey {
	keys := make([]pairKey, 0, len(m.quad))
	for k := range m.quad {
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

// values resolves a named assignment into a dense value vector. Every model
// variable must be assigned.
func (m *QuadraticModel) values(assignment map[string]int64) ([]int64, error) {
	vals := make([]int64, len(m.vars))
	for i, v := range m.vars {
		val, ok := assignment[v.Name]
		if !ok {
			return nil, fmt.Errorf("assignment is missing %q: %w", v.Name, ErrUnknownVariable)
		}
		vals[i] = val
	}
	return vals, nil
}

// Evaluate computes the original (unpenalized) objective value of the given
// assignment.
func (m *QuadraticModel) Evaluate(assignment map[string]int64) (float64, error) {
	vals, err := m.values(assignment)
	if err != nil {
		return 0, err
	}
	obj := m.offset
	for i, c := range m.linear {
		obj += c * float64(vals[i])
	}
	for _, k := range m.sortedQuadKeys() {
		obj += m.quad[k] * float64(vals[k.a]) * float64(vals[k.b])
	}
	return obj, nil
}

// Feasible reports whether the assignment satisfies every linear constraint of
// the model.
func (m *QuadraticModel) Feasible(assignment map[string]int64) (bool, error) {
	vals, err := m.values(assignment)
	if err != nil {
		return false, err
	}
	for _, ct := range m.constrs {
		lhs := 0.0
		for i, c := range ct.Coeffs {
			lhs += c * float64(vals[i])
		}
		switch ct.Sense {
		case SenseLE:
			if lhs > ct.RHS {
				return false, nil
			}
		case SenseGE:
			if lhs < ct.RHS {
				return false, nil
			}
		case SenseEQ:
			if lhs != ct.RHS {
				return false, nil
			}
		}
	}
	return true, nil
}
