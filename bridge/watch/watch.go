/*
Copyright (c) the cosim-bridge authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package watch evaluates optional config-driven diagnostic expressions
// against the latest pushed sample values (SPEC_FULL A9). It is read-only
// observability: a tripped or erroring expression is logged, never fed
// back into the wire protocol or the sync state machine.
package watch

import (
	"fmt"
	"math/big"

	"github.com/Knetic/govaluate"
	log "github.com/sirupsen/logrus"

	"github.com/myhdl/cosim-bridge/bridge/registry"
)

// Expr is one compiled watch expression: a name for logging and the
// govaluate program to run against the current output values.
type Expr struct {
	Name string
	src  string
	expr *govaluate.EvaluableExpression
}

// Compile parses exprStr into an Expr named name. Variables in the
// expression are resolved against output signal names at evaluation time,
// not checked against a fixed whitelist: the bridge's output signal set
// is only known once $to_myhdl registers it.
func Compile(name, exprStr string) (*Expr, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(exprStr, functions)
	if err != nil {
		return nil, fmt.Errorf("compiling watch expression %q: %w", name, err)
	}
	return &Expr{Name: name, src: exprStr, expr: expr}, nil
}

// Watcher holds a set of compiled expressions and evaluates them against
// a registry's current output values after each completed push.
type Watcher struct {
	exprs []*Expr
}

// NewWatcher compiles every (name, expression) pair, returning the first
// compile error encountered (a bad watch expression is a configuration
// mistake, not a runtime condition to tolerate).
func NewWatcher(specs map[string]string) (*Watcher, error) {
	w := &Watcher{}
	for name, exprStr := range specs {
		e, err := Compile(name, exprStr)
		if err != nil {
			return nil, err
		}
		w.exprs = append(w.exprs, e)
	}
	return w, nil
}

// Check evaluates every expression against reg's current output values,
// logging a warning for any that evaluate truthy ("tripped") and an error
// for any that fail to evaluate (e.g. an unknown signal name).
func (w *Watcher) Check(reg *registry.Registry) {
	if w == nil {
		return
	}
	params := paramsFromRegistry(reg)
	for _, e := range w.exprs {
		result, err := e.expr.Evaluate(params)
		if err != nil {
			log.Errorf("watch %q: evaluation failed: %v", e.Name, err)
			continue
		}
		if tripped, ok := result.(bool); ok && tripped {
			log.Warningf("watch %q tripped: %s", e.Name, e.src)
		}
	}
}

func paramsFromRegistry(reg *registry.Registry) map[string]interface{} {
	params := make(map[string]interface{}, len(reg.Outputs()))
	for _, o := range reg.Outputs() {
		if o.Current == nil {
			params[o.Name] = float64(0)
			continue
		}
		params[o.Name] = bigToFloat(o.Current)
	}
	return params
}

func bigToFloat(v *big.Int) float64 {
	f := new(big.Float).SetInt(v)
	out, _ := f.Float64()
	return out
}

var functions = map[string]govaluate.ExpressionFunction{
	"abs": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("abs: wrong number of arguments: want 1, got %d", len(args))
		}
		val, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("abs: argument must be numeric")
		}
		if val < 0 {
			return -val, nil
		}
		return val, nil
	},
}
