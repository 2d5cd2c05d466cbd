// Package match selects jobs by evaluating CEL expressions over their
// identity parameters.
//
// Workers that only want a subset of the job universe compile a selector
// once and evaluate it against each job's parameters:
//
//	sel, err := match.Compile(`params["platform"] == "x" && params["label"] != null`)
//	ok, err := sel.Matches(params)
//
// The expression sees a single variable, params, a map from the recognized
// field names (keyword, platform, label, post_start_datetime,
// post_end_datetime) to their string values. Absent fields surface as null,
// mirroring the canonical form's treatment of absence.
package match

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/crawlkit/jobident/jobid"
)

// Selector is a compiled job selector. A Selector is immutable and safe for
// concurrent use.
type Selector struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks a CEL expression into a Selector. The
// expression must evaluate to a boolean.
func Compile(expr string) (*Selector, error) {
	env, err := cel.NewEnv(
		cel.Variable("params", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build CEL environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("failed to compile selector %q: %w", expr, iss.Err())
	}
	// Indexing into map(string, dyn) yields dyn, so expressions built from
	// field accesses often check as dyn rather than bool. Reject only what
	// is statically known to be non-boolean; dyn is settled at evaluation.
	if ot := ast.OutputType(); !ot.IsExactType(cel.BoolType) && !ot.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("selector %q evaluates to %s, want bool", expr, ot)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to plan selector %q: %w", expr, err)
	}

	return &Selector{expr: expr, prg: prg}, nil
}

// Expr returns the source expression the selector was compiled from.
func (s *Selector) Expr() string {
	return s.expr
}

// Matches evaluates the selector against a job's parameters.
func (s *Selector) Matches(p jobid.Params) (bool, error) {
	out, _, err := s.prg.Eval(map[string]any{"params": paramsActivation(p)})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate selector %q: %w", s.expr, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("selector %q produced %T, want bool", s.expr, out.Value())
	}
	return b, nil
}

// paramsActivation converts Params into the map shape the CEL environment
// declares: string values for present fields, null for absent ones.
func paramsActivation(p jobid.Params) map[string]any {
	fields := p.Fields()
	m := make(map[string]any, len(fields))
	for name, val := range fields {
		if val == nil {
			m[name] = nil
		} else {
			m[name] = *val
		}
	}
	return m
}
