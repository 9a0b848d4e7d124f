// Package alert evaluates operator-defined rules against computed district
// composites. Rules are written in YAML with a CEL trigger expression, so
// score thresholds can change without a rebuild.
package alert

import (
	"github.com/google/cel-go/cel"
)

// Alert is one raised notification: which district tripped a rule and the
// rule's configured level and message.
type Alert struct {
	District string `json:"district" yaml:"-"`
	Level    string `json:"level" yaml:"level"`
	Message  string `json:"message" yaml:"message"`
}

// Rule pairs a CEL trigger condition with the alert it raises.
// The When expression must evaluate to a boolean over the composite
// variables declared by NewCompositeEnv. The program is compiled by Init and
// reused for every evaluation.
type Rule struct {
	// When — CEL expression defining the trigger condition.
	When string `yaml:"when"`
	// Then — alert raised for a district whose composite satisfies When.
	Then Alert `yaml:"then"`

	program cel.Program
}

// Init compiles the When expression into an executable CEL program using
// the provided environment. Syntax and semantic errors surface here, at
// startup, not during evaluation.
func (r *Rule) Init(env *cel.Env) error {
	ast, iss := env.Parse(r.When)
	if iss.Err() != nil {
		return iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return iss.Err()
	}

	var err error
	r.program, err = env.Program(checked)
	return err
}

// Eval runs the compiled condition against one district's composite
// variables. A runtime evaluation error reports as not matched together
// with the error, so one bad rule never interrupts the evaluation chain.
func (r *Rule) Eval(vars map[string]any) (bool, error) {
	result, _, err := r.program.Eval(vars)
	if err != nil {
		return false, err
	}
	return result.Value() == true, nil
}

// NewCompositeEnv declares the CEL variables rules may reference: the
// district identity and every composite score field.
func NewCompositeEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("district", cel.StringType),
		cel.Variable("region", cel.StringType),

		cel.Variable("overall", cel.IntType),
		cel.Variable("airQuality", cel.IntType),
		cel.Variable("transport", cel.IntType),
		cel.Variable("greenSpace", cel.IntType),
		cel.Variable("amenities", cel.IntType),
		cel.Variable("safety", cel.IntType),

		cel.Variable("envScore", cel.IntType),
		cel.Variable("climate", cel.IntType),
	)
}
