package config

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/zerr"
)

// conditionEnv is the environment a task condition is compiled and run against.
type conditionEnv struct {
	Project string `expr:"project"`
	Variant string `expr:"variant"`
}

// condition is a compiled `when` expression.
type condition struct {
	source  string
	program *vm.Program
}

var _ domain.Condition = (*condition)(nil)

func compileCondition(source string) (*condition, error) {
	program, err := expr.Compile(source, expr.Env(conditionEnv{}), expr.AsBool())
	if err != nil {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidCondition, err.Error()), "when", source)
		return nil, err
	}
	return &condition{source: source, program: program}, nil
}

// Matches runs the expression for one variant.
func (c *condition) Matches(project, variant string) (bool, error) {
	out, err := expr.Run(c.program, conditionEnv{Project: project, Variant: variant})
	if err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrInvalidCondition, err.Error()), "when", c.source)
		return false, zerr.With(err, "variant", variant)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, zerr.With(zerr.Wrap(domain.ErrInvalidCondition, "condition is not boolean"), "when", c.source)
	}
	return matched, nil
}

// String returns the expression source.
func (c *condition) String() string {
	return c.source
}
