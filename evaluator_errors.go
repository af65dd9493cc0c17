package menu

import (
	"errors"
	"fmt"
	"strings"
)

// EvaluationError is returned when a placeholder rule cannot be compiled or
// evaluated. Placeholder and Action are set when the failure came from a
// button's placeholder rule rather than a raw expression.
type EvaluationError struct {
	Engine      string
	Expr        string
	Placeholder string
	Action      PlaceholderAction
	Err         error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("menu: ")
	if e.Placeholder != "" {
		fmt.Fprintf(&b, "placeholder %s", e.Placeholder)
		if e.Action != "" {
			fmt.Fprintf(&b, " %s", e.Action)
		}
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%s evaluator ", e.Engine)
	if e.Expr == "" {
		b.WriteString("expr=<empty>")
	} else {
		fmt.Fprintf(&b, "expr=%q", e.Expr)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// wrapEvaluatorError prefixes errors that are not tied to an expression.
func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) || strings.HasPrefix(err.Error(), "menu:") {
		return err
	}
	return fmt.Errorf("menu: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}
	evalErr := asEvaluationError(err)
	if evalErr == nil {
		return &EvaluationError{Engine: engine, Expr: expr, Err: err}
	}
	if evalErr.Engine == "" {
		evalErr.Engine = engine
	}
	if evalErr.Expr == "" {
		evalErr.Expr = expr
	}
	return evalErr
}

// wrapRuleError attaches the failing placeholder rule to an evaluation error.
func wrapRuleError(rule PlaceholderRule, engine, expr string, err error) error {
	if err == nil {
		return nil
	}
	evalErr, ok := wrapEvaluationError(engine, expr, err).(*EvaluationError)
	if !ok {
		return err
	}
	if evalErr.Placeholder == "" {
		evalErr.Placeholder = rule.Placeholder
		evalErr.Action = rule.Action
	}
	return evalErr
}

func asEvaluationError(err error) *EvaluationError {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return evalErr
	}
	return nil
}
