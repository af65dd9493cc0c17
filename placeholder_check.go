package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPlaceholderRule is returned when checking a rule that failed
// validation.
var ErrInvalidPlaceholderRule = errors.New("menu: placeholder rule is invalid")

// PlaceholderChecker evaluates placeholder rules once the placeholder has
// been resolved for a viewer.
type PlaceholderChecker struct {
	evaluator Evaluator
	logger    EvaluatorLogger
}

// CheckerOption configures a PlaceholderChecker.
type CheckerOption func(*PlaceholderChecker)

// WithEvaluator selects the expression engine. The default is expr-lang.
func WithEvaluator(e Evaluator) CheckerOption {
	return func(c *PlaceholderChecker) {
		if e != nil {
			c.evaluator = e
		}
	}
}

// WithEvaluatorLogger attaches an evaluator logger to the checker.
func WithEvaluatorLogger(logger EvaluatorLogger) CheckerOption {
	return func(c *PlaceholderChecker) {
		if logger == nil {
			c.logger = noopEvaluatorLogger{}
			return
		}
		c.logger = logger
	}
}

// NewPlaceholderChecker builds a checker using an expr evaluator with a
// program cache unless another evaluator is supplied.
func NewPlaceholderChecker(opts ...CheckerOption) *PlaceholderChecker {
	c := &PlaceholderChecker{logger: noopEvaluatorLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.evaluator == nil {
		c.evaluator = NewExprEvaluator(ExprWithProgramCache(NewProgramCache()))
	}
	return c
}

// Check reports whether actual, the resolved placeholder value, satisfies
// rule. Numeric actions are false when either side is not a number.
func (c *PlaceholderChecker) Check(rule PlaceholderRule, actual string) (bool, error) {
	if !rule.IsValid() {
		return false, ErrInvalidPlaceholderRule
	}
	snapshot, ok := placeholderSnapshot(rule, actual)
	if !ok {
		return false, nil
	}
	engine := evaluatorEngineName(c.evaluator)
	expr := rule.expression(engine)

	start := time.Now()
	value, err := c.evaluator.Evaluate(RuleContext{Snapshot: snapshot}, expr)
	err = wrapRuleError(rule, engine, expr, err)
	c.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:      engine,
		Expr:        expr,
		Placeholder: rule.Placeholder,
		Duration:    time.Since(start),
		Err:         err,
	})
	if err != nil {
		return false, err
	}
	result, ok := value.(bool)
	if !ok {
		return false, wrapRuleError(rule, engine, expr, fmt.Errorf("expected bool result, got %T", value))
	}
	return result, nil
}

// CheckAll reports whether every rule passes. values maps placeholders to
// their resolved values; a missing placeholder resolves to itself.
func (c *PlaceholderChecker) CheckAll(rules []PlaceholderRule, values map[string]string) (bool, error) {
	for _, rule := range rules {
		actual, ok := values[rule.Placeholder]
		if !ok {
			actual = rule.Placeholder
		}
		passed, err := c.Check(rule, actual)
		if err != nil || !passed {
			return false, err
		}
	}
	return true, nil
}

func placeholderSnapshot(rule PlaceholderRule, actual string) (map[string]any, bool) {
	snapshot := map[string]any{
		"actual": actual,
		"target": rule.Value,
	}
	switch {
	case rule.Action.Numeric():
		actualNumber, err := strconv.ParseFloat(strings.TrimSpace(actual), 64)
		if err != nil {
			return nil, false
		}
		targetNumber, err := strconv.ParseFloat(strings.TrimSpace(rule.Value), 64)
		if err != nil {
			return nil, false
		}
		snapshot["actualNumber"] = actualNumber
		snapshot["targetNumber"] = targetNumber
	case rule.Action == PlaceholderBoolean:
		snapshot["actualBool"] = parseLenientBool(actual)
		snapshot["targetBool"] = parseLenientBool(rule.Value)
	case rule.Action == PlaceholderEqualsStringIgnoreCase:
		snapshot["actualFolded"] = strings.ToLower(actual)
		snapshot["targetFolded"] = strings.ToLower(rule.Value)
	}
	return snapshot, true
}

// parseLenientBool treats anything other than a case-insensitive "true" as
// false.
func parseLenientBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

func (r PlaceholderRule) expression(engine string) string {
	switch r.Action {
	case PlaceholderBoolean:
		return "actualBool == targetBool"
	case PlaceholderEqualsString:
		return "actual == target"
	case PlaceholderEqualsStringIgnoreCase:
		return "actualFolded == targetFolded"
	case PlaceholderContainsString:
		switch engine {
		case engineCEL:
			return "actual.contains(target)"
		case engineJS:
			return "actual.includes(target)"
		default:
			return "actual contains target"
		}
	case PlaceholderEqualTo:
		return "actualNumber == targetNumber"
	case PlaceholderSuperior:
		return "actualNumber > targetNumber"
	case PlaceholderSuperiorOrEqual:
		return "actualNumber >= targetNumber"
	case PlaceholderLower:
		return "actualNumber < targetNumber"
	case PlaceholderLowerOrEqual:
		return "actualNumber <= targetNumber"
	default:
		return "false"
	}
}
