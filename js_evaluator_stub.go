//go:build !js_eval

package menu

import "errors"

var errJSUnavailable = errors.New("menu: js evaluator requires the js_eval build tag")

// NewJSEvaluator is unavailable without the js_eval build tag.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = newJSEvaluator(opts)
	return nil
}

func (e *jsEvaluator) Evaluate(RuleContext, string) (any, error) {
	return nil, errJSUnavailable
}

func (e *jsEvaluator) Compile(string) (CompiledRule, error) {
	return nil, errJSUnavailable
}

func jsEvaluatorAvailable() bool {
	return false
}
