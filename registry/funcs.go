package registry

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"unicode/utf8"

	"github.com/rfc9535/jsonpath/spec"
)

// checkArity returns an error unless fea holds exactly n arguments.
func checkArity(fea []spec.FunctionExprArg, n int) error {
	if len(fea) == n {
		return nil
	}
	word := "arguments"
	if n == 1 {
		word = "argument"
	}
	return fmt.Errorf("expected %d %v but found %v", n, word, len(fea))
}

// checkLengthArgs checks the argument expressions to length() and returns an
// error if there is not exactly one expression that results in a
// [PathValue]-compatible value.
func checkLengthArgs(fea []spec.FunctionExprArg) error {
	if err := checkArity(fea, 1); err != nil {
		return err
	}
	if !fea[0].ResultType().ConvertsTo(spec.PathValue) {
		return errors.New("cannot convert argument to ValueType")
	}
	return nil
}

// lengthFunc extracts the single argument passed in jv and returns its
// length. Panics if jv[0] doesn't exist or is not convertible to [ValueType].
//
//   - if jv[0] is nil, the result is nil
//   - If jv[0] is a string, the result is the number of Unicode scalar values
//     in the string.
//   - If jv[0] is a []any, the result is the number of elements in the slice.
//   - If jv[0] is an map[string]any, the result is the number of members in
//     the map.
//   - For any other value, the result is nil.
func lengthFunc(jv []spec.JSONPathValue) spec.JSONPathValue {
	v := spec.ValueFrom(jv[0])
	if v == nil {
		return nil
	}
	switch v := v.Value().(type) {
	case string:
		// Unicode scalar values
		return spec.Value(utf8.RuneCountInString(v))
	case []any:
		return spec.Value(len(v))
	case map[string]any:
		return spec.Value(len(v))
	case *spec.Object:
		return spec.Value(v.Len())
	default:
		return nil
	}
}

// checkCountArgs checks the argument expressions to count() and returns an
// error if there is not exactly one expression that results in a
// [PathNodes]-compatible value.
func checkCountArgs(fea []spec.FunctionExprArg) error {
	if err := checkArity(fea, 1); err != nil {
		return err
	}
	if !fea[0].ResultType().ConvertsTo(spec.PathNodes) {
		return errors.New("cannot convert argument to PathNodes")
	}
	return nil
}

// countFunc implements the [RFC 9535]-standard count function. The result is
// a ValueType containing an int for the number of nodes
// in jv[0]. Panics if jv[0] doesn't exist or is not convertible to
// [NodesType].
func countFunc(jv []spec.JSONPathValue) spec.JSONPathValue {
	return spec.Value(len(spec.NodesFrom(jv[0])))
}

// checkValueArgs checks the argument expressions to value() and returns an
// error if there is not exactly one expression that results in a
// [PathNodes]-compatible value.
func checkValueArgs(fea []spec.FunctionExprArg) error {
	if err := checkArity(fea, 1); err != nil {
		return err
	}
	if !fea[0].ResultType().ConvertsTo(spec.PathNodes) {
		return errors.New("cannot convert argument to PathNodes")
	}
	return nil
}

// valueFunc implements the [RFC 9535]-standard value function. Panics if
// jv[0] doesn't exist or is not convertible to [NodesType]. Otherwise:
//
//   - If jv[0] contains a single node, the result is the value of the node.
//   - If jv[0] is empty or contains multiple nodes, the result is nil.
func valueFunc(jv []spec.JSONPathValue) spec.JSONPathValue {
	nodes := spec.NodesFrom(jv[0])
	if len(nodes) == 1 {
		return spec.Value(nodes[0])
	}
	return nil
}

// checkTwoValueArgs checks that fea holds exactly two expressions that each
// result in a [PathValue]-compatible value, reporting which argument failed
// as 1-indexed. Shared by [checkMatchArgs] and [checkSearchArgs].
func checkTwoValueArgs(fea []spec.FunctionExprArg) error {
	if err := checkArity(fea, 2); err != nil {
		return err
	}
	for i, arg := range fea {
		if !arg.ResultType().ConvertsTo(spec.PathValue) {
			return fmt.Errorf("cannot convert argument %v to ValueType", i+1)
		}
	}
	return nil
}

// checkMatchArgs checks the argument expressions to match() and returns an
// error if there are not exactly two expressions that result in
// [PathValue]-compatible values.
func checkMatchArgs(fea []spec.FunctionExprArg) error {
	return checkTwoValueArgs(fea)
}

// matchFunc implements the [RFC 9535]-standard match function. If jv[0] and
// jv[1] evaluate to strings, the second is compiled into a regular expression with
// implied \A and \z anchors and used to match the first, returning LogicalTrue for
// a match and LogicalFalse for no match. Returns LogicalFalse if either jv value
// is not a string or if jv[1] fails to compile.
func matchFunc(jv []spec.JSONPathValue) spec.JSONPathValue {
	if v, ok := spec.ValueFrom(jv[0]).Value().(string); ok {
		if r, ok := spec.ValueFrom(jv[1]).Value().(string); ok {
			if rc := compileRegex(`\A` + r + `\z`); rc != nil {
				return spec.LogicalFrom(rc.MatchString(v))
			}
		}
	}
	return spec.LogicalFalse
}

// checkSearchArgs checks the argument expressions to search() and returns an
// error if there are not exactly two expressions that result in
// [PathValue]-compatible values.
func checkSearchArgs(fea []spec.FunctionExprArg) error {
	return checkTwoValueArgs(fea)
}

// searchFunc implements the [RFC 9535]-standard search function. If both jv[0]
// and jv[1] contain strings, the latter is compiled into a regular expression and used
// to match the former, returning LogicalTrue for a match and LogicalFalse for no
// match. Returns LogicalFalse if either value is not a string, or if jv[1]
// fails to compile.
func searchFunc(jv []spec.JSONPathValue) spec.JSONPathValue {
	if val, ok := spec.ValueFrom(jv[0]).Value().(string); ok {
		if r, ok := spec.ValueFrom(jv[1]).Value().(string); ok {
			if rc := compileRegex(r); rc != nil {
				return spec.LogicalFrom(rc.MatchString(val))
			}
		}
	}
	return spec.LogicalFalse
}

// compileRegex compiles str into a regular expression or returns nil. To
// comply with RFC 9485 regular expression semantics, all instances of "." are
// replaced with "[^\n\r]". This requires compiling the regex twice: once to
// produce an AST to replace "." nodes, and a second time for the final
// regex.
func compileRegex(str string) *regexp.Regexp {
	// https://www.rfc-editor.org/rfc/rfc9485.html#name-pcre-re2-and-ruby-regexps
	r, err := syntax.Parse(str, syntax.Perl|syntax.DotNL)
	if err != nil {
		return nil
	}

	replaceDot(r)
	re, _ := regexp.Compile(r.String())
	return re
}

var dotReplacement, _ = syntax.Parse(`[^\n\r]`, syntax.Perl)

// replaceDot recurses through re, replacing every "match any character"
// node with a "not newline or carriage return" node.
func replaceDot(re *syntax.Regexp) {
	if re.Op == syntax.OpAnyChar {
		*re = *dotReplacement
		return
	}
	for _, sub := range re.Sub {
		replaceDot(sub)
	}
}
