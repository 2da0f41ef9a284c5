package parser

import (
	"fmt"
	"strconv"

	"github.com/rfc9535/jsonpath/spec"
)

// parseFilter parses a filter-selector: '?' followed by a logical-or-expr.
// lex.scan() must already have consumed the '?'.
func (p *parser) parseFilter() (*spec.FilterSelector, error) {
	expr, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	return spec.Filter(expr...), nil
}

// parseOperatorChain parses one or more items produced by next, separated
// by two consecutive copies of opRune (i.e. "||" or "&&"), and returns them
// in source order. It is shared by the logical-or and logical-and levels of
// the filter-expression grammar, which differ only in the item type and the
// separating operator.
func parseOperatorChain[T any](lex *lexer, opRune rune, next func() (T, error)) ([]T, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}

	items := []T{first}
	lex.scanBlankSpace()
	for lex.r == opRune {
		lex.scan()
		if tok := lex.scan(); tok.tok != opRune {
			return nil, errAt(tok, fmt.Sprintf("expected %q but found %v", opRune, tok.name()))
		}
		item, err := next()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		lex.scanBlankSpace()
	}
	return items, nil
}

// parseLogicalOrExpr parses a logical-or-expr: one or more logical-and-exprs
// joined by "||".
func (p *parser) parseLogicalOrExpr() (spec.LogicalOr, error) {
	ands, err := parseOperatorChain(p.lex, '|', p.parseLogicalAndExpr)
	if err != nil {
		return nil, err
	}
	return spec.LogicalOr(ands), nil
}

// parseLogicalAndExpr parses a logical-and-expr: one or more basic-exprs
// joined by "&&".
func (p *parser) parseLogicalAndExpr() (spec.LogicalAnd, error) {
	exprs, err := parseOperatorChain(p.lex, '&', p.parseBasicExpr)
	if err != nil {
		return nil, err
	}
	return spec.LogicalAnd(exprs), nil
}

// parseBasicExpr parses a basic-expr: a paren-expr, comparison-expr, or
// test-expr (the non-separable leaves of the logical grammar).
func (p *parser) parseBasicExpr() (spec.BasicExpr, error) {
	lex := p.lex
	lex.skipBlankSpace()

	switch tok := lex.scan(); tok.tok {
	case '!':
		return p.parseNegatedExpr()
	case '(':
		return p.parseParenExpr()
	case goString, integer, number, boolFalse, boolTrue, jsonNull:
		left, err := parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		return p.parseComparableExpr(left)
	case identifier:
		if lex.r == '(' {
			return p.parseFunctionFilterExpr(tok)
		}
		return nil, errUnexpected(tok)
	case '@', '$':
		return p.parseQueryOrComparisonExpr(tok)
	default:
		return nil, errUnexpected(tok)
	}
}

// parseNegatedExpr parses what follows a leading '!': either a negated
// parenthesized expression or a non-existence/negated-function test.
func (p *parser) parseNegatedExpr() (spec.BasicExpr, error) {
	lex := p.lex
	if lex.skipBlankSpace() == '(' {
		lex.scan()
		return p.parseNotParenExpr()
	}

	tok := lex.scan()
	if tok.tok == identifier {
		f, err := p.parseFunction(tok)
		if err != nil {
			return nil, err
		}
		return spec.NotFuncExpr{FunctionExpr: f}, nil
	}

	q, err := p.parseFilterQuery(tok)
	if err != nil {
		return nil, err
	}
	return spec.Nonexistence(q), nil
}

// parseQueryOrComparisonExpr parses what follows a leading '@' or '$': a
// filter-query, which is either a bare test-expr (existence test) or, when
// it is singular and followed by a comparison operator, the left side of a
// comparison-expr.
func (p *parser) parseQueryOrComparisonExpr(tok token) (spec.BasicExpr, error) {
	q, err := p.parseFilterQuery(tok)
	if err != nil {
		return nil, err
	}

	if sing := q.Singular(); sing != nil {
		switch p.lex.skipBlankSpace() {
		case '=', '!', '<', '>':
			return p.parseComparableExpr(sing)
		}
	}
	return &spec.ExistExpr{PathQuery: q}, nil
}

// parseFunctionFilterExpr parses a basic-expr beginning with the identifier
// ident, which names a function. A function returning [spec.FuncLogical] is
// itself a test-expr; any other result type must be the left side of a
// comparison-expr.
func (p *parser) parseFunctionFilterExpr(ident token) (spec.BasicExpr, error) {
	f, err := p.parseFunction(ident)
	if err != nil {
		return nil, err
	}

	if f.ResultType() == spec.FuncLogical {
		return f, nil
	}

	switch p.lex.skipBlankSpace() {
	case '=', '!', '<', '>':
		return p.parseComparableExpr(f)
	}
	return nil, errAt(p.lex.scan(), "missing comparison to function result")
}

// parseFilterQuery parses the rel-query or jsonpath-query that begins a
// test-expr or comparison-expr, given its already-scanned leading '@'/'$'.
func (p *parser) parseFilterQuery(tok token) (*spec.PathQuery, error) {
	return p.parseQuery(tok.tok == '$')
}

// parseInnerParenExpr parses a logical-or-expr followed by its closing ')'.
// The caller has already consumed the opening '('.
func (p *parser) parseInnerParenExpr() (spec.LogicalOr, error) {
	expr, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.lex.scan(); tok.tok != ')' {
		return nil, errAt(tok, fmt.Sprintf("expected ')' but found %v", tok.name()))
	}
	return expr, nil
}

// parseParenExpr parses a paren-expr: "(" logical-or-expr ")". The caller
// has already consumed the opening '('.
func (p *parser) parseParenExpr() (*spec.ParenExpr, error) {
	expr, err := p.parseInnerParenExpr()
	if err != nil {
		return nil, err
	}
	return spec.Paren(expr...), nil
}

// parseNotParenExpr parses a logical-not-op paren-expression: "!" "("
// logical-or-expr ")". The caller has already consumed the opening '('.
func (p *parser) parseNotParenExpr() (*spec.NotParenExpr, error) {
	expr, err := p.parseInnerParenExpr()
	if err != nil {
		return nil, err
	}
	return spec.NotParen(expr...), nil
}

// parseFunction parses a function call named by ident, whose arguments are
// validated against the entry registered for that name. Returns an error if
// the function is unregistered or its arguments don't type-check.
func (p *parser) parseFunction(ident token) (*spec.FunctionExpr, error) {
	fn := p.reg.Get(ident.val)
	if fn == nil {
		return nil, errAt(ident, fmt.Sprintf("unknown function %v()", ident.val))
	}

	open := p.lex.scan() // consume '('
	args, err := p.parseFunctionArgs()
	if err != nil {
		return nil, err
	}
	if err := fn.Validate(args); err != nil {
		return nil, errAt(open, fmt.Sprintf("function %v() %v", ident.val, err.Error()))
	}
	return spec.NewFunctionExpr(fn, args), nil
}

// parseFunctionArgs parses the comma-delimited argument list of a function
// call, up to and including the closing ')'. Each argument is a literal,
// filter-query, function-expr, parenthesized logical-expr, or '!'-negated
// test-expr; an unparenthesized logical-expr joined by && or || is not
// accepted as an argument.
func (p *parser) parseFunctionArgs() ([]spec.FunctionExprArg, error) {
	lex := p.lex
	args := []spec.FunctionExprArg{}

	for {
		tok := lex.scan()
		if tok.tok == ')' {
			return args, nil
		}

		arg, err := p.parseOneFunctionArg(tok)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			continue // blank space between arguments
		}
		args = append(args, arg)

		more, err := p.expectMore(')')
		if err != nil {
			return nil, err
		}
		if !more {
			return args, nil
		}
	}
}

// parseOneFunctionArg parses a single function argument from the
// already-scanned token tok. A nil, nil result means tok was blank space
// and the caller should scan again.
func (p *parser) parseOneFunctionArg(tok token) (spec.FunctionExprArg, error) {
	switch tok.tok {
	case goString, integer, number, boolFalse, boolTrue, jsonNull:
		return parseLiteral(tok)
	case '@', '$':
		q, err := p.parseFilterQuery(tok)
		if err != nil {
			return nil, err
		}
		return q.Expression(), nil
	case identifier:
		if p.lex.skipBlankSpace() != '(' {
			return nil, errUnexpected(tok)
		}
		return p.parseFunction(tok)
	case blankSpace:
		return nil, nil
	case '(':
		return p.parseInnerParenExpr()
	case '!':
		expr, err := p.parseNegatedExpr()
		if err != nil {
			return nil, err
		}
		return spec.LogicalOr{spec.LogicalAnd{expr}}, nil
	default:
		return nil, errUnexpected(tok)
	}
}

// parseLiteral converts tok, one of the JSON scalar literal token kinds,
// into a [spec.LiteralArg].
func parseLiteral(tok token) (*spec.LiteralArg, error) {
	switch tok.tok {
	case goString:
		return spec.Literal(tok.val), nil
	case integer:
		n, err := strconv.ParseInt(tok.val, 10, 64)
		if err != nil {
			return nil, errNum(tok, err)
		}
		return spec.Literal(n), nil
	case number:
		f, err := strconv.ParseFloat(tok.val, 64)
		if err != nil {
			return nil, errNum(tok, err)
		}
		return spec.Literal(f), nil
	case boolTrue:
		return spec.Literal(true), nil
	case boolFalse:
		return spec.Literal(false), nil
	case jsonNull:
		return spec.Literal(nil), nil
	default:
		return nil, errUnexpected(tok)
	}
}

// parseComparableExpr parses a comparison-expr's operator and right-hand
// comparable, given its already-parsed left-hand side.
func (p *parser) parseComparableExpr(left spec.CompVal) (*spec.ComparisonExpr, error) {
	lex := p.lex
	lex.skipBlankSpace()

	op, err := parseCompOp(lex)
	if err != nil {
		return nil, err
	}

	lex.skipBlankSpace()
	right, err := p.parseComparableVal(lex.scan())
	if err != nil {
		return nil, err
	}

	return &spec.ComparisonExpr{Left: left, Op: op, Right: right}, nil
}

// parseComparableVal parses a single comparable (literal, singular-query,
// or non-logical function-expr) from the already-scanned token tok.
func (p *parser) parseComparableVal(tok token) (spec.CompVal, error) {
	switch tok.tok {
	case goString, integer, number, boolFalse, boolTrue, jsonNull:
		return parseLiteral(tok)
	case '@', '$':
		return parseSingularQuery(tok, p.lex)
	case identifier:
		if p.lex.r != '(' {
			return nil, errUnexpected(tok)
		}
		f, err := p.parseFunction(tok)
		if err != nil {
			return nil, err
		}
		if f.ResultType() == spec.FuncLogical {
			return nil, errAt(tok, "cannot compare result of logical function")
		}
		return f, nil
	default:
		return nil, errUnexpected(tok)
	}
}

// compOps maps the first rune of a comparison operator to the rune (if any)
// that must follow it and the resulting operator, so single- and
// double-character operators share one table instead of duplicated
// scan-and-check blocks.
var compOps = map[rune]struct {
	second rune
	both   spec.CompOp
	single spec.CompOp // 0 if the operator requires two runes
}{
	'=': {second: '=', both: spec.EqualTo},
	'!': {second: '=', both: spec.NotEqualTo},
	'<': {second: '=', both: spec.LessThanEqualTo, single: spec.LessThan},
	'>': {second: '=', both: spec.GreaterThanEqualTo, single: spec.GreaterThan},
}

// parseCompOp parses a comparison-op: one of "==", "!=", "<", "<=", ">", or
// ">=".
func parseCompOp(lex *lexer) (spec.CompOp, error) {
	tok := lex.scan()
	entry, ok := compOps[tok.tok]
	if !ok {
		return 0, errAt(tok, "invalid comparison operator")
	}
	if lex.r == entry.second {
		lex.scan()
		return entry.both, nil
	}
	if entry.single != 0 {
		return entry.single, nil
	}
	return 0, errAt(tok, "invalid comparison operator")
}

// parseSingularQuery parses a singular-query: a rel-query or jsonpath-query
// restricted to name-selector and index-selector steps, given its
// already-scanned leading '@'/'$'.
func parseSingularQuery(start token, lex *lexer) (*spec.SingularQueryExpr, error) {
	selectors := []spec.Selector{}

	for {
		switch lex.r {
		case '[':
			lex.skipBlankSpace()
			lex.scan()
			sel, err := parseSingularBracketStep(lex)
			if err != nil {
				return nil, err
			}
			selectors = append(selectors, sel)
			lex.skipBlankSpace()
			if tok := lex.scan(); tok.tok != ']' {
				return nil, errUnexpected(tok)
			}
		case '.':
			lex.scan()
			tok := lex.scan()
			if tok.tok != identifier {
				return nil, errUnexpected(tok)
			}
			selectors = append(selectors, spec.Name(tok.val))
		default:
			return spec.SingularQuery(start.tok == '$', selectors...), nil
		}
	}
}

// parseSingularBracketStep parses the name- or index-selector inside a
// singular query's bracket step, having already consumed the '['.
func parseSingularBracketStep(lex *lexer) (spec.Selector, error) {
	switch tok := lex.scan(); tok.tok {
	case goString:
		return spec.Name(tok.val), nil
	case integer:
		idx, err := parseIndexInt(tok)
		if err != nil {
			return nil, err
		}
		return spec.Index(idx), nil
	default:
		return nil, errUnexpected(tok)
	}
}
