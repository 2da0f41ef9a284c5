// Package parser parses RFC 9535 JSONPath queries into parse trees. Most
// JSONPath users will use package [github.com/rfc9535/jsonpath] instead of
// this package directly.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rfc9535/jsonpath/registry"
	"github.com/rfc9535/jsonpath/spec"
)

// ErrPathParse is the sentinel wrapped by every error this package returns.
// Test for it with [errors.Is].
var ErrPathParse = errors.New("jsonpath")

// errAt wraps msg as an [ErrPathParse] error positioned at tok.
func errAt(tok token, msg string) error {
	return fmt.Errorf("%w: %v at position %v", ErrPathParse, msg, tok.pos+1)
}

// errUnexpected builds an "unexpected token" [ErrPathParse] for tok. An
// invalid token carries the lexer's own diagnostic in tok.val; anything else
// is reported by its token name.
func errUnexpected(tok token) error {
	if tok.tok == invalid {
		return errAt(tok, tok.val)
	}
	return errAt(tok, "unexpected "+tok.name())
}

// errNum rewrites a [strconv.NumError] returned while parsing tok's numeric
// value into an [ErrPathParse].
func errNum(tok token, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return errAt(tok, fmt.Sprintf("cannot parse %q, %v", numErr.Num, numErr.Err.Error()))
	}
	return errAt(tok, err.Error())
}

// parser holds the state shared by the recursive-descent parsing methods
// below: the token source and the function registry used to validate
// function calls encountered in filter expressions.
type parser struct {
	lex *lexer
	reg *registry.Registry
}

// Parse parses path, an RFC 9535 JSONPath query string, into a
// [spec.PathQuery] using reg to validate any function calls it contains.
// Returns an [ErrPathParse] error on parse failure.
func Parse(reg *registry.Registry, path string) (*spec.PathQuery, error) {
	lex := newLexer(path)
	p := parser{lex: lex, reg: reg}

	switch tok := lex.scan(); tok.tok {
	case '$':
		query, err := p.parseQuery(true)
		if err != nil {
			return nil, err
		}
		if lex.r != eof {
			return nil, errUnexpected(lex.scan())
		}
		return query, nil
	case eof:
		return nil, fmt.Errorf("%w: unexpected end of input", ErrPathParse)
	default:
		return nil, errUnexpected(tok)
	}
}

// expectMore scans past any blank space following a list item and reports
// whether another item follows. A comma consumes itself and returns true; a
// close rune consumes itself and returns false; anything else is an error.
// Shared by the two comma-delimited lists in this package: bracketed
// selector lists and function argument lists.
func (p *parser) expectMore(close rune) (bool, error) {
	lex := p.lex
	switch lex.skipBlankSpace() {
	case ',':
		lex.scan()
		return true, nil
	case close:
		lex.scan()
		return false, nil
	default:
		return false, errUnexpected(lex.scan())
	}
}

// parseQuery parses the segments of a jsonpath-query or rel-query. lex.r
// must already be positioned just past the leading '$' or '@' when called.
func (p *parser) parseQuery(root bool) (*spec.PathQuery, error) {
	lex := p.lex
	segs := []*spec.Segment{}

	for {
		switch {
		case lex.r == '[':
			lex.scan()
			selectors, err := p.parseSelectors()
			if err != nil {
				return nil, err
			}
			segs = append(segs, spec.Child(selectors...))
		case lex.r == '.':
			lex.scan()
			if lex.r == '.' {
				lex.scan()
				seg, err := p.parseDescendant()
				if err != nil {
					return nil, err
				}
				segs = append(segs, seg)
				continue
			}
			sel, err := p.parseNameOrWildcard()
			if err != nil {
				return nil, err
			}
			segs = append(segs, spec.Child(sel))
		case lex.isBlankSpace(lex.r):
			// Blank space may separate segments; skip it when another
			// segment follows, otherwise the query ends here.
			if next := lex.peekPastBlankSpace(); next == '.' || next == '[' {
				lex.scanBlankSpace()
				continue
			}
			return spec.Query(root, segs...), nil
		default:
			return spec.Query(root, segs...), nil
		}
	}
}

// parseNameOrWildcard parses the dot-shorthand form of a child segment: a
// bare member name or '*'.
func (p *parser) parseNameOrWildcard() (spec.Selector, error) {
	switch tok := p.lex.scan(); tok.tok {
	case identifier:
		return spec.Name(tok.val), nil
	case '*':
		return spec.Wildcard, nil
	default:
		return nil, errUnexpected(tok)
	}
}

// parseDescendant parses what follows a ".." token: either a bracketed
// selector list, a wildcard, or a bare member name.
func (p *parser) parseDescendant() (*spec.Segment, error) {
	switch tok := p.lex.scan(); tok.tok {
	case '[':
		selectors, err := p.parseSelectors()
		if err != nil {
			return nil, err
		}
		return spec.Descendant(selectors...), nil
	case identifier:
		return spec.Descendant(spec.Name(tok.val)), nil
	case '*':
		return spec.Descendant(spec.Wildcard), nil
	default:
		return nil, errUnexpected(tok)
	}
}

// indexBounds are the inclusive bounds RFC 9535 places on an integer used
// as an index or slice bound: ±(2**53-1), the JSON-safe integer range.
const (
	minIndex = -1<<53 + 1
	maxIndex = 1<<53 - 1
)

// parseIndexInt parses tok as the signed integer used by an index selector
// or a slice bound/step, rejecting "-0" and anything outside ±(2**53-1).
func parseIndexInt(tok token) (int64, error) {
	if tok.val == "-0" {
		return 0, errAt(tok, fmt.Sprintf("invalid integer path value %q", tok.val))
	}
	n, err := strconv.ParseInt(tok.val, 10, 64)
	if err != nil {
		return 0, errNum(tok, err)
	}
	if n > maxIndex || n < minIndex {
		return 0, errAt(tok, fmt.Sprintf("cannot parse %q, value out of range", tok.val))
	}
	return n, nil
}

// parseSelectors parses the comma-separated selector-list of a bracketed
// segment. lex.scan() must already have consumed the opening '['.
func (p *parser) parseSelectors() ([]spec.Selector, error) {
	lex := p.lex
	var selectors []spec.Selector

	for {
		sel, err := p.parseOneSelector(lex.scan())
		if err != nil {
			return nil, err
		}
		if sel != nil {
			selectors = append(selectors, sel)
		} else {
			continue // blank space between selectors
		}

		more, err := p.expectMore(']')
		if err != nil {
			return nil, err
		}
		if !more {
			return selectors, nil
		}
	}
}

// parseOneSelector parses a single member of a bracketed selector list from
// the already-scanned token tok. A nil, nil result means tok was blank
// space and the caller should scan again.
func (p *parser) parseOneSelector(tok token) (spec.Selector, error) {
	switch tok.tok {
	case '?':
		return p.parseFilter()
	case '*':
		return spec.Wildcard, nil
	case goString:
		return spec.Name(tok.val), nil
	case ':':
		return p.parseSlice(tok)
	case integer:
		if p.lex.skipBlankSpace() == ':' {
			return p.parseSlice(tok)
		}
		idx, err := parseIndexInt(tok)
		if err != nil {
			return nil, err
		}
		return spec.Index(idx), nil
	case blankSpace:
		return nil, nil
	default:
		return nil, errUnexpected(tok)
	}
}

// parseSlice parses a slice selector start:end:step, having already scanned
// its first token (start or a bare ':').
func (p *parser) parseSlice(tok token) (spec.SliceSelector, error) {
	lex := p.lex
	var args [3]any

	for part := 0; part < 3; {
		switch tok.tok {
		case ':':
			part++
		case integer:
			n, err := parseIndexInt(tok)
			if err != nil {
				return spec.SliceSelector{}, err
			}
			args[part] = int(n)
		default:
			return spec.SliceSelector{}, errUnexpected(tok)
		}

		switch next := lex.skipBlankSpace(); next {
		case ']', ',':
			return spec.Slice(args[0], args[1], args[2]), nil
		default:
			tok = lex.scan()
		}
	}

	return spec.SliceSelector{}, errUnexpected(tok)
}
