package jsonpath

import (
	"github.com/rfc9535/jsonpath/parser"
	"github.com/rfc9535/jsonpath/registry"
)

// Parser parses JSONPath queries into [Path] values, using a [registry.Registry]
// of function extensions to validate any function calls used in filter
// expressions.
type Parser struct {
	reg *registry.Registry
}

// Option defines a Parser option used to configure the behavior of
// [NewParser].
type Option func(*Parser)

// WithRegistry configures a [Parser] to use reg instead of the default
// function extension registry returned by [registry.New]. Use it to
// register custom function extensions with [registry.Registry.Register]
// before constructing a [Parser].
func WithRegistry(reg *registry.Registry) Option {
	return func(p *Parser) { p.reg = reg }
}

// NewParser creates a new Parser. By default it uses a registry loaded with
// the [RFC 9535]-mandated function extensions; pass [WithRegistry] to use a
// registry with additional function extensions registered.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
func NewParser(opt ...Option) *Parser {
	p := &Parser{reg: registry.New()}
	for _, o := range opt {
		o(p)
	}
	return p
}

// Parse parses path, a JSONPath query string, into a [Path]. Returns an
// [ErrPathParse] error on parse failure.
func (p *Parser) Parse(path string) (*Path, error) {
	q, err := parser.Parse(p.reg, path)
	if err != nil {
		return nil, err
	}
	return &Path{q: q}, nil
}

// MustParse parses path into a [Path]. It panics if path fails to parse.
func (p *Parser) MustParse(path string) *Path {
	pp, err := p.Parse(path)
	if err != nil {
		panic(err)
	}
	return pp
}

// Parse parses path, a JSONPath query string, into a [Path], using the
// default function extension registry returned by [registry.New]. Returns
// an [ErrPathParse] error on parse failure. Use [NewParser] and
// [WithRegistry] to parse with custom function extensions.
func Parse(path string) (*Path, error) {
	return NewParser().Parse(path)
}

// MustParse parses path into a [Path] using the default function extension
// registry. It panics if path fails to parse.
func MustParse(path string) *Path {
	return NewParser().MustParse(path)
}
