// Package expr compiles the conditional requirement rules attached to form
// fields.
//
// Supported syntax:
//   - truthiness checks: `phone-checkbox`
//   - comparisons: `phone-checkbox == true`, `product != "blog"`, `count == 3`
//   - composition: `a && !b`, `(a || b) && c == "x"`
//
// Identifiers may contain letters, digits, '_', '-' and '.', which matches the
// ids used by the contact page. Values are looked up through an Env as plain
// strings; a missing identifier behaves like an empty value.
package expr

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Env resolves identifiers to their current string value.
type Env interface {
	Lookup(name string) (string, bool)
}

// MapEnv adapts a map into an Env.
type MapEnv map[string]string

// Lookup returns the value stored under name.
func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Rule is a compiled expression. The zero value and the rule compiled from an
// empty string always evaluate to false.
type Rule struct {
	src  string
	root node
}

// Compile parses src into a Rule.
func Compile(src string) (*Rule, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return &Rule{}, nil
	}
	tokens, err := lex(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("expr: unexpected token %q in %q", p.tokens[p.pos].text, trimmed)
	}
	return &Rule{src: trimmed, root: root}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Rule {
	rule, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return rule
}

// String returns the normalised source of the rule.
func (r *Rule) String() string {
	if r == nil {
		return ""
	}
	return r.src
}

// Empty reports whether the rule has no expression.
func (r *Rule) Empty() bool {
	return r == nil || r.root == nil
}

// Eval evaluates the rule against env.
func (r *Rule) Eval(env Env) bool {
	if r.Empty() {
		return false
	}
	if env == nil {
		env = MapEnv(nil)
	}
	return r.root.eval(env)
}

// Identifiers lists the identifiers referenced by the rule in sorted order.
func (r *Rule) Identifiers() []string {
	if r.Empty() {
		return nil
	}
	seen := make(map[string]struct{})
	r.root.collect(seen)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

func lex(input string) ([]token, error) {
	var out []token
	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			out = append(out, token{tokLParen, "("})
			i++
		case ch == ')':
			out = append(out, token{tokRParen, ")"})
			i++
		case strings.HasPrefix(input[i:], "=="):
			out = append(out, token{tokEq, "=="})
			i += 2
		case strings.HasPrefix(input[i:], "!="):
			out = append(out, token{tokNeq, "!="})
			i += 2
		case strings.HasPrefix(input[i:], "&&"):
			out = append(out, token{tokAnd, "&&"})
			i += 2
		case strings.HasPrefix(input[i:], "||"):
			out = append(out, token{tokOr, "||"})
			i += 2
		case ch == '!':
			out = append(out, token{tokNot, "!"})
			i++
		case ch == '"' || ch == '\'':
			end := strings.IndexByte(input[i+1:], ch)
			if end < 0 {
				return nil, errors.New("expr: unterminated string literal")
			}
			out = append(out, token{tokString, input[i+1 : i+1+end]})
			i += end + 2
		case isDigit(ch):
			start := i
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				i++
			}
			if _, err := strconv.ParseFloat(input[start:i], 64); err != nil {
				return nil, fmt.Errorf("expr: invalid number %q", input[start:i])
			}
			out = append(out, token{tokNumber, input[start:i]})
		case isIdentStart(ch):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			word := input[start:i]
			switch word {
			case "true", "false":
				out = append(out, token{tokBool, word})
			default:
				out = append(out, token{tokIdent, word})
			}
		default:
			return nil, fmt.Errorf("expr: unexpected character %q", ch)
		}
	}
	return out, nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '-' || ch == '.'
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) accept(kind tokenKind) bool {
	if tok, ok := p.peek(); ok && tok.kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *parser) and() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.accept(tokNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	if p.accept(tokLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokRParen) {
			return nil, errors.New("expr: missing closing ')'")
		}
		return inner, nil
	}

	tok, ok := p.peek()
	if !ok {
		return nil, errors.New("expr: unexpected end of expression")
	}
	if tok.kind != tokIdent {
		return nil, fmt.Errorf("expr: expected identifier, got %q", tok.text)
	}
	p.pos++

	negate := false
	switch {
	case p.accept(tokEq):
	case p.accept(tokNeq):
		negate = true
	default:
		return truthyNode{name: tok.text}, nil
	}

	lit, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("expr: missing value after %q", tok.text)
	}
	switch lit.kind {
	case tokString, tokNumber, tokBool:
	default:
		return nil, fmt.Errorf("expr: expected literal, got %q", lit.text)
	}
	p.pos++
	return compareNode{name: tok.text, lit: lit, negate: negate}, nil
}

type node interface {
	eval(env Env) bool
	collect(into map[string]struct{})
}

type orNode struct{ left, right node }

func (n orNode) eval(env Env) bool { return n.left.eval(env) || n.right.eval(env) }
func (n orNode) collect(into map[string]struct{}) {
	n.left.collect(into)
	n.right.collect(into)
}

type andNode struct{ left, right node }

func (n andNode) eval(env Env) bool { return n.left.eval(env) && n.right.eval(env) }
func (n andNode) collect(into map[string]struct{}) {
	n.left.collect(into)
	n.right.collect(into)
}

type notNode struct{ inner node }

func (n notNode) eval(env Env) bool                { return !n.inner.eval(env) }
func (n notNode) collect(into map[string]struct{}) { n.inner.collect(into) }

type truthyNode struct{ name string }

func (n truthyNode) eval(env Env) bool {
	value, _ := env.Lookup(n.name)
	return truthy(value)
}

func (n truthyNode) collect(into map[string]struct{}) { into[n.name] = struct{}{} }

type compareNode struct {
	name   string
	lit    token
	negate bool
}

func (n compareNode) eval(env Env) bool {
	value, _ := env.Lookup(n.name)
	var equal bool
	switch n.lit.kind {
	case tokBool:
		equal = truthy(value) == (n.lit.text == "true")
	case tokNumber:
		want, _ := strconv.ParseFloat(n.lit.text, 64)
		got, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		equal = err == nil && got == want
	default:
		equal = value == n.lit.text
	}
	return equal != n.negate
}

func (n compareNode) collect(into map[string]struct{}) { into[n.name] = struct{}{} }

func truthy(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	if parsed, err := strconv.ParseBool(trimmed); err == nil {
		return parsed
	}
	return true
}
