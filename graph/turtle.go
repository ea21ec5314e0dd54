package graph

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/c360studio/bioalign/vocabulary/rdf"
)

// ErrParse wraps all Turtle reader failures. A parse failure aborts the
// run; callers surface it rather than degrading.
var ErrParse = errors.New("parse error")

// ParseTurtleFile reads a Turtle ontology file into a graph.
func ParseTurtleFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	g, err := ParseTurtle(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ParseTurtle reads Turtle from r into a new graph. The reader covers
// the Turtle subset produced by common ontology tooling: prefix and base
// directives, predicate lists (;), object lists (,), IRIs, prefixed
// names, blank node labels, and plain, language-tagged, typed, numeric,
// and boolean literals. Collections and anonymous blank node property
// lists are not supported.
func ParseTurtle(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read input: %v", ErrParse, err)
	}

	p := &turtleParser{input: []rune(string(data)), graph: New(), line: 1}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

type turtleParser struct {
	input []rune
	pos   int
	line  int
	base  string
	graph *Graph
}

func (p *turtleParser) errf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrParse, p.line, fmt.Sprintf(format, args...))
}

func (p *turtleParser) eof() bool { return p.pos >= len(p.input) }

func (p *turtleParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *turtleParser) next() rune {
	r := p.input[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

func (p *turtleParser) skipSpace() {
	for !p.eof() {
		r := p.peek()
		switch {
		case unicode.IsSpace(r):
			p.next()
		case r == '#':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		default:
			return
		}
	}
}

func (p *turtleParser) parse() error {
	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}
		if p.hasDirective() {
			if err := p.parseDirective(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
}

func (p *turtleParser) hasDirective() bool {
	rest := strings.ToLower(string(p.input[p.pos:min(p.pos+8, len(p.input))]))
	return strings.HasPrefix(rest, "@prefix") || strings.HasPrefix(rest, "@base") ||
		strings.HasPrefix(rest, "prefix ") || strings.HasPrefix(rest, "base ")
}

func (p *turtleParser) parseDirective() error {
	word := p.readWord()
	sparqlForm := !strings.HasPrefix(word, "@")
	directive := strings.ToLower(strings.TrimPrefix(word, "@"))

	switch directive {
	case "prefix":
		p.skipSpace()
		prefix := p.readUntil(':')
		if p.eof() || p.next() != ':' {
			return p.errf("malformed prefix directive")
		}
		p.skipSpace()
		iri, err := p.parseIRIRef()
		if err != nil {
			return err
		}
		p.graph.Bind(prefix, iri)
	case "base":
		p.skipSpace()
		iri, err := p.parseIRIRef()
		if err != nil {
			return err
		}
		p.base = iri
	default:
		return p.errf("unknown directive %q", word)
	}

	p.skipSpace()
	if !sparqlForm {
		if p.eof() || p.next() != '.' {
			return p.errf("directive missing terminating dot")
		}
	}
	return nil
}

func (p *turtleParser) parseStatement() error {
	subject, err := p.parseSubject()
	if err != nil {
		return err
	}

	for {
		p.skipSpace()
		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}

		for {
			p.skipSpace()
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.graph.Add(Triple{Subject: subject, Predicate: predicate, Object: object})

			p.skipSpace()
			if p.peek() == ',' {
				p.next()
				continue
			}
			break
		}

		switch p.peek() {
		case ';':
			p.next()
			p.skipSpace()
			// Tolerate a trailing semicolon before the dot.
			if p.peek() == '.' {
				p.next()
				return nil
			}
			continue
		case '.':
			p.next()
			return nil
		default:
			return p.errf("expected ';' or '.' after object")
		}
	}
}

func (p *turtleParser) parseSubject() (string, error) {
	p.skipSpace()
	switch {
	case p.peek() == '<':
		return p.parseIRIRef()
	case p.hasPrefix("_:"):
		return p.parseBlankNodeLabel(), nil
	case p.peek() == '[':
		return "", p.errf("anonymous blank nodes are not supported")
	default:
		return p.parsePrefixedName()
	}
}

func (p *turtleParser) parsePredicate() (string, error) {
	if p.peek() == '<' {
		return p.parseIRIRef()
	}
	// The 'a' keyword abbreviates rdf:type.
	if p.peek() == 'a' && p.pos+1 < len(p.input) && unicode.IsSpace(p.input[p.pos+1]) {
		p.next()
		return rdf.Type, nil
	}
	return p.parsePrefixedName()
}

func (p *turtleParser) parseObject() (Object, error) {
	switch {
	case p.peek() == '<':
		iri, err := p.parseIRIRef()
		if err != nil {
			return Object{}, err
		}
		return IRI(iri), nil
	case p.peek() == '"' || p.peek() == '\'':
		return p.parseLiteral()
	case p.hasPrefix("_:"):
		return IRI(p.parseBlankNodeLabel()), nil
	case p.peek() == '(' || p.peek() == '[':
		return Object{}, p.errf("collections and anonymous blank nodes are not supported")
	case p.hasPrefix("true") && p.atTermBoundary(4):
		p.pos += 4
		return TypedLiteral("true", rdf.XSDBoolean), nil
	case p.hasPrefix("false") && p.atTermBoundary(5):
		p.pos += 5
		return TypedLiteral("false", rdf.XSDBoolean), nil
	case p.peek() == '+' || p.peek() == '-' || unicode.IsDigit(p.peek()):
		return p.parseNumber(), nil
	default:
		name, err := p.parsePrefixedName()
		if err != nil {
			return Object{}, err
		}
		return IRI(name), nil
	}
}

func (p *turtleParser) parseIRIRef() (string, error) {
	if p.eof() || p.next() != '<' {
		return "", p.errf("expected IRI")
	}
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated IRI")
		}
		r := p.next()
		if r == '>' {
			break
		}
		sb.WriteRune(r)
	}
	iri := sb.String()
	if p.base != "" && !strings.Contains(iri, "://") && !strings.HasPrefix(iri, "urn:") {
		iri = p.base + iri
	}
	return iri, nil
}

func (p *turtleParser) parsePrefixedName() (string, error) {
	start := p.pos
	prefix := p.readUntil(':')
	if p.eof() || p.peek() != ':' {
		p.pos = start
		return "", p.errf("expected IRI or prefixed name")
	}
	p.next() // ':'

	var local strings.Builder
	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || r == ';' || r == ',' || (r == '.' && p.atStatementEnd()) {
			break
		}
		local.WriteRune(p.next())
	}

	ns, ok := p.graph.prefixes[prefix]
	if !ok {
		return "", p.errf("unknown prefix %q", prefix)
	}
	return ns + local.String(), nil
}

// atStatementEnd reports whether the dot at the current position ends a
// statement (followed by whitespace or EOF) rather than being part of a
// local name such as a version number.
func (p *turtleParser) atStatementEnd() bool {
	if p.pos+1 >= len(p.input) {
		return true
	}
	return unicode.IsSpace(p.input[p.pos+1]) || p.input[p.pos+1] == '#'
}

func (p *turtleParser) parseBlankNodeLabel() string {
	var sb strings.Builder
	sb.WriteString("_:")
	p.pos += 2
	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || r == ';' || r == ',' || (r == '.' && p.atStatementEnd()) {
			break
		}
		sb.WriteRune(p.next())
	}
	return sb.String()
}

func (p *turtleParser) parseLiteral() (Object, error) {
	quote := p.next()
	long := false
	if p.hasPrefix(string([]rune{quote, quote})) {
		// Long form """...""" or '''...'''.
		p.next()
		p.next()
		long = true
	}

	var sb strings.Builder
	for {
		if p.eof() {
			return Object{}, p.errf("unterminated string literal")
		}
		r := p.next()
		if r == '\\' {
			if p.eof() {
				return Object{}, p.errf("unterminated escape sequence")
			}
			esc := p.next()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"', '\'', '\\':
				sb.WriteRune(esc)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			continue
		}
		if r == quote {
			if !long {
				break
			}
			if p.hasPrefix(string([]rune{quote, quote})) {
				p.next()
				p.next()
				break
			}
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(r)
	}

	value := sb.String()
	switch {
	case p.peek() == '@':
		p.next()
		var lang strings.Builder
		for !p.eof() && (unicode.IsLetter(p.peek()) || unicode.IsDigit(p.peek()) || p.peek() == '-') {
			lang.WriteRune(p.next())
		}
		return LangLiteral(value, lang.String()), nil
	case p.hasPrefix("^^"):
		p.pos += 2
		var datatype string
		var err error
		if p.peek() == '<' {
			datatype, err = p.parseIRIRef()
		} else {
			datatype, err = p.parsePrefixedName()
		}
		if err != nil {
			return Object{}, err
		}
		return TypedLiteral(value, datatype), nil
	default:
		return Literal(value), nil
	}
}

func (p *turtleParser) parseNumber() Object {
	var sb strings.Builder
	decimal := false
	for !p.eof() {
		r := p.peek()
		if unicode.IsDigit(r) || r == '+' || r == '-' || r == 'e' || r == 'E' {
			sb.WriteRune(p.next())
			continue
		}
		if r == '.' && !p.atStatementEnd() {
			decimal = true
			sb.WriteRune(p.next())
			continue
		}
		break
	}
	if decimal {
		return TypedLiteral(sb.String(), rdf.XSDDecimal)
	}
	return TypedLiteral(sb.String(), rdf.XSDInteger)
}

func (p *turtleParser) hasPrefix(s string) bool {
	return strings.HasPrefix(string(p.input[p.pos:min(p.pos+len(s), len(p.input))]), s)
}

func (p *turtleParser) atTermBoundary(offset int) bool {
	if p.pos+offset >= len(p.input) {
		return true
	}
	r := p.input[p.pos+offset]
	return unicode.IsSpace(r) || r == ';' || r == ',' || r == '.'
}

func (p *turtleParser) readWord() string {
	var sb strings.Builder
	for !p.eof() && !unicode.IsSpace(p.peek()) {
		sb.WriteRune(p.next())
	}
	return sb.String()
}

func (p *turtleParser) readUntil(stop rune) string {
	var sb strings.Builder
	for !p.eof() {
		r := p.peek()
		if r == stop || unicode.IsSpace(r) {
			break
		}
		sb.WriteRune(p.next())
	}
	return sb.String()
}
