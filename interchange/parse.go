package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/tidwall/jsonc"
)

// ParseOptions configures the parser behavior.
type ParseOptions struct {
	// Tolerant accepts // and /* */ comments and trailing commas.
	Tolerant bool
}

// Parse parses interchange text into a Value. Map entries keep their
// order of appearance; a repeated key keeps its first position and
// takes the last value.
func Parse(input string) (*Value, error) {
	return ParseWithOptions(input, ParseOptions{})
}

// ParseWithOptions parses with full options.
func ParseWithOptions(input string, opts ParseOptions) (*Value, error) {
	data := []byte(input)
	if opts.Tolerant {
		// jsonc blanks comments and trailing commas in place, so byte
		// offsets still point into the caller's text.
		data = jsonc.ToJSON(data)
	}

	p := &parser{input: []byte(input), dec: json.NewDecoder(bytes.NewReader(data))}
	p.dec.UseNumber()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	// Anything but whitespace after the root value is an error.
	rest := p.skipSpace(p.dec.InputOffset())
	if _, err := p.dec.Token(); err != io.EOF {
		if err == nil {
			return nil, p.errorAt(rest, "unexpected data after top-level value")
		}
		return nil, p.wrap(err)
	}
	return value, nil
}

// UnmarshalJSON lets a *Value be the target of encoding/json.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// parser turns the decoder's token stream into a Value tree.
type parser struct {
	input []byte
	dec   *json.Decoder
}

func (p *parser) parseValue() (*Value, error) {
	start := p.dec.InputOffset()
	tok, err := p.dec.Token()
	if err != nil {
		return nil, p.wrap(err)
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		// Literals beyond float64 range are well-formed and become ±Inf,
		// which Serialize and the other encoders reject.
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, p.errorAt(start, "invalid number: "+t.String())
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return p.parseList()
		case '{':
			return p.parseMap()
		}
	}
	return nil, p.errorAt(start, "unexpected token")
}

func (p *parser) parseList() (*Value, error) {
	list := List()
	for p.dec.More() {
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list.listVal = append(list.listVal, elem)
	}
	if _, err := p.dec.Token(); err != nil { // ']'
		return nil, p.wrap(err)
	}
	return list, nil
}

func (p *parser) parseMap() (*Value, error) {
	m := Map()
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, p.errorAt(p.dec.InputOffset(), "object key must be a string")
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	if _, err := p.dec.Token(); err != nil { // '}'
		return nil, p.wrap(err)
	}
	return m, nil
}

// wrap converts decoder errors into *ParseError with a position.
// SyntaxError.Offset only counts bytes the decoder scanned as values,
// not delimiters consumed by Token, so the position comes from the
// decoder's input offset: the offending character for structural
// errors, the start of the offending value otherwise.
func (p *parser) wrap(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return p.errorAt(p.dec.InputOffset(), syntaxErr.Error())
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return p.errorAt(int64(len(p.input)), "unexpected end of input")
	}
	return &ParseError{Message: err.Error()}
}

func (p *parser) skipSpace(offset int64) int64 {
	for offset < int64(len(p.input)) {
		switch p.input[offset] {
		case ' ', '\t', '\n', '\r':
			offset++
		default:
			return offset
		}
	}
	return offset
}

func (p *parser) errorAt(offset int64, msg string) error {
	return &ParseError{Message: msg, Pos: positionAt(p.input, int(offset))}
}
