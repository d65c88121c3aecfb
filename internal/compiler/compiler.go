// Package compiler implements the single-pass Pratt expression compiler:
// it scans and parses in lockstep, emitting bytecode directly into a
// chunk as each rule fires rather than building an intermediate AST.
package compiler

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/houthacker/hdb/internal/chunk"
	"github.com/houthacker/hdb/internal/heap"
	"github.com/houthacker/hdb/internal/scanner"
	"github.com/houthacker/hdb/internal/ustring"
	"github.com/houthacker/hdb/internal/value"
)

// Precedence orders binary operators from loosest to tightest binding.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

// parseFn is a prefix or infix handler bound to a token kind.
type parseFn func(c *compiler)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the parse-rule table keyed by token kind, populated per
// SPEC_FULL.md §4.5. Kinds with no entry default to {nil, nil, PrecNone}.
var rules map[scanner.TokenKind]parseRule

func init() {
	rules = map[scanner.TokenKind]parseRule{
		scanner.LeftParen:     {prefix: (*compiler).grouping},
		scanner.Minus:         {prefix: (*compiler).unary, infix: (*compiler).binary, precedence: PrecTerm},
		scanner.Plus:          {infix: (*compiler).binary, precedence: PrecTerm},
		scanner.Asterisk:      {infix: (*compiler).binary, precedence: PrecFactor},
		scanner.ForwardSlash:  {infix: (*compiler).binary, precedence: PrecFactor},
		scanner.Bang:          {prefix: (*compiler).unary},
		scanner.Equals:        {infix: (*compiler).binary, precedence: PrecEquality},
		scanner.NotEqual:      {infix: (*compiler).binary, precedence: PrecEquality},
		scanner.LessThan:      {infix: (*compiler).binary, precedence: PrecComparison},
		scanner.LessEqual:     {infix: (*compiler).binary, precedence: PrecComparison},
		scanner.GreaterThan:   {infix: (*compiler).binary, precedence: PrecComparison},
		scanner.GreaterEqual:  {infix: (*compiler).binary, precedence: PrecComparison},
		scanner.Number:        {prefix: (*compiler).number},
		scanner.String:        {prefix: (*compiler).string},
		scanner.KWTrue:        {prefix: (*compiler).literal},
		scanner.KWFalse:       {prefix: (*compiler).literal},
		scanner.KWNull:        {prefix: (*compiler).literal},
	}
}

func ruleFor(kind scanner.TokenKind) parseRule {
	return rules[kind]
}

// compiler holds the transient state of a single Compile call: the
// token cursor, the chunk being emitted into, the heap strings are
// allocated from, and panic-mode error bookkeeping. Per SPEC_FULL.md's
// design note, nothing here survives past the call that creates it --
// there is no retained global parser state between compiles.
type compiler struct {
	scanner *scanner.Scanner
	h       *heap.Heap
	chunk   *chunk.Chunk

	previous scanner.Token
	current  scanner.Token

	hadError  bool
	panicMode bool
	errs      []error

	stackSize          int
	stackHighWaterMark int
}

// Compile scans and parses source into a fresh chunk, allocating any
// string constants on h. It returns the chunk and nil on success, or a
// nil chunk and a non-nil error (wrapping every diagnostic produced)
// on failure.
func Compile(source string, h *heap.Heap) (*chunk.Chunk, error) {
	c := &compiler{
		scanner: scanner.New(source),
		h:       h,
		chunk:   chunk.New(),
	}

	c.advance()
	c.expression()
	c.consume(scanner.Eof, "Expect end of expression.")
	c.emitOp(chunk.OpReturn)
	c.chunk.SetStackHighWaterMark(c.stackHighWaterMark)

	if c.hadError {
		return nil, errors.Wrap(joinErrors(c.errs), "compile error")
	}
	return c.chunk, nil
}

func joinErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (c *compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.ScanToken()
		if c.current.Kind != scanner.Error {
			return
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *compiler) consume(kind scanner.TokenKind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *compiler) check(kind scanner.TokenKind) bool { return c.current.Kind == kind }

func (c *compiler) match(kind scanner.TokenKind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *compiler) error(message string)          { c.errorAt(c.previous, message) }

func (c *compiler) errorAt(tok scanner.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.errs = append(c.errs, errors.Errorf("[line %d] Error: %s", tok.Line, message))
}

// expression parses and emits a full expression at the loosest
// precedence that still binds (ASSIGNMENT is the lowest level the
// grammar actually supports today, per SPEC_FULL.md §4.5).
func (c *compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefixRule := ruleFor(c.previous.Kind).prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}
	prefixRule(c)

	for prec <= ruleFor(c.current.Kind).precedence {
		c.advance()
		infixRule := ruleFor(c.previous.Kind).infix
		infixRule(c)
	}
}

func (c *compiler) grouping() {
	c.expression()
	c.consume(scanner.RightParen, "Expect ')' after expression.")
}

func (c *compiler) number() {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

// string strips the enclosing single quotes and unescapes `\'` before
// allocating the heap string, mirroring the C source's quote-stripping
// in its string() parse rule.
func (c *compiler) string() {
	lexeme := c.previous.Lexeme
	body := lexeme[1 : len(lexeme)-1]
	unescaped := strings.ReplaceAll(body, `\'`, "'")

	s, err := ustring.Create(c.h, []byte(unescaped))
	if err != nil {
		c.error("Out of memory allocating string constant.")
		return
	}
	c.emitConstant(value.Object(s))
}

func (c *compiler) literal() {
	switch c.previous.Kind {
	case scanner.KWTrue:
		c.emitOp(chunk.OpTrue)
	case scanner.KWFalse:
		c.emitOp(chunk.OpFalse)
	case scanner.KWNull:
		c.emitOp(chunk.OpNull)
	default:
		panic("compiler: literal() called on non-literal token")
	}
	c.adjustStack(1)
}

func (c *compiler) unary() {
	kind := c.previous.Kind
	c.parsePrecedence(PrecUnary)

	switch kind {
	case scanner.Minus:
		c.emitOp(chunk.OpNegate)
	case scanner.Bang:
		c.emitOp(chunk.OpNot)
	}
	// Unary ops pop one operand and push one result: net stack effect 0.
}

func (c *compiler) binary() {
	opKind := c.previous.Kind
	rule := ruleFor(opKind)
	c.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case scanner.Plus:
		c.emitOp(chunk.OpAdd)
	case scanner.Minus:
		c.emitOp(chunk.OpSubtract)
	case scanner.Asterisk:
		c.emitOp(chunk.OpMultiply)
	case scanner.ForwardSlash:
		c.emitOp(chunk.OpDivide)
	case scanner.Equals:
		c.emitOp(chunk.OpEqual)
	case scanner.NotEqual:
		c.emitOp(chunk.OpNotEqual)
	case scanner.LessThan:
		c.emitOp(chunk.OpLess)
	case scanner.LessEqual:
		c.emitOp(chunk.OpLessEqual)
	case scanner.GreaterThan:
		c.emitOp(chunk.OpGreater)
	case scanner.GreaterEqual:
		c.emitOp(chunk.OpGreaterEqual)
	}
	// Binary ops pop two operands and push one result: net stack effect -1.
	c.adjustStack(-1)
}

func (c *compiler) emitOp(op chunk.OpCode) {
	c.chunk.WriteOp(op, c.previous.Line)
}

func (c *compiler) emitConstant(v value.Value) {
	c.chunk.WriteConstant(v, c.previous.Line)
	c.adjustStack(1)
}

// adjustStack applies delta to the running stack-depth counter and
// updates the high-water mark if the new depth is a new maximum.
func (c *compiler) adjustStack(delta int) {
	c.stackSize += delta
	if c.stackSize > c.stackHighWaterMark {
		c.stackHighWaterMark = c.stackSize
	}
}
