package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical unit of an expression.
type Token struct {
	// Text is the token as it appears in the input.
	Text string
	// Kind is the class of the token.
	Kind TokenKind
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// is reports whether t is an identifier equal to word, ignoring case.
func (t Token) is(word string) bool {
	return t.Kind == TokenIdent && strings.EqualFold(t.Text, word)
}

// TokenKind is the class of a token.
type TokenKind int

const (
	// TokenNone is the zero Token's kind, meaning no token at all.
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenIdent is a word: ans, quit, exit, or anything else made of letters.
	TokenIdent
	// TokenOperator is one of the symbols in Operators.
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenIdent:
		return "Ident"
	case TokenOperator:
		return "Operator"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are lexed as operator tokens, brackets
// included.
const Operators = "+-*/()"

// Reserved words. Lookups ignore case.
const (
	AnsWord  = "ans"
	QuitWord = "quit"
	ExitWord = "exit"
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	// back holds unread runes, last unread on top.
	back []rune
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	if n := len(l.back); n > 0 {
		r := l.back[n-1]
		l.back = l.back[:n-1]
		l.rune++
		return r, nil
	}
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unread returns r to the input. Runes are read back in the reverse order of
// the calls.
func (l *lexer) unread(r rune) {
	l.back = append(l.back, r)
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.rune}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unread(r)
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNumber
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unread(r)
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.Text = string(r)
			tok.Kind = TokenOperator
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, &LexError{Text: l.buf.String(), Col: l.rune}
		}
	}
}

// scanNum scans a decimal number: a run of digits and dots, optionally
// followed by an exponent of e or E, an optional sign, and at least one digit.
// Any other rune ends the number, so 2exit is 2 followed by exit. Whether the
// digits and dots form a valid number is decided when it is resolved, so that
// 1.2.3 is reported as one bad number.
func (l *lexer) scanNum() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case r == '.', isDigit(r):
			l.buf.WriteRune(r)
		case r == 'e' || r == 'E':
			ok, err := l.scanExp(r)
			if err != nil || !ok {
				return err
			}
		default:
			l.unread(r)
			return nil
		}
	}
}

// scanExp scans an exponent whose marker e has just been read. If the marker
// and an optional sign are not followed by a digit, they are unread and the
// result is false.
func (l *lexer) scanExp(e rune) (bool, error) {
	read := []rune{e}
	for {
		r, err := l.readRune()
		switch {
		case err != nil && !errors.Is(err, io.EOF):
			return false, err
		case err == nil && isDigit(r):
			for _, c := range read {
				l.buf.WriteRune(c)
			}
			l.buf.WriteRune(r)
			return true, nil
		case err == nil && len(read) == 1 && (r == '+' || r == '-'):
			read = append(read, r)
			continue
		case err == nil:
			l.unread(r)
		}
		for i := len(read) - 1; i >= 0; i-- {
			l.unread(read[i])
		}
		return false, nil
	}
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unread(r)
			return nil
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Tokenize splits an input into tokens, eliding whitespace. Scanning continues
// past invalid runes so that every valid token is returned, e.g. to find a
// quit command in a line that is otherwise garbage; the error is the first
// *LexError encountered, if any. A read error other than io.EOF stops the
// scan and is returned as is.
func Tokenize(src io.RuneScanner) ([]Token, error) {
	scan := lex(src)
	var toks []Token
	var first error
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, first
			}
			var lerr *LexError
			if !errors.As(err, &lerr) {
				return toks, err
			}
			if first == nil {
				first = err
			}
			continue
		}
		toks = append(toks, tok)
	}
}

// TokenizeString is a shortcut to tokenize a string.
func TokenizeString(src string) ([]Token, error) {
	return Tokenize(strings.NewReader(src))
}

// HasQuit returns whether any token is the word quit or exit.
func HasQuit(tokens []Token) bool {
	for _, tok := range tokens {
		if tok.is(QuitWord) || tok.is(ExitWord) {
			return true
		}
	}
	return false
}

// JoinTokens concatenates the tokens' text without separators, e.g. "3+4*2".
func JoinTokens(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// LexError indicates a rune that cannot start any token. It implements
// InputError.
type LexError struct {
	// Text is the invalid rune.
	Text string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
