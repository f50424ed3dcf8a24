package calculator

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// spelling maps one accepted input spelling to the canonical name used by
// the function and constant tables.
type spelling struct {
	runes []rune
	canon string
}

var (
	funcSpellings  = spellTable(funcAliases)
	constSpellings = spellTable(constAliases)
)

// spellTable flattens an alias map into a slice ordered longest spelling
// first, so that the tokenizer's longest-match rule is a linear scan. Ties
// break lexically to keep the table deterministic.
func spellTable(aliases map[string]string) []spelling {
	v := make([]spelling, 0, len(aliases))
	for text, canon := range aliases {
		v = append(v, spelling{runes: []rune(text), canon: canon})
	}
	sort.Slice(v, func(i, j int) bool {
		if len(v[i].runes) != len(v[j].runes) {
			return len(v[i].runes) > len(v[j].runes)
		}
		return string(v[i].runes) < string(v[j].runes)
	})
	return v
}

// matchSpelling reports the canonical name and spelling length of the
// longest table entry prefixing rs, or ("", 0) if none matches.
func matchSpelling(rs []rune, table []spelling) (string, int) {
	for _, s := range table {
		if len(s.runes) > len(rs) {
			continue
		}
		ok := true
		for i, r := range s.runes {
			if rs[i] != r {
				ok = false
				break
			}
		}
		if ok {
			return s.canon, len(s.runes)
		}
	}
	return "", 0
}

// operRunes maps operator input runes to their canonical symbol. The ASCII
// * and / spellings normalize to the calculator's × and ÷.
var operRunes = map[rune]string{
	'+': "+",
	'-': "-",
	'*': "×",
	'×': "×",
	'/': "÷",
	'÷': "÷",
	'^': "^",
	'!': "!",
}

// Tokenize scans an expression into an ordered token sequence. Whitespace is
// stripped first; at each position the scanner tries, in order, the function
// table (longest match), the constant table, a numeric literal, an operator,
// parenthesis or comma, and finally a single letter as a variable. Any other
// rune is a LexError.
//
// A minus sign at the start of the input or following an operator, an
// opening parenthesis, or a comma is unary; it is promoted to the token pair
// Number(-1), Operator(×), which reproduces calculator precedence: -2^2
// evaluates as -(2^2).
func Tokenize(src string) ([]Token, error) {
	rs := make([]rune, 0, len(src))
	for _, r := range src {
		if !unicode.IsSpace(r) {
			rs = append(rs, r)
		}
	}
	var toks []Token
	i := 0
	for i < len(rs) {
		pos := i + 1
		if name, n := matchSpelling(rs[i:], funcSpellings); n > 0 {
			toks = append(toks, Token{Kind: KindFunction, Text: name, Pos: pos})
			i += n
			continue
		}
		if name, n := matchSpelling(rs[i:], constSpellings); n > 0 {
			toks = append(toks, Token{Kind: KindConstant, Text: name, Pos: pos})
			i += n
			continue
		}
		r := rs[i]
		switch {
		case '0' <= r && r <= '9' || r == '.':
			text, n, err := scanNumber(rs[i:], pos)
			if err != nil {
				return nil, err
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &LexError{Text: text, Kind: "number", Col: pos}
			}
			toks = append(toks, Token{Kind: KindNumber, Num: v, Text: text, Pos: pos})
			i += n
		case r == '-' && unaryMinus(toks):
			toks = append(toks,
				Token{Kind: KindNumber, Num: -1, Text: "-1", Pos: pos},
				Token{Kind: KindOperator, Text: "×", Pos: pos},
			)
			i++
		case operRunes[r] != "":
			toks = append(toks, Token{Kind: KindOperator, Text: operRunes[r], Pos: pos})
			i++
		case r == '(':
			toks = append(toks, Token{Kind: KindLParen, Pos: pos})
			i++
		case r == ')':
			toks = append(toks, Token{Kind: KindRParen, Pos: pos})
			i++
		case r == ',':
			toks = append(toks, Token{Kind: KindComma, Pos: pos})
			i++
		case unicode.IsLetter(r):
			toks = append(toks, Token{Kind: KindVariable, Letter: r, Pos: pos})
			i++
		default:
			return nil, &LexError{Text: string(r), Col: pos}
		}
	}
	return toks, nil
}

// unaryMinus reports whether a minus sign scanned next would be unary given
// the tokens so far. Postfix ! leaves a value behind it, so a minus after it
// stays binary.
func unaryMinus(toks []Token) bool {
	if len(toks) == 0 {
		return true
	}
	switch last := toks[len(toks)-1]; last.Kind {
	case KindOperator:
		return last.Text != "!"
	case KindLParen, KindComma:
		return true
	default:
		return false
	}
}

// scanNumber consumes a numeric literal: digits with at most one decimal
// point. A bare dot is a LexError.
func scanNumber(rs []rune, col int) (string, int, error) {
	var b strings.Builder
	dot := false
	n := 0
scan:
	for n < len(rs) {
		switch r := rs[n]; {
		case '0' <= r && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if dot {
				return "", 0, &LexError{Text: b.String() + ".", Kind: "number", Col: col}
			}
			dot = true
			b.WriteRune(r)
		default:
			break scan
		}
		n++
	}
	if b.Len() == 0 || b.String() == "." {
		return "", 0, &LexError{Text: b.String(), Kind: "number", Col: col}
	}
	return b.String(), n, nil
}

// LexError indicates input the tokenizer does not recognize. It implements
// InputError.
type LexError struct {
	// Text is the text the tokenizer was scanning when it failed, including
	// the offending rune.
	Text string
	// Kind is the kind of token being scanned, currently "number" or the
	// empty string if no kind had been decided.
	Kind string
	// Col is the 1-based rune position of the token in the
	// whitespace-stripped input.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}
