package lexer

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/pattyshack/gt/parseutil"

	"github.com/fantasylang/fantasy/parser/lr"
)

const (
	initialPeekWindowSize = 64

	DefaultSeparator = '#'
)

// Tokenizer splits source text into logical lines on the separator character
// and each line into words on whitespace.  Empty lines still advance the line
// counter.  The token sequence is terminated by a single end marker token,
// after which Next returns io.EOF.
//
// A tokenizer is not restartable; create a new one per input.
type Tokenizer struct {
	parseutil.BufferedByteLocationReader

	classifier *Classifier
	separator  rune

	line   int // 1-based logical line
	column int // 1-based column within the logical line

	done bool
}

func NewTokenizer(
	reader parseutil.BufferedByteLocationReader,
	classifier *Classifier,
	separator rune,
) *Tokenizer {
	return &Tokenizer{
		BufferedByteLocationReader: reader,
		classifier:                 classifier,
		separator:                  separator,
		line:                       1,
		column:                     1,
	}
}

func (tokenizer *Tokenizer) CurrentLocation() parseutil.Location {
	return tokenizer.Location
}

func (tokenizer *Tokenizer) isDelimiter(char rune) bool {
	return char == tokenizer.separator || unicode.IsSpace(char)
}

func (tokenizer *Tokenizer) Next() (*lr.Token, error) {
	if tokenizer.done {
		return nil, io.EOF
	}

	for {
		peeked, err := tokenizer.Peek(utf8.UTFMax)
		if len(peeked) > 0 && err == io.EOF {
			err = nil
		}
		if err == io.EOF {
			tokenizer.done = true
			loc := tokenizer.Location
			return &lr.Token{
				StartEndPos: parseutil.NewStartEndPos(loc, loc),
				Kind:        lr.EndMarkerToken,
				Lexeme:      lr.EndMarker,
				Line:        tokenizer.line,
				Column:      tokenizer.column,
			}, nil
		}
		if err != nil {
			return nil, err
		}

		char, size := utf8.DecodeRune(peeked)
		if char == tokenizer.separator {
			tokenizer.discard(size)
			tokenizer.line++
			tokenizer.column = 1
			continue
		}

		if unicode.IsSpace(char) {
			tokenizer.discard(size)
			tokenizer.column++
			continue
		}

		return tokenizer.lexWord()
	}
}

func (tokenizer *Tokenizer) discard(size int) {
	_, err := tokenizer.Discard(size)
	if err != nil {
		panic("should never happen")
	}
}

// scanWord returns the byte length of the word starting at the current
// position.
func (tokenizer *Tokenizer) scanWord() (int, error) {
	window := initialPeekWindowSize
	for {
		peeked, err := tokenizer.Peek(window)
		isEOF := err == io.EOF
		if err != nil && !isEOF {
			return 0, err
		}

		pos := 0
		for pos < len(peeked) {
			if !isEOF && !utf8.FullRune(peeked[pos:]) {
				break
			}

			char, size := utf8.DecodeRune(peeked[pos:])
			if tokenizer.isDelimiter(char) {
				return pos, nil
			}
			pos += size
		}

		if isEOF {
			return pos, nil
		}
		window *= 2
	}
}

func (tokenizer *Tokenizer) lexWord() (*lr.Token, error) {
	size, err := tokenizer.scanWord()
	if err != nil {
		return nil, err
	}

	peeked, err := tokenizer.Peek(size)
	if err != nil && !(err == io.EOF && len(peeked) == size) {
		return nil, err
	}
	word := string(peeked[:size])

	start := tokenizer.Location
	tokenizer.discard(size)

	token := tokenizer.classifier.Classify(word, tokenizer.line)
	token.StartEndPos = parseutil.NewStartEndPos(start, tokenizer.Location)
	token.Column = tokenizer.column

	tokenizer.column += utf8.RuneCountInString(word)
	return token, nil
}

// Tokenize returns the whole token sequence, end marker included.
func Tokenize(
	reader parseutil.BufferedByteLocationReader,
	classifier *Classifier,
	separator rune,
) (
	[]*lr.Token,
	error,
) {
	tokenizer := NewTokenizer(reader, classifier, separator)

	result := []*lr.Token{}
	for {
		token, err := tokenizer.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return result, err
		}
		result = append(result, token)
	}
}
