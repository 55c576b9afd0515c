// internal/pattern/pattern.go
//
// Feedback patterns for a guess scored against a target word.
// Responsibilities:
//   - Score a guess with the classic two-pass Wordle algorithm.
//   - Pack the per-letter feedback into a single base-3 integer (Pattern).
//   - Parse the text form typed by a player ("gybbb" or "21000").
//   - Render patterns for terminals (emoji) and JSON (letter codes).
//
// Encoding: position i carries weight 3^i, Absent=0, Present=1, Correct=2,
// so the all-Correct pattern is NumPatterns-1 and is the only winning value.
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// WordLength is the fixed number of letters in every word.
	WordLength = 5

	// NumPatterns is 3^WordLength, the size of the pattern space.
	NumPatterns = 243

	// Win is the all-Correct pattern.
	Win Pattern = NumPatterns - 1
)

// ErrInvalidPattern is returned by Parse for text that is not a pattern.
var ErrInvalidPattern = errors.New("invalid pattern")

// Feedback is the evaluation of a single letter in a guess.
type Feedback uint8

const (
	Absent Feedback = iota
	Present
	Correct
)

// Glyph returns the tile used when printing patterns.
func (f Feedback) Glyph() string {
	switch f {
	case Correct:
		return "🟩"
	case Present:
		return "🟨"
	default:
		return "⬛"
	}
}

// Code returns the single-letter code accepted by Parse.
func (f Feedback) Code() byte {
	switch f {
	case Correct:
		return 'g'
	case Present:
		return 'y'
	default:
		return 'b'
	}
}

func (f Feedback) String() string {
	switch f {
	case Correct:
		return "correct"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// FeedbackFromChar maps one character of pattern text to a Feedback.
// g/2 = Correct, y/1 = Present, b/x/0 = Absent; letters are case-insensitive.
func FeedbackFromChar(c byte) (Feedback, bool) {
	switch c {
	case 'g', 'G', '2':
		return Correct, true
	case 'y', 'Y', '1':
		return Present, true
	case 'b', 'B', 'x', 'X', '0':
		return Absent, true
	}
	return Absent, false
}

// Pattern is the complete feedback for one guess packed into base 3.
// Build one with New, Calculate or Parse; values from NumPatterns up are
// not patterns (see Valid).
type Pattern uint8

// New encodes per-position feedback into a Pattern.
func New(fb [WordLength]Feedback) Pattern {
	var p, weight uint16 = 0, 1
	for _, f := range fb {
		p += uint16(f) * weight
		weight *= 3
	}
	return Pattern(p)
}

// Calculate scores guess against target.
//
// Pass 1: exact matches are Correct; every other target letter is counted
// as still available.
// Pass 2: left to right, a non-Correct guess letter is Present while the
// target still has an unclaimed copy of it, otherwise Absent.
//
// Both words must be WordLength lowercase a–z letters; this is not checked.
func Calculate(guess, target string) Pattern {
	var fb [WordLength]Feedback
	var avail [26]uint8

	for i := 0; i < WordLength; i++ {
		if guess[i] == target[i] {
			fb[i] = Correct
		} else {
			avail[target[i]-'a']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if fb[i] == Correct {
			continue
		}
		j := guess[i] - 'a'
		if avail[j] > 0 {
			fb[i] = Present
			avail[j]--
		}
	}
	return New(fb)
}

// Feedbacks decodes p, lowest position first. A value outside the pattern
// space decodes as all Absent.
func (p Pattern) Feedbacks() [WordLength]Feedback {
	var fb [WordLength]Feedback
	if !p.Valid() {
		return fb
	}
	v := p
	for i := range fb {
		fb[i] = Feedback(v % 3)
		v /= 3
	}
	return fb
}

// IsWin reports whether every letter is Correct.
func (p Pattern) IsWin() bool { return p == Win }

// Valid reports whether p lies inside the pattern space.
func (p Pattern) Valid() bool { return int(p) < NumPatterns }

// Parse reads a pattern typed as WordLength feedback codes.
func Parse(s string) (Pattern, error) {
	if len(s) != WordLength {
		return 0, fmt.Errorf("%w: want %d symbols, got %q", ErrInvalidPattern, WordLength, s)
	}
	var fb [WordLength]Feedback
	for i := 0; i < WordLength; i++ {
		f, ok := FeedbackFromChar(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: unknown symbol %q at position %d", ErrInvalidPattern, s[i], i+1)
		}
		fb[i] = f
	}
	return New(fb), nil
}

// String renders the pattern as coloured tiles.
func (p Pattern) String() string {
	var b strings.Builder
	for _, f := range p.Feedbacks() {
		b.WriteString(f.Glyph())
	}
	return b.String()
}

// Code renders the pattern in the g/y/b letter form.
func (p Pattern) Code() string {
	var b [WordLength]byte
	for i, f := range p.Feedbacks() {
		b[i] = f.Code()
	}
	return string(b[:])
}

// MarshalText encodes p as its letter code, so JSON carries "gybbb".
func (p Pattern) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: value %d out of range", ErrInvalidPattern, p)
	}
	return []byte(p.Code()), nil
}

// UnmarshalText accepts any form understood by Parse.
func (p *Pattern) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
