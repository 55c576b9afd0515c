// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Read a word list from WORDS_FILE or fall back to the embedded default.
//   - Normalize entries (trim, lowercase) and reject anything that is not
//     exactly pattern.WordLength letters a–z.
//   - Drop duplicates while keeping first-seen order.
//
// Blank lines and lines starting with "#" are ignored. Rejected entries are
// counted and reported, never passed on to the solver.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

// ErrEmpty is returned when a source yields no usable word.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is a validated word list.
type Dictionary struct {
	Words      []string // valid, unique, in source order
	Rejected   []string // entries with the wrong length or characters
	Duplicates int      // valid entries seen more than once
	Source     string   // file path or "embedded"
}

// Read parses one word per line from r.
func Read(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{}
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w := strings.ToLower(line)
		if !IsWord(w) {
			d.Rejected = append(d.Rejected, line)
			continue
		}
		if _, dup := seen[w]; dup {
			d.Duplicates++
			continue
		}
		seen[w] = struct{}{}
		d.Words = append(d.Words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read: %w", err)
	}
	if len(d.Words) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// ReadFile loads a dictionary from path.
func ReadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Source = path
	return d, nil
}

// Embedded loads the dictionary compiled into the binary.
func Embedded() (*Dictionary, error) {
	f, err := assets.Dictionary()
	if err != nil {
		return nil, fmt.Errorf("words: embedded: %w", err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, err
	}
	d.Source = "embedded"
	return d, nil
}

// Load reads path when set, else the embedded dictionary, and logs what
// was skipped.
func Load(path string) (*Dictionary, error) {
	var (
		d   *Dictionary
		err error
	)
	if path != "" {
		d, err = ReadFile(path)
	} else {
		d, err = Embedded()
	}
	if err != nil {
		return nil, err
	}

	if len(d.Rejected) > 0 {
		log.Warn().
			Str("source", d.Source).
			Int("rejected", len(d.Rejected)).
			Strs("sample", sample(d.Rejected, 5)).
			Msg("skipped malformed dictionary entries")
	}
	log.Debug().
		Str("source", d.Source).
		Int("words", len(d.Words)).
		Int("duplicates", d.Duplicates).
		Msg("dictionary loaded")
	return d, nil
}

// IsWord reports whether s is exactly pattern.WordLength lowercase a–z letters.
func IsWord(s string) bool {
	if len(s) != pattern.WordLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// Normalize trims and lowercases user input and validates it as a word.
func Normalize(s string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(s))
	return w, IsWord(w)
}

func sample(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
