// internal/constraint/constraint.go
//
// Hard-mode constraints accumulated from revealed hints.
//   - Correct tiles pin a letter to its position.
//   - Present tiles require the letter somewhere in the word.
//   - Absent tiles add nothing.
//
// Presence is checked by membership only: a letter revealed Present twice
// still only has to appear once.
package constraint

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

// Set holds the constraints of one game. The zero value is not usable; call New.
type Set struct {
	fixed   [pattern.WordLength]byte // 0 = position unconstrained
	present mapset.Set[byte]
}

// New returns an empty constraint set.
func New() *Set {
	return &Set{present: mapset.NewThreadUnsafeSet[byte]()}
}

// Update folds the hints of one (guess, pattern) pair into s.
func (s *Set) Update(guess string, p pattern.Pattern) {
	for i, f := range p.Feedbacks() {
		switch f {
		case pattern.Correct:
			s.fixed[i] = guess[i]
		case pattern.Present:
			s.present.Add(guess[i])
		}
	}
}

// IsValid reports whether word uses every fixed letter in place and
// contains every required letter at least once.
func (s *Set) IsValid(word string) bool {
	if len(word) != pattern.WordLength {
		return false
	}
	for i, c := range s.fixed {
		if c != 0 && word[i] != c {
			return false
		}
	}
	ok := true
	s.present.Each(func(c byte) bool {
		if strings.IndexByte(word, c) < 0 {
			ok = false
			return true
		}
		return false
	})
	return ok
}

// IsEmpty reports whether no hint has been recorded.
func (s *Set) IsEmpty() bool {
	return s.fixed == [pattern.WordLength]byte{} && s.present.Cardinality() == 0
}

// Reset clears every constraint.
func (s *Set) Reset() {
	s.fixed = [pattern.WordLength]byte{}
	s.present.Clear()
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return &Set{fixed: s.fixed, present: s.present.Clone()}
}

// Fixed returns the pinned letters, 0 where a position is free.
func (s *Set) Fixed() [pattern.WordLength]byte { return s.fixed }

// Present returns the required letters in alphabetical order.
func (s *Set) Present() []byte {
	out := s.present.ToSlice()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the constraints as e.g. "cr___ +ae".
func (s *Set) String() string {
	b := make([]byte, 0, pattern.WordLength+4)
	for _, c := range s.fixed {
		if c == 0 {
			b = append(b, '_')
		} else {
			b = append(b, c)
		}
	}
	if req := s.Present(); len(req) > 0 {
		b = append(b, ' ', '+')
		b = append(b, req...)
	}
	return string(b)
}
