package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

func TestEmpty(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())
	assert.True(t, s.IsValid("zzzzz"))
	assert.Equal(t, "_____", s.String())
}

func TestUpdate(t *testing.T) {
	s := New()
	// crane against crate: c, r, a, e green; n grey
	s.Update("crane", pattern.Calculate("crane", "crate"))

	assert.False(t, s.IsEmpty())
	assert.Equal(t, [pattern.WordLength]byte{'c', 'r', 'a', 0, 'e'}, s.Fixed())
	assert.Empty(t, s.Present())

	assert.True(t, s.IsValid("crate"))
	assert.True(t, s.IsValid("crane"))
	assert.False(t, s.IsValid("trace"))
	assert.False(t, s.IsValid("slate"))
}

func TestPresentLetters(t *testing.T) {
	s := New()
	p, err := pattern.Parse("bybby")
	if err != nil {
		t.Fatal(err)
	}
	s.Update("arose", p)

	assert.Equal(t, []byte{'e', 'r'}, s.Present())
	assert.True(t, s.IsValid("creep"))
	assert.True(t, s.IsValid("rebut"))
	assert.False(t, s.IsValid("crane"[:4]+"x"))
	assert.False(t, s.IsValid("toast"))
	assert.Equal(t, "_____ +er", s.String())
}

func TestPresenceIsMembershipOnly(t *testing.T) {
	s := New()
	// two yellow e's only require one e
	p, err := pattern.Parse("ybbyb")
	if err != nil {
		t.Fatal(err)
	}
	s.Update("eerie", p)
	assert.Equal(t, []byte{'e', 'i'}, s.Present())
	assert.True(t, s.IsValid("alien"))
}

func TestCumulativeAndReset(t *testing.T) {
	s := New()
	s.Update("slate", pattern.Calculate("slate", "crate"))
	s.Update("crane", pattern.Calculate("crane", "crate"))
	assert.Equal(t, [pattern.WordLength]byte{'c', 'r', 'a', 't', 'e'}, s.Fixed())

	s.Reset()
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.Present())
}

func TestClone(t *testing.T) {
	s := New()
	s.Update("arose", pattern.Calculate("arose", "creep"))
	c := s.Clone()
	c.Update("crane", pattern.Calculate("crane", "charm"))

	assert.Equal(t, [pattern.WordLength]byte{0, 'r', 0, 0, 0}, s.Fixed())
	assert.NotEqual(t, s.Fixed(), c.Fixed())
	assert.Equal(t, []byte{'e'}, s.Present())
	assert.Equal(t, []byte{'e', 'r'}, c.Present())
}
