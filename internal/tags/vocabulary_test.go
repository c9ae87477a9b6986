package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestVocabulary() *Vocabulary {
	return NewVocabulary([]string{"Fantasy", "Horror", "Classic", "Science Fiction"})
}

func TestNormalizeDropsUnknown(t *testing.T) {
	v := newTestVocabulary()

	got := v.Normalize([]string{"Fantasy", "Cooking", "Horror"})
	assert.Equal(t, []string{"Fantasy", "Horror"}, got)
}

func TestNormalizeCollapsesDuplicates(t *testing.T) {
	v := newTestVocabulary()

	got := v.Normalize([]string{"Horror", "Fantasy", "Horror", "Fantasy"})
	assert.Equal(t, []string{"Horror", "Fantasy"}, got, "first occurrence wins, order preserved")
}

func TestNormalizeEmptyAndNil(t *testing.T) {
	v := newTestVocabulary()

	assert.Equal(t, []string{}, v.Normalize(nil))
	assert.Equal(t, []string{}, v.Normalize([]string{"Unknown", ""}))
}

func TestNormalizeTrimsWhitespace(t *testing.T) {
	v := newTestVocabulary()

	got := v.Normalize([]string{"  Classic ", " Science Fiction"})
	assert.Equal(t, []string{"Classic", "Science Fiction"}, got)
}

func TestContains(t *testing.T) {
	v := newTestVocabulary()

	assert.True(t, v.Contains("Fantasy"))
	assert.False(t, v.Contains("fantasy"), "matching is case-sensitive")
	assert.False(t, v.Contains("Cooking"))
}
