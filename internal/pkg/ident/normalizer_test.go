package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProductKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Genomind Professional PGx", "GENOMINDPROFESSIONALPGX"},
		{"genomind professional pgx", "GENOMINDPROFESSIONALPGX"},
		{"Genomind [discontinued] Professional", "GENOMINDPROFESSIONAL"},
		{"Onco-Panel 2.0", "ONCOPANEL20"},
		{"  spaced   out  ", "SPACEDOUT"},
		{"[all bracketed]", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeProductKey(tt.raw), "raw %q", tt.raw)
	}
}

func TestNormalizeProductKey_Idempotent(t *testing.T) {
	inputs := []string{"Genomind Professional PGx", "Onco-Panel 2.0", "plain"}
	for _, raw := range inputs {
		once := NormalizeProductKey(raw)
		assert.Equal(t, once, NormalizeProductKey(once))
	}
}

func TestMatcher_SameKey(t *testing.T) {
	m := NewMatcher()

	t.Run("exact match", func(t *testing.T) {
		assert.True(t, m.SameKey("GENOMIND", "GENOMIND"))
	})

	t.Run("substring match above threshold", func(t *testing.T) {
		assert.True(t, m.SameKey("GENOMIND", "GENOMINDPROFESSIONALPGX"))
		assert.True(t, m.SameKey("GENOMINDPROFESSIONALPGX", "GENOMIND"))
	})

	t.Run("short keys only match exactly", func(t *testing.T) {
		// "ABCD" is a substring of "ABCDE" but is below the threshold.
		assert.False(t, m.SameKey("ABCD", "ABCDE"))
		assert.True(t, m.SameKey("ABCD", "ABCD"))
	})

	t.Run("threshold boundary", func(t *testing.T) {
		// Exactly MinPartialKeyLen characters is enough.
		assert.True(t, m.SameKey("ABCDE", "ABCDEFGH"))
	})

	t.Run("empty keys never match", func(t *testing.T) {
		assert.False(t, m.SameKey("", ""))
		assert.False(t, m.SameKey("", "GENOMIND"))
	})

	t.Run("symmetry", func(t *testing.T) {
		pairs := [][2]string{
			{"GENOMIND", "GENOMINDPROFESSIONALPGX"},
			{"ABCD", "ABCDE"},
			{"ONCOPANEL", "PANEL"},
		}
		for _, p := range pairs {
			assert.Equal(t, m.SameKey(p[0], p[1]), m.SameKey(p[1], p[0]), "pair %v", p)
		}
	})
}

func TestMatcher_SameProduct(t *testing.T) {
	m := NewMatcher()

	assert.True(t, m.SameProduct("Genomind", "Genomind Professional PGx"))
	assert.True(t, m.SameProduct("genomind [old]", "GENOMIND"))
	assert.False(t, m.SameProduct("Genomind", "Oncotype DX"))
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Genomind Professional", DisplayLabel("genomind professional"))
	assert.Equal(t, "Oncotype Dx", DisplayLabel("ONCOTYPE DX"))
}
