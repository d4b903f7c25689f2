package templates

import (
	"testing"

	"github.com/jonathan/resume-preview/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesValidate(t *testing.T) {
	for _, s := range All() {
		t.Run(s.ID, func(t *testing.T) {
			assert.NoError(t, s.Validate())
		})
	}
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{Classic, Creative, Minimal, Modern, Professional}, IDs())
}

func TestGet_ReturnsCopy(t *testing.T) {
	s, ok := Get(Modern)
	require.True(t, ok)
	s.Sections[0].Show = false

	again, _ := Get(Modern)
	assert.True(t, again.Sections[0].Show, "mutating a returned schema must not leak into the registry")
}

func TestGet_Unknown(t *testing.T) {
	_, ok := Get("nonexistent")
	assert.False(t, ok)
}

func TestBuiltinTemplatesCoverEverySection(t *testing.T) {
	for _, s := range All() {
		seen := make(map[types.SectionType]bool)
		for _, sec := range s.Sections {
			seen[sec.Type] = true
		}
		for _, st := range types.AllSectionTypes {
			assert.True(t, seen[st], "%s is missing section %s", s.ID, st)
		}
	}
}
