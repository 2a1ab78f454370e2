package answer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/mock"
	"github.com/poiesic/docquery/core"
)

func matchFor(document, text string, rank int) core.Match {
	return core.Match{
		Document:  document,
		Text:      text,
		LineStart: 1,
		LineEnd:   core.LinesPerChunk,
		Rank:      rank,
	}
}

func TestNewSynthesizer_RequiresGenerator(t *testing.T) {
	_, err := NewSynthesizer(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestSynthesize_EmptyMatches(t *testing.T) {
	generator := mock.NewMockGenerator()
	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	result, err := s.Synthesize(context.Background(), "where did the cat sit?", nil)
	require.NoError(t, err)
	assert.Equal(t, NotFoundAnswer, result.Text)
	assert.Empty(t, result.Sources)
	assert.Zero(t, generator.CallCount(), "no generation call for empty matches")
}

func TestSynthesize_GroundedAnswer(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, systemInstruction, userPrompt string, temperature float64) (string, error) {
		return "  The cat sat on the mat.  ", nil
	}

	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	matches := []core.Match{
		matchFor("notes.txt", "A cat sat on the mat.", 1),
		matchFor("diary.txt", "A dog ran in the yard.", 1),
	}
	result, err := s.Synthesize(context.Background(), "where did the cat sit?", matches)
	require.NoError(t, err)

	assert.Equal(t, "The cat sat on the mat.", result.Text)
	assert.Equal(t, matches, result.Sources)

	prompt := generator.LastUserPrompt()
	assert.Contains(t, prompt, "A cat sat on the mat.\n\nA dog ran in the yard.")
	assert.Contains(t, prompt, "where did the cat sit?")
	assert.Contains(t, generator.LastSystemInstruction(), "ONLY the context")
	assert.InDelta(t, DefaultTemperature, generator.LastTemperature(), 1e-9)
}

func TestSynthesize_ContextBudget(t *testing.T) {
	generator := mock.NewMockGenerator()
	s, err := NewSynthesizer(generator, WithContextBudget(30))
	require.NoError(t, err)

	matches := []core.Match{
		matchFor("a.txt", strings.Repeat("a", 20), 1),
		matchFor("b.txt", strings.Repeat("b", 20), 1),
		matchFor("c.txt", strings.Repeat("c", 5), 1),
	}
	result, err := s.Synthesize(context.Background(), "query", matches)
	require.NoError(t, err)

	prompt := generator.LastUserPrompt()
	assert.Contains(t, prompt, strings.Repeat("a", 20))
	assert.NotContains(t, prompt, strings.Repeat("b", 20), "over-budget match is dropped")

	// provenance still lists every match
	assert.Len(t, result.Sources, 3)
}

func TestSynthesize_FirstMatchAlwaysAdmitted(t *testing.T) {
	generator := mock.NewMockGenerator()
	s, err := NewSynthesizer(generator, WithContextBudget(10))
	require.NoError(t, err)

	oversized := matchFor("a.txt", strings.Repeat("x", 50), 1)
	_, err = s.Synthesize(context.Background(), "query", []core.Match{oversized})
	require.NoError(t, err)
	assert.Contains(t, generator.LastUserPrompt(), strings.Repeat("x", 50))
}

func TestSynthesize_GenerationFailure(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, systemInstruction, userPrompt string, temperature float64) (string, error) {
		return "", ai.ErrGenerationUnavailable
	}

	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "query", []core.Match{matchFor("a.txt", "text", 1)})
	assert.ErrorIs(t, err, ai.ErrGenerationUnavailable)
}
