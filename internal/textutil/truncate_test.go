package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateAtSentence_ShortTextUnchanged(t *testing.T) {
	text := "A short body. Nothing to cut."
	assert.Equal(t, text, TruncateAtSentence(text, 100))
}

func TestTruncateAtSentence_CutsAtSentenceBoundary(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third sentence is extra."
	got := TruncateAtSentence(text, 50)

	assert.True(t, len([]rune(got)) <= 50, "result exceeds budget: %q", got)
	assert.True(t, strings.HasPrefix(got, "First sentence here."), "first sentence missing: %q", got)
	assert.NotContains(t, got, "Third sentence")
}

func TestTruncateAtSentence_HardCutWhenFirstSentenceTooLong(t *testing.T) {
	text := strings.Repeat("x", 200) + "."
	got := TruncateAtSentence(text, 20)

	assert.Equal(t, 20, len([]rune(got)))
}

func TestTruncateAtSentence_LongMultiSentenceBody(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 400; i++ {
		b.WriteString("The agent failed to start and logged a stack trace. ")
	}
	text := b.String()

	got := TruncateAtSentence(text, 500)

	assert.True(t, len([]rune(got)) <= 500, "result exceeds budget: %d runes", len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "stack trace."), "result cut mid-sentence: %q", got)
	assert.True(t, strings.Count(got, "stack trace.") >= 2, "expected several whole sentences: %q", got)
}

func TestTruncateAtSentence_ZeroBudgetReturnsText(t *testing.T) {
	text := "unchanged"
	assert.Equal(t, text, TruncateAtSentence(text, 0))
}
