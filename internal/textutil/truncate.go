package textutil

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

// sentenceTokenizer lazily builds the english punkt tokenizer once per
// process. Returns nil when the training data cannot be loaded.
func sentenceTokenizer() *sentences.DefaultSentenceTokenizer {
	tokenizerOnce.Do(func() {
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			log.Warnf("Failed to load sentence tokenizer, falling back to hard truncation: %v", err)
			return
		}
		tokenizer = t
	})
	return tokenizer
}

// TruncateAtSentence caps text at maxRunes, cutting at the last whole
// sentence that still fits. When even the first sentence is over
// budget, or no tokenizer is available, the text is hard-cut at a rune
// boundary.
func TruncateAtSentence(text string, maxRunes int) string {
	if maxRunes <= 0 || len([]rune(text)) <= maxRunes {
		return text
	}

	var b strings.Builder
	if t := sentenceTokenizer(); t != nil {
		total := 0
		for _, s := range t.Tokenize(text) {
			sentenceText := s.Text
			n := len([]rune(sentenceText))
			if total+n > maxRunes {
				break
			}
			b.WriteString(sentenceText)
			total += n
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		runes := []rune(text)
		out = strings.TrimSpace(string(runes[:maxRunes]))
	}
	return out
}
