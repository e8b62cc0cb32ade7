package prompt

import (
	"strings"

	"labeler/internal/catalog"
	"labeler/internal/models"
	"labeler/internal/textutil"
)

// defaultSystemTemplate is the embedded system instruction. The
// {{TAG_BLOCK}} placeholder is replaced by the catalog enumeration, or
// removed entirely when the catalog is empty.
const defaultSystemTemplate = `You are an AI assistant that labels GitHub discussions with tags from a fixed catalog.

Guidelines:
1. Only select tags whose name exactly matches a tag in the catalog. Matching is case-sensitive.
2. If no tag applies to the discussion, return an empty array: []
3. Respond with a JSON array of tag name strings and nothing else.
4. Do not include explanations, markdown fences, or any text outside the JSON array.
{{TAG_BLOCK}}`

const userTemplate = `Title: {{TITLE}}

Description: {{DESCRIPTION}}`

// Renderer produces the system instruction and user message for one
// classification call. Rendering is pure string templating.
type Renderer struct {
	systemTemplate string
	maxBodyRunes   int
}

// NewRenderer builds a renderer. An empty systemTemplate selects the
// embedded default; maxBodyRunes <= 0 disables body truncation.
func NewRenderer(systemTemplate string, maxBodyRunes int) *Renderer {
	if systemTemplate == "" {
		systemTemplate = defaultSystemTemplate
	}
	return &Renderer{systemTemplate: systemTemplate, maxBodyRunes: maxBodyRunes}
}

// Render fills the templates with the catalog and discussion. With an
// empty catalog the tag enumeration block is omitted entirely.
func (r *Renderer) Render(cat *catalog.Catalog, d models.Discussion) (system, user string) {
	tagBlock := ""
	if cat != nil && cat.Len() > 0 {
		var b strings.Builder
		b.WriteString("\nCatalog of available tags:\n")
		for _, t := range cat.Tags() {
			b.WriteString(t.Name)
			b.WriteString(": ")
			b.WriteString(t.Description)
			b.WriteString("\n")
		}
		tagBlock = b.String()
	}

	system = strings.ReplaceAll(r.systemTemplate, "{{TAG_BLOCK}}", tagBlock)
	system = strings.TrimRight(system, "\n")

	body := textutil.TruncateAtSentence(d.Body, r.maxBodyRunes)
	user = strings.ReplaceAll(userTemplate, "{{TITLE}}", d.Title)
	user = strings.ReplaceAll(user, "{{DESCRIPTION}}", body)
	return system, user
}
