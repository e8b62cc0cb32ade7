package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"labeler/internal/catalog"
	"labeler/internal/models"
)

// Classifier maps a discussion to tag names from the catalog. The
// returned names are always exact catalog members, deduplicated, and
// may be empty.
type Classifier interface {
	Classify(ctx context.Context, cat *catalog.Catalog, d models.Discussion) ([]string, error)
}

// ParseTags parses raw model output strictly as a JSON array of
// strings, then filters it to exact catalog members. Unknown names
// are dropped silently; anything that is not a JSON array of strings
// wraps models.ErrMalformedResponse.
func ParseTags(raw string, cat *catalog.Catalog) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil, fmt.Errorf("%w: empty or null output", models.ErrMalformedResponse)
	}

	var names []string
	if err := json.Unmarshal([]byte(trimmed), &names); err != nil {
		return nil, fmt.Errorf("%w: %v (output: %.200s)", models.ErrMalformedResponse, err, trimmed)
	}

	result := cat.Filter(names)
	if len(result) < len(names) {
		log.Debugf("Dropped %d tag name(s) not present in the catalog: returned=%v kept=%v", len(names)-len(result), names, result)
	}
	return result, nil
}
