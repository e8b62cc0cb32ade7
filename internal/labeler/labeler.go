package labeler

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"labeler/internal/catalog"
	"labeler/internal/classifier"
	"labeler/internal/models"
)

// GitHubAPI is the slice of the GitHub client the driver needs.
type GitHubAPI interface {
	ListUnlabeledDiscussions(ctx context.Context, repo models.Repo) ([]models.Discussion, error)
	GetDiscussion(ctx context.Context, repo models.Repo, number int) (models.Discussion, error)
	ResolveLabelIDs(ctx context.Context, repo models.Repo, names []string) (ids []string, missing []string, err error)
	AddLabels(ctx context.Context, discussionID string, labelIDs []string) error
}

// Service runs the classification pipeline for discussions: render →
// classify → validate → apply. Labels are applied in one mutation, so
// a discussion is either fully labeled or untouched.
type Service struct {
	github     GitHubAPI
	classifier classifier.Classifier
	catalog    *catalog.Catalog
}

func NewService(gh GitHubAPI, cls classifier.Classifier, cat *catalog.Catalog) *Service {
	return &Service{github: gh, classifier: cls, catalog: cat}
}

// Catalog exposes the loaded tag catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// ListUnlabeled returns the repository's recent unlabeled discussions.
func (s *Service) ListUnlabeled(ctx context.Context, repo models.Repo) ([]models.Discussion, error) {
	return s.github.ListUnlabeledDiscussions(ctx, repo)
}

// ClassifyDiscussion produces the validated tag names for one
// discussion without applying anything. An empty catalog yields an
// empty result without calling the model.
func (s *Service) ClassifyDiscussion(ctx context.Context, d models.Discussion) ([]string, error) {
	if s.catalog.Len() == 0 {
		log.Warn("Tag catalog is empty, nothing can match")
		return nil, nil
	}
	return s.classifier.Classify(ctx, s.catalog, d)
}

// LabelDiscussion classifies one discussion and applies the surviving
// tags as labels. Returns the applied tag names. Any failure before
// the mutation leaves the discussion untouched.
func (s *Service) LabelDiscussion(ctx context.Context, repo models.Repo, d models.Discussion) ([]string, error) {
	tags, err := s.ClassifyDiscussion(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("classifying discussion %s#%d: %w", repo, d.Number, err)
	}
	if len(tags) == 0 {
		log.Infof("No tags for discussion %s#%d, skipping", repo, d.Number)
		return nil, nil
	}

	ids, missing, err := s.github.ResolveLabelIDs(ctx, repo, tags)
	if err != nil {
		return nil, fmt.Errorf("resolving labels for %s#%d: %w", repo, d.Number, err)
	}
	if len(ids) == 0 {
		log.Warnf("None of the tags %v exist as labels in %s, nothing applied", tags, repo)
		return nil, nil
	}

	if err := s.github.AddLabels(ctx, d.ID, ids); err != nil {
		return nil, fmt.Errorf("labeling discussion %s#%d: %w", repo, d.Number, err)
	}

	applied := make([]string, 0, len(tags))
	skip := make(map[string]struct{}, len(missing))
	for _, m := range missing {
		skip[m] = struct{}{}
	}
	for _, tag := range tags {
		if _, ok := skip[tag]; !ok {
			applied = append(applied, tag)
		}
	}

	log.Infof("Labeled discussion %s#%d with %v", repo, d.Number, applied)
	return applied, nil
}

// LabelByNumber fetches a discussion and labels it. Used by the
// webhook and worker paths where only the number is known.
func (s *Service) LabelByNumber(ctx context.Context, repo models.Repo, number int) ([]string, error) {
	d, err := s.github.GetDiscussion(ctx, repo, number)
	if err != nil {
		return nil, err
	}
	if !d.Unlabeled() {
		log.Infof("Discussion %s#%d already has labels %v, skipping", repo, number, d.Labels)
		return nil, nil
	}
	return s.LabelDiscussion(ctx, repo, d)
}

// ProcessRepo labels every recent unlabeled discussion in the
// repository. Per-discussion failures are logged and skipped so one
// bad discussion never sinks the batch; only a listing failure is
// returned. Returns the number of discussions that received labels.
func (s *Service) ProcessRepo(ctx context.Context, repo models.Repo) (int, error) {
	discussions, err := s.github.ListUnlabeledDiscussions(ctx, repo)
	if err != nil {
		return 0, err
	}
	log.Infof("Found %d unlabeled discussion(s) in %s", len(discussions), repo)

	labeled := 0
	for _, d := range discussions {
		applied, err := s.LabelDiscussion(ctx, repo, d)
		if err != nil {
			log.Warnf("Skipping discussion %s#%d: %v", repo, d.Number, err)
			continue
		}
		if len(applied) > 0 {
			labeled++
		}
	}
	return labeled, nil
}
