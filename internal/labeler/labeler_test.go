package labeler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labeler/internal/catalog"
	"labeler/internal/models"
)

// --- Mock GitHub API ---
type mockGitHub struct {
	discussions []models.Discussion
	listErr     error

	labelIDs   map[string]string
	resolveErr error

	addErr      error
	addedID     string
	addedLabels []string
	addCalls    int
}

func (m *mockGitHub) ListUnlabeledDiscussions(ctx context.Context, repo models.Repo) ([]models.Discussion, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.discussions, nil
}

func (m *mockGitHub) GetDiscussion(ctx context.Context, repo models.Repo, number int) (models.Discussion, error) {
	for _, d := range m.discussions {
		if d.Number == number {
			return d, nil
		}
	}
	return models.Discussion{}, models.ErrUpstream
}

func (m *mockGitHub) ResolveLabelIDs(ctx context.Context, repo models.Repo, names []string) ([]string, []string, error) {
	if m.resolveErr != nil {
		return nil, nil, m.resolveErr
	}
	var ids, missing []string
	for _, n := range names {
		if id, ok := m.labelIDs[n]; ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, n)
		}
	}
	return ids, missing, nil
}

func (m *mockGitHub) AddLabels(ctx context.Context, discussionID string, labelIDs []string) error {
	m.addCalls++
	if m.addErr != nil {
		return m.addErr
	}
	m.addedID = discussionID
	m.addedLabels = labelIDs
	return nil
}

// --- Mock Classifier ---
type mockClassifier struct {
	tags []string
	err  error
}

func (m *mockClassifier) Classify(ctx context.Context, cat *catalog.Catalog, d models.Discussion) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tags, nil
}

func newTestCatalog(t *testing.T, names ...string) *catalog.Catalog {
	t.Helper()
	tags := make([]models.Tag, len(names))
	for i, n := range names {
		tags[i] = models.Tag{Name: n, Description: "desc"}
	}
	cat, err := catalog.New(tags)
	require.NoError(t, err)
	return cat
}

func TestLabelDiscussion_AppliesValidatedTags(t *testing.T) {
	gh := &mockGitHub{labelIDs: map[string]string{"bug": "L1", "python-sdk": "L2"}}
	svc := NewService(gh, &mockClassifier{tags: []string{"bug", "python-sdk"}}, newTestCatalog(t, "bug", "python-sdk"))

	applied, err := svc.LabelDiscussion(context.Background(), models.Repo{Owner: "o", Name: "r"},
		models.Discussion{ID: "D1", Number: 3, Title: "crash", Body: "boom"})
	require.NoError(t, err)

	assert.Equal(t, []string{"bug", "python-sdk"}, applied)
	assert.Equal(t, "D1", gh.addedID)
	assert.Equal(t, []string{"L1", "L2"}, gh.addedLabels)
}

func TestLabelDiscussion_ClassifierFailureAppliesNothing(t *testing.T) {
	gh := &mockGitHub{labelIDs: map[string]string{"bug": "L1"}}
	svc := NewService(gh, &mockClassifier{err: models.ErrMalformedResponse}, newTestCatalog(t, "bug"))

	_, err := svc.LabelDiscussion(context.Background(), models.Repo{Owner: "o", Name: "r"},
		models.Discussion{ID: "D1", Number: 3})

	assert.True(t, errors.Is(err, models.ErrMalformedResponse))
	assert.Zero(t, gh.addCalls, "no labels may be applied after a classification failure")
}

func TestLabelDiscussion_EmptyResultAppliesNothing(t *testing.T) {
	gh := &mockGitHub{labelIDs: map[string]string{"bug": "L1"}}
	svc := NewService(gh, &mockClassifier{tags: nil}, newTestCatalog(t, "bug"))

	applied, err := svc.LabelDiscussion(context.Background(), models.Repo{Owner: "o", Name: "r"},
		models.Discussion{ID: "D1", Number: 3})
	require.NoError(t, err)

	assert.Empty(t, applied)
	assert.Zero(t, gh.addCalls)
}

func TestLabelDiscussion_MissingRepoLabelsAreSkipped(t *testing.T) {
	// "python-sdk" is in the catalog but has no label in the repo.
	gh := &mockGitHub{labelIDs: map[string]string{"bug": "L1"}}
	svc := NewService(gh, &mockClassifier{tags: []string{"bug", "python-sdk"}}, newTestCatalog(t, "bug", "python-sdk"))

	applied, err := svc.LabelDiscussion(context.Background(), models.Repo{Owner: "o", Name: "r"},
		models.Discussion{ID: "D1", Number: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"bug"}, applied)
	assert.Equal(t, []string{"L1"}, gh.addedLabels)
}

func TestLabelDiscussion_NoExistingLabelsAppliesNothing(t *testing.T) {
	gh := &mockGitHub{labelIDs: map[string]string{}}
	svc := NewService(gh, &mockClassifier{tags: []string{"bug"}}, newTestCatalog(t, "bug"))

	applied, err := svc.LabelDiscussion(context.Background(), models.Repo{Owner: "o", Name: "r"},
		models.Discussion{ID: "D1", Number: 3})
	require.NoError(t, err)

	assert.Empty(t, applied)
	assert.Zero(t, gh.addCalls)
}

func TestClassifyDiscussion_EmptyCatalogSkipsModel(t *testing.T) {
	cls := &mockClassifier{err: errors.New("must not be called")}
	svc := NewService(&mockGitHub{}, cls, newTestCatalog(t))

	tags, err := svc.ClassifyDiscussion(context.Background(), models.Discussion{Title: "t"})
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestLabelByNumber_SkipsAlreadyLabeled(t *testing.T) {
	gh := &mockGitHub{
		discussions: []models.Discussion{{ID: "D1", Number: 5, Labels: []string{"bug"}}},
		labelIDs:    map[string]string{"bug": "L1"},
	}
	svc := NewService(gh, &mockClassifier{tags: []string{"bug"}}, newTestCatalog(t, "bug"))

	applied, err := svc.LabelByNumber(context.Background(), models.Repo{Owner: "o", Name: "r"}, 5)
	require.NoError(t, err)

	assert.Empty(t, applied)
	assert.Zero(t, gh.addCalls)
}

func TestProcessRepo_SkipsFailuresAndContinues(t *testing.T) {
	gh := &mockGitHub{
		discussions: []models.Discussion{
			{ID: "D1", Number: 1, Title: "first"},
			{ID: "D2", Number: 2, Title: "second"},
		},
		labelIDs: map[string]string{"bug": "L1"},
		addErr:   errors.New("boom"),
	}
	svc := NewService(gh, &mockClassifier{tags: []string{"bug"}}, newTestCatalog(t, "bug"))

	labeled, err := svc.ProcessRepo(context.Background(), models.Repo{Owner: "o", Name: "r"})
	require.NoError(t, err, "per-discussion failures must not fail the batch")

	assert.Zero(t, labeled)
	assert.Equal(t, 2, gh.addCalls, "each discussion gets its own attempt")
}

func TestProcessRepo_ListingFailureIsReturned(t *testing.T) {
	gh := &mockGitHub{listErr: models.ErrUpstream}
	svc := NewService(gh, &mockClassifier{}, newTestCatalog(t, "bug"))

	_, err := svc.ProcessRepo(context.Background(), models.Repo{Owner: "o", Name: "r"})
	assert.True(t, errors.Is(err, models.ErrUpstream))
}
