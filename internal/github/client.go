package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shurcooL/githubv4"
	log "github.com/sirupsen/logrus"

	"labeler/internal/models"
)

// Client wraps the GitHub GraphQL v4 API. Discussions and their
// labels are only reachable over GraphQL.
type Client struct {
	gql *githubv4.Client
}

// NewClient wraps an authenticated HTTP client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{gql: githubv4.NewClient(httpClient)}
}

type discussionNode struct {
	ID       githubv4.String
	Number   githubv4.Int
	Title    githubv4.String
	Body     githubv4.String
	Category struct {
		Name githubv4.String
	}
	Labels struct {
		Nodes []struct {
			Name githubv4.String
		}
	} `graphql:"labels(first: 10)"`
}

func (n discussionNode) toModel() models.Discussion {
	d := models.Discussion{
		ID:       string(n.ID),
		Number:   int(n.Number),
		Title:    string(n.Title),
		Body:     string(n.Body),
		Category: string(n.Category.Name),
	}
	for _, l := range n.Labels.Nodes {
		d.Labels = append(d.Labels, string(l.Name))
	}
	return d
}

// ListRecentDiscussions returns the ten most recently created
// discussions in the repository.
func (c *Client) ListRecentDiscussions(ctx context.Context, repo models.Repo) ([]models.Discussion, error) {
	var q struct {
		Repository struct {
			Discussions struct {
				Nodes []discussionNode
			} `graphql:"discussions(first: 10, orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("%w: listing discussions for %s: %v", models.ErrUpstream, repo, err)
	}

	discussions := make([]models.Discussion, 0, len(q.Repository.Discussions.Nodes))
	for _, n := range q.Repository.Discussions.Nodes {
		discussions = append(discussions, n.toModel())
	}
	return discussions, nil
}

// ListUnlabeledDiscussions returns the recent discussions that carry
// no labels yet.
func (c *Client) ListUnlabeledDiscussions(ctx context.Context, repo models.Repo) ([]models.Discussion, error) {
	all, err := c.ListRecentDiscussions(ctx, repo)
	if err != nil {
		return nil, err
	}
	unlabeled := make([]models.Discussion, 0, len(all))
	for _, d := range all {
		if d.Unlabeled() {
			unlabeled = append(unlabeled, d)
		}
	}
	return unlabeled, nil
}

// GetDiscussion fetches a single discussion by number.
func (c *Client) GetDiscussion(ctx context.Context, repo models.Repo, number int) (models.Discussion, error) {
	var q struct {
		Repository struct {
			Discussion discussionNode `graphql:"discussion(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]interface{}{
		"owner":  githubv4.String(repo.Owner),
		"name":   githubv4.String(repo.Name),
		"number": githubv4.Int(number),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return models.Discussion{}, fmt.Errorf("%w: fetching discussion %s#%d: %v", models.ErrUpstream, repo, number, err)
	}
	return q.Repository.Discussion.toModel(), nil
}

// ResolveLabelIDs maps label names to repository label node IDs.
// Names without a matching repository label are returned in missing;
// labels are never created here.
func (c *Client) ResolveLabelIDs(ctx context.Context, repo models.Repo, names []string) (ids []string, missing []string, err error) {
	var q struct {
		Repository struct {
			Labels struct {
				Nodes []struct {
					ID   githubv4.String
					Name githubv4.String
				}
			} `graphql:"labels(first: 100)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return nil, nil, fmt.Errorf("%w: listing labels for %s: %v", models.ErrUpstream, repo, err)
	}

	byName := make(map[string]string, len(q.Repository.Labels.Nodes))
	for _, l := range q.Repository.Labels.Nodes {
		byName[string(l.Name)] = string(l.ID)
	}

	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		log.Warnf("Labels %v do not exist in %s and must be created manually", missing, repo)
	}
	return ids, missing, nil
}

// AddLabels attaches labels to a discussion in one mutation.
func (c *Client) AddLabels(ctx context.Context, discussionID string, labelIDs []string) error {
	ids := make([]githubv4.ID, len(labelIDs))
	for i, id := range labelIDs {
		ids[i] = githubv4.ID(id)
	}

	var m struct {
		AddLabelsToLabelable struct {
			ClientMutationID githubv4.String
		} `graphql:"addLabelsToLabelable(input: $input)"`
	}
	input := githubv4.AddLabelsToLabelableInput{
		LabelableID: githubv4.ID(discussionID),
		LabelIDs:    ids,
	}

	if err := c.gql.Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("%w: adding labels to %s: %v", models.ErrUpstream, discussionID, err)
	}
	return nil
}
