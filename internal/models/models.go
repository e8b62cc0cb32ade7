package models

// Tag is a single catalog entry. The catalog is loaded once per run;
// Name is unique within it.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Discussion is one GitHub repository discussion as returned by the
// GraphQL API. ID is the GraphQL node id, Number the human-facing
// discussion number.
type Discussion struct {
	ID       string
	Number   int
	Title    string
	Body     string
	Category string
	Labels   []string
}

// Unlabeled reports whether the discussion carries no labels yet.
func (d Discussion) Unlabeled() bool {
	return len(d.Labels) == 0
}

// Repo identifies a GitHub repository as "owner/name".
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}
