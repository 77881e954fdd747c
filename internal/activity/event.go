package activity

// Event types with a dedicated summary.
const (
	PushEvent         = "PushEvent"
	IssuesEvent       = "IssuesEvent"
	IssueCommentEvent = "IssueCommentEvent"
	ForkEvent         = "ForkEvent"
	WatchEvent        = "WatchEvent"
	PullRequestEvent  = "PullRequestEvent"
)

// Event is one entry of the feed.
type Event struct {
	Type    string  `json:"type"`
	Repo    Repo    `json:"repo"`
	Payload Payload `json:"payload"`
}

// Repo identifies the repository an event happened in.
type Repo struct {
	Name string `json:"name"` // owner/name
}

// Payload carries the event-specific fields.
type Payload struct {
	Action string `json:"action,omitempty"`
	Number int    `json:"number,omitempty"` // pull request number
	Issue  *Issue `json:"issue,omitempty"`
}

// Issue is the issue an Issues or IssueComment event refers to.
type Issue struct {
	Number int `json:"number"`
}

func (p Payload) issueNumber() int {
	if p.Issue == nil {
		return 0
	}
	return p.Issue.Number
}
