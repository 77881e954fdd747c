package activity

import (
	"fmt"

	"github.com/nibzard/tasks-go/internal/utils"
)

// Format renders e as a one-line human-readable summary.
func Format(e Event) string {
	repo := e.Repo.Name
	switch e.Type {
	case PushEvent:
		return "Pushed to " + repo
	case IssuesEvent:
		return fmt.Sprintf("%s issue #%d in %s", utils.Capitalize(e.Payload.Action), e.Payload.issueNumber(), repo)
	case IssueCommentEvent:
		return fmt.Sprintf("Commented on issue #%d in %s", e.Payload.issueNumber(), repo)
	case ForkEvent:
		return "Forked " + repo
	case WatchEvent:
		return "Starred " + repo
	case PullRequestEvent:
		return fmt.Sprintf("%s pull request #%d in %s", utils.Capitalize(e.Payload.Action), e.Payload.Number, repo)
	default:
		return "Did something in " + repo
	}
}

// Lines formats at most limit events, in feed order, each prefixed "- ".
// A non-positive limit formats every event.
func Lines(events []Event, limit int) []string {
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, "- "+Format(e))
	}
	return lines
}
