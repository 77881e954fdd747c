// Package activity fetches a GitHub user's public event feed and renders
// each event as a one-line summary.
//
// Only the fields needed for the summary are decoded: the event type, the
// repository name, and the payload's action and issue or pull request number.
package activity
