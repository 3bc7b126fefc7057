package github

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"satspots.org/internal/form"
	"satspots.org/internal/privacy"
)

// preferredFieldOrder fixes the top of the issue body table; any remaining
// fields follow alphabetically.
var preferredFieldOrder = []string{
	form.FieldName,
	form.FieldAddress,
	form.FieldCategory,
	form.FieldLocationID,
	form.FieldDateTime,
	form.FieldCheckType,
	form.FieldPublicPostURL,
	form.FieldCriticalEvidence,
	form.FieldPhotoURL,
	form.FieldWebsite,
	form.FieldComment,
}

// PublishSubmission renders the public half of a submission and opens the
// tracker issue. Implements the httpapi.IssuePublisher interface.
func (c *Client) PublishSubmission(ctx context.Context, kind form.Kind, public map[string]string) (int, string, error) {
	issue, err := c.CreateIssue(ctx, IssueTitle(kind, public), IssueBody(kind, public), IssueLabels(kind))
	if err != nil {
		return 0, "", err
	}
	return issue.Number, issue.HTMLURL, nil
}

// IssueTitle builds the tracker issue title for a submission.
func IssueTitle(kind form.Kind, public map[string]string) string {
	switch kind {
	case form.KindNewLocation:
		return "New location: " + public[form.FieldName]
	case form.KindCheckCritical:
		return "⚠️ Critical check: " + public[form.FieldLocationID]
	default:
		return "Check: " + public[form.FieldLocationID]
	}
}

// IssueLabels returns the labels attached to the submission issue.
func IssueLabels(kind form.Kind) []string {
	return []string{"submission", string(kind)}
}

// IssueBody renders the public fields as a markdown table with pseudonymous
// attribution. Contact data never reaches this function; the privacy
// partition runs first.
func IssueBody(kind form.Kind, public map[string]string) string {
	var b strings.Builder
	switch kind {
	case form.KindNewLocation:
		b.WriteString("A new location was submitted for review.\n\n")
	case form.KindCheckCritical:
		b.WriteString("A critical change was reported: the location may have closed, moved, or stopped accepting payments.\n\n")
	default:
		b.WriteString("A location check was submitted.\n\n")
	}

	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, name := range orderedFieldNames(public) {
		if name == "submitter_id" {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", name, sanitizeCell(public[name]))
	}

	fmt.Fprintf(&b, "\nSubmitted by: %s\n", privacy.Pseudonym(public["submitter_id"]))
	return b.String()
}

func orderedFieldNames(public map[string]string) []string {
	seen := make(map[string]bool, len(public))
	var names []string
	for _, name := range preferredFieldOrder {
		if _, ok := public[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range public {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// sanitizeCell keeps untrusted values from breaking out of the table.
func sanitizeCell(v string) string {
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.ReplaceAll(v, "|", "\\|")
}
