package models

import "fmt"

// ChangeKind names one kind of change text that can be summarized on its own.
type ChangeKind string

const (
	KindCommitMessages ChangeKind = "commit-messages"
	KindPullRequests   ChangeKind = "pull-requests"
	KindCodePatches    ChangeKind = "code-patches"
)

// ChangeKinds returns every kind in the order they are reported.
func ChangeKinds() []ChangeKind {
	return []ChangeKind{KindCommitMessages, KindPullRequests, KindCodePatches}
}

// Description is the wording used for the kind inside prompts.
func (k ChangeKind) Description() string {
	switch k {
	case KindCommitMessages:
		return "git commit message text"
	case KindPullRequests:
		return "pull request text"
	case KindCodePatches:
		return "code edits in the form of a code diff patch"
	default:
		return string(k)
	}
}

// RangeSource selects which part of the commits feeds a range summary.
type RangeSource string

const (
	SourceMessages RangeSource = "messages"
	SourcePatches  RangeSource = "patches"
)

func ParseRangeSource(s string) (RangeSource, error) {
	switch RangeSource(s) {
	case SourceMessages, SourcePatches:
		return RangeSource(s), nil
	default:
		return "", fmt.Errorf("unknown source %q (expected %q or %q)", s, SourceMessages, SourcePatches)
	}
}

type (
	// KindSummary is the model output for one ChangeKind.
	KindSummary struct {
		Kind    ChangeKind
		Summary string
	}

	// RangeDigest groups the per-kind summaries of a commit range.
	RangeDigest struct {
		Titles    []string
		Summaries []KindSummary
	}
)
