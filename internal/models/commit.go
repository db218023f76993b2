package models

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
)

// strictJSON refuses keys that are not declared on the target struct.
var strictJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

type (
	// CommitRecord is one fetched commit normalized to the closed commit schema.
	CommitRecord struct {
		// SHA identifies the commit. It is not part of the schema.
		SHA     string       `json:"-"`
		Message string       `json:"message"`
		Stats   *CommitStats `json:"stats,omitempty"`
		Files   []FileChange `json:"files"`
	}

	CommitStats struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
		Total     int `json:"total"`
	}

	// FileChange describes the change of a single file in a commit. Patch is
	// empty for binary or unsupported files.
	FileChange struct {
		Filename  string `json:"filename"`
		Status    string `json:"status,omitempty"`
		Additions *int   `json:"additions,omitempty"`
		Deletions *int   `json:"deletions,omitempty"`
		Changes   *int   `json:"changes,omitempty"`
		Patch     string `json:"patch,omitempty"`
	}

	// PullRequestText is the human-written text of a pull request linked to a commit.
	PullRequestText struct {
		Title string `json:"title"`
		Body  string `json:"body,omitempty"`
	}

	// CommitQuery selects commits in the half-open range [Since, Until).
	// Zero times leave that side of the range open.
	CommitQuery struct {
		Since  time.Time
		Until  time.Time
		Author string
	}
)

// NewCommitRecord builds a record from the declared fields only. A nil files
// slice is normalized to an empty one because files is a required key.
func NewCommitRecord(sha, message string, stats *CommitStats, files []FileChange) CommitRecord {
	if files == nil {
		files = []FileChange{}
	}
	return CommitRecord{
		SHA:     sha,
		Message: message,
		Stats:   stats,
		Files:   files,
	}
}

func NewFileChange(filename, status string, additions, deletions, changes *int, patch string) FileChange {
	return FileChange{
		Filename:  filename,
		Status:    status,
		Additions: additions,
		Deletions: deletions,
		Changes:   changes,
		Patch:     patch,
	}
}

// Title returns the first line of the commit message.
func (c CommitRecord) Title() string {
	title, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(title)
}

// MetadataView returns a copy of the record without any patch text.
func (c CommitRecord) MetadataView() CommitRecord {
	files := make([]FileChange, len(c.Files))
	for i, f := range c.Files {
		f.Patch = ""
		files[i] = f
	}
	out := c
	out.Stats = c.Stats.clone()
	out.Files = files
	return out
}

// PatchView returns a copy of the record that keeps only filename and patch
// for each file.
func (c CommitRecord) PatchView() CommitRecord {
	files := make([]FileChange, len(c.Files))
	for i, f := range c.Files {
		files[i] = FileChange{
			Filename: f.Filename,
			Patch:    f.Patch,
		}
	}
	out := c
	out.Stats = c.Stats.clone()
	out.Files = files
	return out
}

// Validate checks the record against the commit schema.
func (c CommitRecord) Validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return domainErrors.NewSchemaValidationError("message", "is required and must not be empty")
	}
	if c.Files == nil {
		return domainErrors.NewSchemaValidationError("files", "is required")
	}
	if c.Stats != nil {
		if err := c.Stats.validate(); err != nil {
			return err
		}
	}
	for i, f := range c.Files {
		if err := f.validate(i); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON keeps files serialized as an array even when it is nil.
func (c CommitRecord) MarshalJSON() ([]byte, error) {
	type plain CommitRecord
	if c.Files == nil {
		c.Files = []FileChange{}
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(plain(c))
}

// ValidateCommitJSON decodes data with unknown keys rejected at every level
// and validates the decoded record.
func ValidateCommitJSON(data []byte) (CommitRecord, error) {
	var probe struct {
		Message *string `json:"message"`
		Files   *[]any  `json:"files"`
	}
	if err := jsoniter.Unmarshal(data, &probe); err != nil {
		return CommitRecord{}, domainErrors.NewSchemaValidationError("", fmt.Sprintf("invalid JSON: %v", err))
	}
	if probe.Message == nil {
		return CommitRecord{}, domainErrors.NewSchemaValidationError("message", "is required")
	}
	if probe.Files == nil || *probe.Files == nil {
		return CommitRecord{}, domainErrors.NewSchemaValidationError("files", "is required")
	}

	var record CommitRecord
	if err := strictJSON.Unmarshal(data, &record); err != nil {
		return CommitRecord{}, domainErrors.NewSchemaValidationError("", err.Error())
	}
	if err := requireFilenames(data); err != nil {
		return CommitRecord{}, err
	}
	if err := record.Validate(); err != nil {
		return CommitRecord{}, err
	}
	return record, nil
}

func requireFilenames(data []byte) error {
	var probe struct {
		Files []map[string]any `json:"files"`
	}
	if err := jsoniter.Unmarshal(data, &probe); err != nil {
		return domainErrors.NewSchemaValidationError("files", err.Error())
	}
	for i, f := range probe.Files {
		if _, ok := f["filename"]; !ok {
			return domainErrors.NewSchemaValidationError(fmt.Sprintf("files[%d].filename", i), "is required")
		}
	}
	return nil
}

func (s *CommitStats) clone() *CommitStats {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func (s *CommitStats) validate() error {
	switch {
	case s.Additions < 0:
		return domainErrors.NewSchemaValidationError("stats.additions", "must be non-negative")
	case s.Deletions < 0:
		return domainErrors.NewSchemaValidationError("stats.deletions", "must be non-negative")
	case s.Total < 0:
		return domainErrors.NewSchemaValidationError("stats.total", "must be non-negative")
	}
	return nil
}

func (f FileChange) validate(index int) error {
	field := func(name string) string {
		return fmt.Sprintf("files[%d].%s", index, name)
	}
	if strings.TrimSpace(f.Filename) == "" {
		return domainErrors.NewSchemaValidationError(field("filename"), "is required and must not be empty")
	}
	for name, v := range map[string]*int{"additions": f.Additions, "deletions": f.Deletions, "changes": f.Changes} {
		if v != nil && *v < 0 {
			return domainErrors.NewSchemaValidationError(field(name), "must be non-negative")
		}
	}
	return nil
}
