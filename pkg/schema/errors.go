package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("schema: invalid descriptor")

// Issue describes a single structural problem. Path is the dotted field path
// relative to the document root; an empty Path refers to the root itself.
type Issue struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError aggregates the issues found in a descriptor tree.
type ValidationError struct {
	Document string
	Issues   []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrInvalid.Error()
	}
	var b strings.Builder
	if e.Document != "" {
		fmt.Fprintf(&b, "schema: document %q is invalid: ", e.Document)
	} else {
		b.WriteString("schema: invalid descriptor: ")
	}
	for idx, issue := range e.Issues {
		if idx > 0 {
			b.WriteString("; ")
		}
		b.WriteString(issue.String())
	}
	return b.String()
}

// Is lets errors.Is match ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// IssuesOf extracts the issues carried by err, if any.
func IssuesOf(err error) []Issue {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return append([]Issue(nil), verr.Issues...)
	}
	return nil
}
