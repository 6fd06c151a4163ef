package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "package.schema.json"

//go:embed schema/package.schema.json
var schemaBytes []byte

var packageSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
})

var printer = message.NewPrinter(language.English)

// ValidationResult is the outcome of checking a manifest against the
// package schema.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue // sorted by Path, then Keyword
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string // JSON pointer into the manifest, e.g. "/dependencies/react"
	Message string
	Keyword string
}

// String renders the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Validate checks package.json bytes against the embedded schema. The error
// return covers unparseable input; violations are reported as Issues.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := packageSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	return &ValidationResult{Issues: issuesOf(ve)}, nil
}

// ValidateFile reads path and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Validate(data)
}

// issuesOf flattens the leaves of a validation error tree into a sorted,
// duplicate-free list. Structural keywords that only group other failures
// are dropped.
func issuesOf(root *jsonschema.ValidationError) []ValidationIssue {
	seen := make(map[ValidationIssue]bool)
	var issues []ValidationIssue

	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(ve.Causes) > 0 {
			stack = append(stack, ve.Causes...)
			continue
		}

		issue, ok := leafIssue(ve)
		if ok && !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}

	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Keyword < issues[j].Keyword
	})
	return issues
}

func leafIssue(ve *jsonschema.ValidationError) (ValidationIssue, bool) {
	if ve.ErrorKind == nil {
		return ValidationIssue{}, false
	}
	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return ValidationIssue{}, false
	}
	switch keyword := kw[len(kw)-1]; keyword {
	case "allOf", "$ref":
		return ValidationIssue{}, false
	default:
		var path string
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		return ValidationIssue{
			Path:    path,
			Message: ve.ErrorKind.LocalizedString(printer),
			Keyword: keyword,
		}, true
	}
}
