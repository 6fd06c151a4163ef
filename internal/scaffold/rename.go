package scaffold

import (
	"regexp"
)

// TemplateSuffix marks a destination file whose content is a Go template.
const TemplateSuffix = ".tmpl"

// RenameRule maps a file base name to a new one. An exact rule replaces the
// whole name; a pattern rule replaces the matched part.
type RenameRule struct {
	exact       string
	pattern     *regexp.Regexp
	Replacement string
}

// Exact returns a rule matching the base name name exactly.
func Exact(name, replacement string) RenameRule {
	return RenameRule{exact: name, Replacement: replacement}
}

// Pattern returns a rule matching base names against expr. It panics if expr
// does not compile, like regexp.MustCompile.
func Pattern(expr, replacement string) RenameRule {
	return RenameRule{pattern: regexp.MustCompile(expr), Replacement: replacement}
}

// Match reports whether the rule applies to base.
func (r RenameRule) Match(base string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(base)
	}
	return base == r.exact
}

func (r RenameRule) rename(base string) string {
	if r.pattern != nil {
		return r.pattern.ReplaceAllLiteralString(base, r.Replacement)
	}
	return r.Replacement
}

// String returns the matcher text.
func (r RenameRule) String() string {
	if r.pattern != nil {
		return "/" + r.pattern.String() + "/ -> " + r.Replacement
	}
	return r.exact + " -> " + r.Replacement
}

// Rules is an ordered rule list. The first matching rule wins.
type Rules []RenameRule

// Apply returns the renamed base name, or base itself when no rule matches.
func (rs Rules) Apply(base string) string {
	for _, r := range rs {
		if r.Match(base) {
			return r.rename(base)
		}
	}
	return base
}

// DefaultRules returns the rules used for the built-in templates. Specific
// file names come before the extension patterns that would also match them.
func DefaultRules() Rules {
	return Rules{
		// Package tooling may rename a published .gitignore.
		Exact(".gitignore.template", ".gitignore"),
		Exact(".babelrc.template", ".babelrc"),
		Exact(".eslintrc.js", ".eslintrc.js"),

		Pattern(`\.md$`, ".md"+TemplateSuffix),
		Pattern(`\.json$`, ".json"+TemplateSuffix),
		Pattern(`\.webmanifest$`, ".webmanifest"+TemplateSuffix),
		Pattern(`\.html$`, ".html"+TemplateSuffix),
		Pattern(`\.css$`, ".css"+TemplateSuffix),
		Pattern(`\.js$`, ".js"+TemplateSuffix),
		Pattern(`\.jsx$`, ".jsx"+TemplateSuffix),
		Pattern(`\.ts$`, ".ts"+TemplateSuffix),
	}
}
