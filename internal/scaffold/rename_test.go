package scaffold

import "testing"

func TestRules_FirstMatchWins(t *testing.T) {
	rules := Rules{
		Exact(".gitignore.template", ".gitignore"),
		Pattern(`\.md$`, ".md.hbs"),
	}

	tests := []struct {
		in   string
		want string
	}{
		{".gitignore.template", ".gitignore"},
		{"notes.md", "notes.md.hbs"},
		{"main.go", "main.go"},
		{"md", "md"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := rules.Apply(tt.in); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRules_OrderMatters(t *testing.T) {
	specific := Exact("README.md", "README.txt")
	generic := Pattern(`\.md$`, ".md.tmpl")

	if got := (Rules{specific, generic}).Apply("README.md"); got != "README.txt" {
		t.Errorf("specific first: got %q, want README.txt", got)
	}
	// A broader rule listed first makes the specific one unreachable.
	if got := (Rules{generic, specific}).Apply("README.md"); got != "README.md.tmpl" {
		t.Errorf("generic first: got %q, want README.md.tmpl", got)
	}
}

func TestDefaultRules(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".gitignore.template", ".gitignore"},
		{".babelrc.template", ".babelrc"},
		{".eslintrc.js", ".eslintrc.js"},
		{"main.js", "main.js.tmpl"},
		{"Round.jsx", "Round.jsx.tmpl"},
		{"index.ts", "index.ts.tmpl"},
		{"package.json", "package.json.tmpl"},
		{"README.md", "README.md.tmpl"},
		{"main.html", "main.html.tmpl"},
		{"main.css", "main.css.tmpl"},
		{"manifest.webmanifest", "manifest.webmanifest.tmpl"},
		{"logo.png", "logo.png"},
		{"release", "release"},
		{"file.json.bak", "file.json.bak"},
	}

	rules := DefaultRules()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := rules.Apply(tt.in); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenameRule_String(t *testing.T) {
	if got := Exact("a", "b").String(); got != "a -> b" {
		t.Errorf("String() = %q", got)
	}
	if got := Pattern(`\.md$`, ".md.tmpl").String(); got != `/\.md$/ -> .md.tmpl` {
		t.Errorf("String() = %q", got)
	}
}
