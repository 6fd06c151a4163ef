package project

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	secretAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	secretLength   = 13
)

// RenderConfig is the variable namespace available to template files.
type RenderConfig struct {
	Name          string // package name, e.g. "demo-app"
	AppName       string // humanized, e.g. "Demo App"
	AdminPassword string // random placeholder credential
}

// NewRenderConfig derives the render variables for a project name.
func NewRenderConfig(name string) (RenderConfig, error) {
	secret, err := GenerateSecret()
	if err != nil {
		return RenderConfig{}, err
	}
	return RenderConfig{
		Name:          name,
		AppName:       HumanizeAppName(name),
		AdminPassword: secret,
	}, nil
}

// GenerateSecret returns a random lowercase base-36 string.
func GenerateSecret() (string, error) {
	max := big.NewInt(int64(len(secretAlphabet)))
	var b strings.Builder
	for i := 0; i < secretLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating admin password: %w", err)
		}
		b.WriteByte(secretAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// Small words that stay lowercase unless they start the title.
var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "but": true, "by": true,
	"for": true, "from": true, "in": true, "into": true, "nor": true,
	"of": true, "off": true, "on": true, "onto": true, "or": true, "out": true,
	"over": true, "so": true, "the": true, "to": true, "with": true,
}

// HumanizeAppName turns a package name into a display title:
// "demo-app" → "Demo App", "rise_of_the_bots" → "Rise of the Bots".
func HumanizeAppName(name string) string {
	s := strings.ToLower(name)
	s = strings.TrimSuffix(s, "_id")
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)

	words := strings.Fields(s)
	title := cases.Title(language.English)
	for i, w := range words {
		if i > 0 && minorWords[w] {
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}
