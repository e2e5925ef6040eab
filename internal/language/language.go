// Package language holds the fixed, ordered registry of languages a user can
// pick for a review.
package language

import "fmt"

// Language identifies a selectable source language.
//
// Name is used verbatim in review prompts and doubles as the GitHub Linguist
// name, which is what go-enry reports during detection.
type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// String returns the display name
func (l Language) String() string {
	return l.Name
}

// registry is ordered; the first entry is the default selection.
var registry = []Language{
	{ID: "javascript", Name: "JavaScript"},
	{ID: "typescript", Name: "TypeScript"},
	{ID: "python", Name: "Python"},
	{ID: "java", Name: "Java"},
	{ID: "csharp", Name: "C#"},
	{ID: "cpp", Name: "C++"},
	{ID: "go", Name: "Go"},
	{ID: "rust", Name: "Rust"},
	{ID: "ruby", Name: "Ruby"},
	{ID: "php", Name: "PHP"},
	{ID: "swift", Name: "Swift"},
	{ID: "kotlin", Name: "Kotlin"},
	{ID: "sql", Name: "SQL"},
	{ID: "html", Name: "HTML"},
	{ID: "css", Name: "CSS"},
	{ID: "shell", Name: "Shell"},
}

var byID = func() map[string]Language {
	m := make(map[string]Language, len(registry))
	for _, l := range registry {
		if _, dup := m[l.ID]; dup {
			panic(fmt.Sprintf("language: duplicate id %q", l.ID))
		}
		m[l.ID] = l
	}
	return m
}()

// All returns the registry in display order. The slice is a copy.
func All() []Language {
	out := make([]Language, len(registry))
	copy(out, registry)
	return out
}

// Default returns the language preselected in every surface.
func Default() Language {
	return registry[0]
}

// Lookup resolves an identifier back to its Language. The boolean is false
// for any id that is not registered, including the empty string.
func Lookup(id string) (Language, bool) {
	l, ok := byID[id]
	return l, ok
}

// MustLookup is Lookup for ids known at compile time.
func MustLookup(id string) Language {
	l, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("language: unknown id %q", id))
	}
	return l
}

// IDs returns the registered identifiers in display order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, l := range registry {
		ids[i] = l.ID
	}
	return ids
}

func byName(name string) (Language, bool) {
	for _, l := range registry {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}
