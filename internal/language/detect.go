package language

import (
	"bytes"
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

const (
	// sampleSize bounds how much content the classifier looks at
	sampleSize = 8 * 1024

	// minSyntaxMarks is how many bracket, separator or operator bytes a
	// snippet needs before a classifier guess is believed
	minSyntaxMarks = 4
)

// syntaxMarks are bytes prose rarely uses but nearly every listing does
var syntaxMarks = []byte("{}()[];=<>$#")

// Detect suggests a registry language for a snippet. filename may be empty
// (pasted code); when present its extension is trusted first. Only registry
// languages are ever returned.
func Detect(filename string, code []byte) (Language, bool) {
	if len(code) > sampleSize {
		code = code[:sampleSize]
	}
	if enry.IsBinary(code) {
		return Language{}, false
	}

	if filename != "" {
		// extensions such as .ts or .cs are ambiguous in Linguist
		for _, name := range enry.GetLanguagesByExtension(filepath.Base(filename), code, nil) {
			if l, ok := byName(name); ok {
				return l, true
			}
		}
		if name := enry.GetLanguage(filepath.Base(filename), code); name != "" {
			if l, ok := byName(name); ok {
				return l, true
			}
		}
	}

	if len(bytes.TrimSpace(code)) == 0 {
		return Language{}, false
	}

	if name, _ := enry.GetLanguageByShebang(code); name != "" {
		if l, ok := byName(name); ok {
			return l, true
		}
	}

	candidates := make([]string, len(registry))
	for i, l := range registry {
		candidates[i] = l.Name
	}
	// The classifier always ranks some candidate first, even for prose
	name, safe := enry.GetLanguageByClassifier(code, candidates)
	if !safe && !looksLikeCode(code) {
		return Language{}, false
	}
	return byName(name)
}

func looksLikeCode(code []byte) bool {
	marks := 0
	for _, b := range code {
		if bytes.IndexByte(syntaxMarks, b) >= 0 {
			marks++
			if marks >= minSyntaxMarks {
				return true
			}
		}
	}
	return false
}
