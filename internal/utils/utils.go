package utils

import (
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
)

// GenerateName creates a random, memorable name like "wispy-dust"
func GenerateName() string {
	seed := time.Now().UTC().UnixNano()
	nameGenerator := namegenerator.NewNameGenerator(seed)

	// Some names might have underscores; convert to hyphens for consistency
	return strings.ReplaceAll(nameGenerator.Generate(), "_", "-")
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
