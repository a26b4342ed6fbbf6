package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numberedHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.*)$`)
	labelHeadingRe    = regexp.MustCompile(`^[\pL][\pL ]{0,40}:$`)
)

// DetectHeading guesses whether a single line of unstyled text is a section
// heading and at what level. It recognizes numbered headings ("3.2 Scope"),
// short all-caps lines and "Label:" lines. Returns 0 for body text.
func DetectHeading(line string) int {
	line = strings.TrimSpace(line)
	if line == "" || len(line) >= 100 || strings.ContainsRune(line, '\n') {
		return 0
	}
	if m := numberedHeadingRe.FindStringSubmatch(line); m != nil {
		// Sentences ending in a period are numbered list items, not headings.
		if strings.HasSuffix(m[2], ".") || len(strings.Fields(m[2])) > 12 {
			return 0
		}
		return strings.Count(m[1], ".") + 1
	}
	if isCapsHeading(line) {
		return 2
	}
	if labelHeadingRe.MatchString(line) {
		return 2
	}
	return 0
}

func isCapsHeading(line string) bool {
	if len(line) >= 80 || len(strings.Fields(line)) > 6 {
		return false
	}
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 3
}

// StripNumbering removes a leading outline number from a heading title.
func StripNumbering(title string) string {
	if m := numberedHeadingRe.FindStringSubmatch(strings.TrimSpace(title)); m != nil {
		return m[2]
	}
	return strings.TrimSpace(title)
}
