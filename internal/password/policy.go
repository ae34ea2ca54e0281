package password

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Policy validates candidate passwords against strength rules. The rule
// tables are plain data so callers can swap in their own lists (tests,
// localization) without touching the checks themselves.
type Policy struct {
	MinLength        int
	MaxLength        int
	SpecialChars     string
	Blacklist        []string
	Sequences        []string
	KeyboardPatterns []string
	PersonalWords    []string
}

// DefaultPolicy returns a Policy loaded with the stock rule tables.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:        8,
		MaxLength:        128,
		SpecialChars:     defaultSpecialChars,
		Blacklist:        defaultBlacklist,
		Sequences:        defaultSequences,
		KeyboardPatterns: defaultKeyboardPatterns,
		PersonalWords:    defaultPersonalWords,
	}
}

// Validate checks the candidate against every rule and returns the complete
// list of violations, or nil when the password is acceptable. Only the empty
// check short-circuits; all other rules are evaluated against the same input.
func (p Policy) Validate(candidate string) []string {
	if candidate == "" {
		return []string{"password must be a non-empty string"}
	}

	var violations []string

	// Length bounds count characters, not bytes, so multibyte runes
	// weigh the same as ASCII.
	length := utf8.RuneCountInString(candidate)
	if length < p.MinLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	} else if length > p.MaxLength {
		violations = append(violations, fmt.Sprintf("password must not exceed %d characters", p.MaxLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial, hasSpace bool
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSpace(r):
			hasSpace = true
		}
		if strings.ContainsRune(p.SpecialChars, r) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		violations = append(violations, "password must include at least one uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "password must include at least one lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must include at least one number")
	}
	if !hasSpecial {
		violations = append(violations, "password must include at least one special character")
	}
	if hasSpace {
		violations = append(violations, "password must not contain spaces")
	}

	lowered := strings.ToLower(candidate)

	for _, common := range p.Blacklist {
		if lowered == common {
			violations = append(violations, "password is too common and easily guessable")
			break
		}
	}

	for _, seq := range p.Sequences {
		if strings.Contains(lowered, seq) {
			violations = append(violations, "password contains sequential patterns (e.g. abc, 123)")
			break
		}
	}

	if hasRepeatedRun(candidate, 3) {
		violations = append(violations, "password contains 3 or more repeating characters")
	}

	for _, pattern := range p.KeyboardPatterns {
		if strings.Contains(lowered, pattern) {
			violations = append(violations, "password contains a keyboard pattern (e.g. qwerty, asdfgh)")
			break
		}
	}

	if p.containsPersonalInfo(lowered) {
		violations = append(violations, "password must not contain personal information (e.g. year, month, name)")
	}

	return violations
}

func (p Policy) containsPersonalInfo(lowered string) bool {
	if yearPattern.MatchString(lowered) {
		return true
	}
	for _, word := range p.PersonalWords {
		if containsWord(lowered, word) {
			return true
		}
	}
	return false
}

// containsWord reports whether word occurs in s bounded by non-letter
// characters (or the string edges), mirroring a \b regex match.
func containsWord(s, word string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(rune(s[start-1]))
		afterOK := end == len(s) || !isWordChar(rune(s[end]))
		if beforeOK && afterOK {
			return true
		}
		from = start + 1
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func hasRepeatedRun(s string, n int) bool {
	run := 1
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
		prev = r
	}
	return false
}
