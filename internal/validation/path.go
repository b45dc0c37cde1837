package validation

import (
	"fmt"
	"strings"

	"github.com/systmms/envstore/pkg/paramstore"
)

// Value size limits per storage tier, in bytes.
const (
	MaxStandardValueBytes = 4 * 1024
	MaxAdvancedValueBytes = 8 * 1024
)

// allowedPathSymbols are the non-alphanumeric characters accepted in a
// hierarchical path.
var allowedPathSymbols = "/-_."

// CleanPath normalizes a user-supplied string into a store-compatible
// hierarchical path. Single-segment names pass through unchanged;
// multi-segment paths are forced absolute by prepending the delimiter.
// Empty or whitespace-only strings are rejected.
func CleanPath(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", paramstore.InvalidPathError{Path: s, Reason: "path cannot be empty"}
	}

	cleaned := strings.TrimRight(s, "/")
	if cleaned == "" {
		cleaned = "/"
	}

	// Collapse repeated delimiters so /app//db and /app/db address the
	// same parameter.
	for strings.Contains(cleaned, "//") {
		cleaned = strings.ReplaceAll(cleaned, "//", "/")
	}

	if !strings.Contains(cleaned, "/") {
		return cleaned, nil
	}
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return cleaned, nil
}

// ValidatePath checks that s contains only characters a parameter path may
// hold (a-z, A-Z, 0-9 and / - _ .). On failure the error message underlines
// the illegal characters with carets:
//
//	illegal characters in path:
//	my parameter!
//	  ^         ^
func ValidatePath(s string) error {
	if strings.TrimSpace(s) == "" {
		return paramstore.InvalidPathError{Path: s, Reason: "path cannot be empty"}
	}

	var marks strings.Builder
	illegal := false
	for _, r := range s {
		if isAlnum(r) || strings.ContainsRune(allowedPathSymbols, r) {
			marks.WriteByte(' ')
		} else {
			marks.WriteByte('^')
			illegal = true
		}
	}

	if illegal {
		return paramstore.InvalidPathError{
			Path: s,
			Reason: fmt.Sprintf("illegal characters:\n%s\n%s\nallowed characters: a-z A-Z 0-9 %s",
				s, marks.String(), strings.Join(strings.Split(allowedPathSymbols, ""), " ")),
		}
	}
	return nil
}

// CleanAndValidatePath applies CleanPath followed by ValidatePath.
func CleanAndValidatePath(s string) (string, error) {
	cleaned, err := CleanPath(s)
	if err != nil {
		return "", err
	}
	if err := ValidatePath(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}

// ValidateValue enforces the backend's size limit for the given tier.
func ValidateValue(value string, tier paramstore.Tier) error {
	limit := MaxStandardValueBytes
	if tier == paramstore.TierAdvanced {
		limit = MaxAdvancedValueBytes
	}
	if len(value) > limit {
		return fmt.Errorf("value is %d bytes, the %s tier allows at most %d", len(value), tierName(tier), limit)
	}
	return nil
}

func tierName(tier paramstore.Tier) string {
	if tier == "" {
		return string(paramstore.TierStandard)
	}
	return string(tier)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
