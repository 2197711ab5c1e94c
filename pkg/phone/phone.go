// Package phone renders volunteer phone numbers for display. Masking is an
// irreversible display transform; stored values are never modified.
package phone

import "strings"

// maskedShort is returned for values too short to partially reveal.
const maskedShort = "****"

// Mask returns the partially-redacted display form of raw.
//
// Blank input returns "" (callers omit the field rather than emit an empty
// string). Trimmed values shorter than 4 characters are fully obscured.
// Anything else keeps the first 4 and last 3 characters around a fixed
// "-***-" infix, so the output length never depends on the input length.
func Mask(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) < 4 {
		return maskedShort
	}
	return trimmed[:4] + "-***-" + trimmed[len(trimmed)-3:]
}

// Full returns the unmasked display form: the trimmed raw value, or "" when
// blank so callers omit the field.
func Full(raw string) string {
	return strings.TrimSpace(raw)
}
