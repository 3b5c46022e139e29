// Package sanitizer rewrites untrusted text before it reaches a log sink.
// Rules pair a filter (which runes match) with a transform (what replaces them).
// A Sanitizer holds no mutable state after construction and is safe for concurrent use.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Runes not printable per strconv.IsPrint
	FilterControl                         // Control characters (unicode.IsControl)
	FilterWhitespace                      // Whitespace characters (unicode.IsSpace)
	FilterLineBreak                       // '\n', '\r', U+2028, U+2029
)

// Transform flags for character transformation
const (
	TransformStrip      uint64 = 1 << iota // Removes the character
	TransformHexEncode                     // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformJSONEscape                    // Escapes with JSON backslash sequences
	TransformSpace                         // Replaces the character with a single space
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw  PolicyPreset = "raw"  // Passthrough
	PolicyTxt  PolicyPreset = "txt"  // Single-line text output, non-printables hex encoded
	PolicyJSON PolicyPreset = "json" // Text to be embedded in a JSON string
	PolicyFlat PolicyPreset = "flat" // Line breaks folded into spaces, other controls stripped
)

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:  {},
	PolicyTxt:  {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyJSON: {{filter: FilterControl, transform: TransformJSONEscape}},
	PolicyFlat: {
		{filter: FilterLineBreak, transform: TransformSpace},
		{filter: FilterControl, transform: TransformStrip},
	},
}

// filterCheckers is ordered so matching is deterministic
var filterCheckers = []struct {
	flag  uint64
	check func(rune) bool
}{
	{FilterNonPrintable, func(r rune) bool { return !strconv.IsPrint(r) }},
	{FilterControl, unicode.IsControl},
	{FilterWhitespace, unicode.IsSpace},
	{FilterLineBreak, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
	}},
}

// Sanitizer applies an ordered list of rules; the first matching rule wins per rune
type Sanitizer struct {
	rules []rule
}

// New creates a Sanitizer with no rules
func New() *Sanitizer {
	return &Sanitizer{}
}

// ForPolicy creates a Sanitizer preloaded with a preset
func ForPolicy(preset PolicyPreset) *Sanitizer {
	return New().Policy(preset)
}

// Rule appends a custom rule
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset; unknown presets are ignored
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies the configured rules to data.
// Input that no rule touches is returned without allocation.
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 || s.clean(data) {
		return data
	}

	buf := make([]byte, 0, len(data)+16)
	for _, r := range data {
		matched := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				buf = applyTransform(buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			buf = utf8.AppendRune(buf, r)
		}
	}
	return string(buf)
}

// AppendSanitized appends the sanitized form of data to buf
func (s *Sanitizer) AppendSanitized(buf []byte, data string) []byte {
	return append(buf, s.Sanitize(data)...)
}

// clean reports whether no rune of data matches any rule
func (s *Sanitizer) clean(data string) bool {
	for _, r := range data {
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				return false
			}
		}
	}
	return true
}

func matchesFilter(r rune, filterMask uint64) bool {
	for _, fc := range filterCheckers {
		if filterMask&fc.flag != 0 && fc.check(r) {
			return true
		}
	}
	return false
}

func applyTransform(buf []byte, r rune, transformMask uint64) []byte {
	switch {
	case transformMask&TransformStrip != 0:
		return buf

	case transformMask&TransformHexEncode != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		buf = append(buf, '<')
		buf = append(buf, hex.EncodeToString(runeBytes[:n])...)
		return append(buf, '>')

	case transformMask&TransformSpace != 0:
		return append(buf, ' ')

	case transformMask&TransformJSONEscape != 0:
		switch r {
		case '\n':
			return append(buf, '\\', 'n')
		case '\r':
			return append(buf, '\\', 'r')
		case '\t':
			return append(buf, '\\', 't')
		case '\b':
			return append(buf, '\\', 'b')
		case '\f':
			return append(buf, '\\', 'f')
		case '"':
			return append(buf, '\\', '"')
		case '\\':
			return append(buf, '\\', '\\')
		}
		if r < 0x20 || r == 0x7f {
			return append(buf, fmt.Sprintf("\\u%04x", r)...)
		}
	}
	return utf8.AppendRune(buf, r)
}
