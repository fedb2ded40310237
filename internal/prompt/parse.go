// ABOUTME: Recovers authoring fields from a stored prompt text
// ABOUTME: Heuristic header segmentation, not a structural deserializer

package prompt

import "strings"

// headers that terminate a section during extraction.
var sectionHeaders = []string{
	headerMission,
	headerSpecialization,
	headerRules,
	headerTone,
}

// Parse recovers a Spec from stored prompt text. The stored value is plain
// text, so this is a best-effort segmentation against the known header
// literals rather than a strict inverse of Compose:
//
//   - missing headers yield empty defaults, never an error
//   - tone is detected by keyword search over the whole text, so a mission
//     that mentions "formal" can shift the detected tone; that lossiness is
//     accepted
//   - fewer than two recovered rules come back as two empty strings, which
//     callers must treat as "needs re-authoring"
func Parse(text string) Spec {
	spec := Spec{
		Mission:        extractSection(text, headerMission),
		Specialization: extractSection(text, headerSpecialization),
		Rules:          extractRules(text),
		Tone:           detectTone(text),
	}
	return spec
}

// extractSection returns the trimmed text between the given header and the
// next recognized header (or end of input). Empty string when the header is
// absent.
func extractSection(text, header string) string {
	start := strings.Index(text, header)
	if start < 0 {
		return ""
	}
	body := text[start+len(header):]

	end := len(body)
	for _, other := range sectionHeaders {
		if other == header {
			continue
		}
		if idx := strings.Index(body, other); idx >= 0 && idx < end {
			end = idx
		}
	}

	return strings.TrimSpace(body[:end])
}

// extractRules collects the "-"-prefixed lines of the REGLAS section. When
// fewer than two are found the result is two empty strings so the editor
// re-opens with blank rule fields instead of a partial list.
func extractRules(text string) []string {
	section := extractSection(text, headerRules)

	rules := []string{}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		rules = append(rules, strings.TrimSpace(strings.TrimPrefix(line, "-")))
	}

	if len(rules) < MinRules {
		return []string{"", ""}
	}
	return rules
}

// detectTone classifies the tone by keyword search over the entire input,
// with fixed precedence. Substrings anywhere in the text count, including
// inside the mission or a rule.
func detectTone(text string) Tone {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "formal") || strings.Contains(lower, "profesional"):
		return ToneFormal
	case strings.Contains(lower, "técnico") || strings.Contains(lower, "tecnico"):
		return ToneTecnico
	case strings.Contains(lower, "amigable") || strings.Contains(lower, "empático"):
		return ToneAmigable
	default:
		return DefaultTone
	}
}
