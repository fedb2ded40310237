// ABOUTME: Structured authoring fields for an agent's system prompt
// ABOUTME: Tone enum, instruction texts, and field-level validation

package prompt

import "strings"

// Tone selects the register of the final instruction block.
type Tone string

const (
	ToneFormal   Tone = "formal"
	ToneAmigable Tone = "amigable"
	ToneTecnico  Tone = "tecnico"
)

// DefaultTone is used when the authored value is missing or unrecognized.
const DefaultTone = ToneAmigable

// toneTexts maps each tone to the instruction text emitted under TONO.
// Unrecognized tones fall back to the amigable entry.
var toneTexts = map[Tone]string{
	ToneFormal:   "Mantén un tono formal y profesional en todas tus respuestas. Usa un lenguaje preciso y evita expresiones coloquiales.",
	ToneAmigable: "Mantén un tono amigable y cercano. Sé cálido y empático con cada persona que te consulta.",
	ToneTecnico:  "Mantén un tono técnico y directo. Usa terminología precisa y estructura tus respuestas con claridad.",
}

// MinRules is the minimum number of non-blank rules an authored spec needs.
const MinRules = 2

// MaxRecommendedRules is advisory only; authoring more rules is allowed.
const MaxRecommendedRules = 5

// Spec holds the structured authoring fields behind a system prompt. It is
// never persisted directly: Composer renders it to the stored text and Parse
// recovers it from that text when re-editing.
type Spec struct {
	Mission        string
	Specialization string
	Rules          []string
	Tone           Tone
}

// CleanRules returns the rules with blank entries removed and the rest
// trimmed, in authoring order.
func (s Spec) CleanRules() []string {
	rules := []string{}
	for _, rule := range s.Rules {
		trimmed := strings.TrimSpace(rule)
		if trimmed != "" {
			rules = append(rules, trimmed)
		}
	}
	return rules
}

// ValidateSpec checks the authoring fields and returns a field->message map.
// An empty map means the spec is valid.
func ValidateSpec(s Spec) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(s.Mission) == "" {
		errs["mission"] = "la misión es obligatoria"
	}

	if len(s.CleanRules()) < MinRules {
		errs["rules"] = "se requieren al menos 2 reglas"
	}

	switch s.Tone {
	case ToneFormal, ToneAmigable, ToneTecnico, "":
	default:
		errs["tone"] = "tono no reconocido"
	}

	return errs
}

// ToneText returns the instruction text for a tone, falling back to the
// amigable text for unrecognized values.
func ToneText(tone Tone) string {
	if text, ok := toneTexts[tone]; ok {
		return text
	}
	return toneTexts[DefaultTone]
}
