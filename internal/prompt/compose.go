// ABOUTME: Renders structured authoring fields into the stored prompt text
// ABOUTME: Fixed section order with Spanish uppercase headers, blank sections omitted

package prompt

import (
	"strings"
)

// Section header literals. Parse depends on these exact strings, so they are
// shared between both directions.
const (
	headerMission        = "MISIÓN:"
	headerSpecialization = "ESPECIALIZACIÓN:"
	headerRules          = "REGLAS:"
	headerTone           = "TONO:"
)

// Composer renders a Spec into the single free-text prompt that gets stored.
// Institution appears in the opening context line.
type Composer struct {
	Institution string
}

// Compose produces the canonical prompt text for an agent. Sections are
// emitted in fixed order; ESPECIALIZACIÓN and REGLAS are omitted entirely
// when their source fields are blank. The result is deterministic for a
// given (agentName, specialtyArea, spec) triple.
func (c Composer) Compose(agentName, specialtyArea string, spec Spec) string {
	var b strings.Builder

	b.WriteString("Eres ")
	b.WriteString(agentName)
	b.WriteString(" del ")
	b.WriteString(c.Institution)
	b.WriteString(", especializado en ")
	b.WriteString(specialtyArea)
	b.WriteString(".")

	b.WriteString("\n\n")
	b.WriteString(headerMission)
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(spec.Mission))

	if specialization := strings.TrimSpace(spec.Specialization); specialization != "" {
		b.WriteString("\n\n")
		b.WriteString(headerSpecialization)
		b.WriteString("\n")
		b.WriteString(specialization)
	}

	if rules := spec.CleanRules(); len(rules) > 0 {
		b.WriteString("\n\n")
		b.WriteString(headerRules)
		for _, rule := range rules {
			b.WriteString("\n- ")
			b.WriteString(rule)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(headerTone)
	b.WriteString("\n")
	b.WriteString(ToneText(spec.Tone))

	return b.String()
}
