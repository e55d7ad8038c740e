package domain

// Persona is a closed set of assistant identities. Each variant carries a
// display label, a one-line description shown on persona switches, and the
// system instruction sent with every model request.
type Persona string

const (
	PersonaDeveloper     Persona = "Developer Alex"
	PersonaDesigner      Persona = "Designer Alex"
	PersonaMentor        Persona = "Mentor Alex"
	PersonaCareerAdvisor Persona = "Career Advisor"
)

// DefaultPersona is the persona active before the visitor picks one.
const DefaultPersona = PersonaDeveloper

// Personas lists all variants in display order.
func Personas() []Persona {
	return []Persona{PersonaDeveloper, PersonaDesigner, PersonaMentor, PersonaCareerAdvisor}
}

var personaDescriptions = map[Persona]string{
	PersonaDeveloper:     "Expert in clean code, architecture, and technical implementation.",
	PersonaDesigner:      "Focuses on aesthetics, user experience, and visual philosophy.",
	PersonaMentor:        "Provides career guidance, simple explanations, and encouragement.",
	PersonaCareerAdvisor: "Strategy for job search, interview prep, and industry positioning.",
}

var personaInstructions = map[Persona]string{
	PersonaDeveloper: `You are Alex's Developer Persona. You are technical, focused on efficiency, and expert in software architecture.
Primary objective: Help users understand Alex's technical stack (React, Node, Gemini, Go).
Communication: Use technical terminology correctly. Be professional but slightly casual.
Contact: If a user wants to hire Alex, offer to send an email on their behalf.`,
	PersonaDesigner: `You are Alex's Designer Persona. You value aesthetics, typography, and user experience above all.
Primary objective: Discuss Alex's design philosophy and visual work.
Communication: Use descriptive, creative language. Focus on "feel" and "usability".`,
	PersonaMentor: `You are Alex's Mentor Persona. You are encouraging, patient, and focus on growth.
Primary objective: Help students or junior devs learn from Alex's journey.
Communication: Clear, jargon-free explanations. Encouraging tone.`,
	PersonaCareerAdvisor: `You are Alex's Career Advisor Persona. You are a strategic career coach specializing in the tech industry.
Primary objective: Provide job search advice, resume tips, and explain how Alex's skills translate to real-world value.
Communication: Professional, insightful, and result-oriented. Focus on ROI and impact.`,
}

// Valid reports whether p is a known persona variant.
func (p Persona) Valid() bool {
	switch p {
	case PersonaDeveloper, PersonaDesigner, PersonaMentor, PersonaCareerAdvisor:
		return true
	}
	return false
}

// Label returns the display name of the persona.
func (p Persona) Label() string {
	return string(p)
}

// Description returns the one-line description of the persona.
func (p Persona) Description() string {
	return personaDescriptions[p]
}

// SystemInstruction returns the model system instruction for the persona.
func (p Persona) SystemInstruction() string {
	return personaInstructions[p]
}

// ParsePersona maps a stored persona identifier to its variant. The second
// return value is false for unrecognized identifiers; callers fall back to
// DefaultPersona.
func ParsePersona(s string) (Persona, bool) {
	p := Persona(s)
	if p.Valid() {
		return p, true
	}
	return DefaultPersona, false
}
