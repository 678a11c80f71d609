// Package brochure generates formatted marketing brochures from company
// websites. It scrapes site content, selects a few relevant sub-pages,
// distills everything into a bounded prompt, and invokes a hosted language
// model to produce the brochure text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, openai/, gemini/).
package brochure
