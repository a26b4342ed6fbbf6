package suggest

import (
	"fmt"
	"strings"
)

const SystemPrompt = `You are a proposal manager reviewing the table of contents for a response to a request for proposal (RFP).`

const OutlinePrompt = `Review the proposed outline against the RFP below and suggest changes. Return a JSON array. Each element must have these fields:

- "title": section heading (string, max 200 chars)
- "status": "suggested_add" for a section the outline is missing, "suggested_remove" for an outline section the RFP does not call for, "keep" for an outline section that fits
- "reason": one sentence tying the suggestion to the RFP (string)
- "subsections": optional list of {"title", "reason"} objects for a suggested_add section

Rules:
- Use the exact outline title for "keep" and "suggested_remove" entries
- Only suggest sections the RFP asks for or clearly implies
- Prefer a few specific sections over many generic ones
- Return an empty array [] if the outline already fits the RFP

Respond with ONLY the JSON array, no other text.`

// BuildPrompt assembles the outline review prompt for one RFP.
func BuildPrompt(title string, outline []string, rfp string) string {
	var sb strings.Builder
	sb.WriteString(OutlinePrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("Proposal: %q\n", title))
	sb.WriteString("Current outline:\n")
	if len(outline) == 0 {
		sb.WriteString("(empty)\n")
	}
	for i, t := range outline {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, t))
	}
	sb.WriteString("---\nRFP:\n")
	sb.WriteString(rfp)
	return sb.String()
}
