package governance

import (
	"fmt"
	"strings"
)

// FormatFeedback renders a result as markdown feedback for the model
// submitter. Clean acceptance renders to the empty string; rejection and
// advisory outcomes list the deciding rule and its ordered findings.
// Formatting only; the result is not modified.
func (r *Result) FormatFeedback() string {
	if r.Accepted() && len(r.Advisories) == 0 {
		return ""
	}

	var sb strings.Builder

	if r.Accepted() {
		sb.WriteString("## Governance Advisories\n\n")
		sb.WriteString("The model was accepted with advisory findings.\n\n")
		sb.WriteString(fmt.Sprintf("### Rule: %s\n\n", r.RuleID))
		for _, finding := range r.Advisories {
			sb.WriteString(fmt.Sprintf("- %s\n", finding))
		}
		return sb.String()
	}

	sb.WriteString("## Governance Failed\n\n")
	sb.WriteString(fmt.Sprintf("The model was rejected by the '%s' rule.\n\n", r.RuleID))
	sb.WriteString("### Findings\n\n")
	for _, finding := range r.Highlights {
		sb.WriteString(fmt.Sprintf("- %s\n", finding))
	}
	sb.WriteString("\nPlease address these findings and resubmit the model.\n")

	return sb.String()
}

// Findings returns the evidence carried by the result regardless of
// outcome: highlights when rejected, advisories when accepted with
// advisory findings.
func (r *Result) Findings() []string {
	if r.Status == StatusRejected {
		return r.Highlights
	}
	return r.Advisories
}
