// Package suggest generates skill suggestions for a user profile by calling
// an external language model through the Anthropic Messages API.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"skillswap/internal/models"
)

// Input carries the profile fields the suggestion prompt is built from.
type Input struct {
	SkillsOffered      []string `json:"skillsOffered"`
	SkillsWanted       []string `json:"skillsWanted"`
	ProfileDescription string   `json:"profileDescription,omitempty"`
}

// Output is the structured suggestion result. Field names match the wire
// contract expected by clients.
type Output struct {
	SuggestedSkillsToOffer   []string `json:"suggestedSkillsToOffer"`
	SuggestedSkillsToRequest []string `json:"suggestedSkillsToRequest"`
}

// Client produces skill suggestions for a profile. Implementations must
// return a *models.AppError with CodeGateway for any upstream failure,
// including malformed responses.
type Client interface {
	Suggest(ctx context.Context, input Input) (*Output, error)
}

const promptTemplate = `You are a skill suggestion expert, helping users discover new skills to offer and request on a skill swapping platform.

Given the user's current skills offered and wanted, and a profile description, suggest new skills for them to offer and request.

Skills Offered: %s
Skills Wanted: %s
Profile Description: %s

Consider common skill pairings and skills that complement the user's existing skills.

Respond with only a JSON object with "suggestedSkillsToOffer" and "suggestedSkillsToRequest" fields. Each field must contain an array of suggested skill names. Do not include any other text.`

// parseOutput decodes and validates a model response. Both arrays must be
// present; pointer fields distinguish a missing key from an empty array.
func parseOutput(raw string) (*Output, error) {
	raw = strings.TrimSpace(raw)
	// Models occasionally wrap the JSON in a code fence despite instructions.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var probe struct {
		SuggestedSkillsToOffer   *[]string `json:"suggestedSkillsToOffer"`
		SuggestedSkillsToRequest *[]string `json:"suggestedSkillsToRequest"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, models.NewGatewayError("Suggestion response was not valid JSON", err)
	}
	if probe.SuggestedSkillsToOffer == nil {
		return nil, models.NewGatewayError(
			"Suggestion response missing suggestedSkillsToOffer",
			errors.New("missing field: suggestedSkillsToOffer"),
		)
	}
	if probe.SuggestedSkillsToRequest == nil {
		return nil, models.NewGatewayError(
			"Suggestion response missing suggestedSkillsToRequest",
			errors.New("missing field: suggestedSkillsToRequest"),
		)
	}

	out := &Output{
		SuggestedSkillsToOffer:   sanitizeSkills(*probe.SuggestedSkillsToOffer),
		SuggestedSkillsToRequest: sanitizeSkills(*probe.SuggestedSkillsToRequest),
	}
	return out, nil
}

func sanitizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func formatSkillList(skills []string) string {
	if len(skills) == 0 {
		return "(none)"
	}
	return strings.Join(skills, ", ")
}
