package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/suggest"
)

// SuggestionService resolves a user's profile into a suggestion request and
// delegates to the configured gateway client.
type SuggestionService struct {
	userRepo repository.UserRepository
	client   suggest.Client
}

// NewSuggestionService returns a new SuggestionService. client may be nil
// when no gateway is configured.
func NewSuggestionService(userRepo repository.UserRepository, client suggest.Client) *SuggestionService {
	return &SuggestionService{
		userRepo: userRepo,
		client:   client,
	}
}

// SuggestForUser asks the gateway for skill suggestions. Skill lists default
// to the user's stored profile when the caller does not supply them; the
// profile description is always caller-supplied since profiles do not store
// free-form text.
func (s *SuggestionService) SuggestForUser(ctx context.Context, userID uint, input suggest.Input) (*suggest.Output, error) {
	if s.client == nil {
		return nil, models.NewGatewayError("Skill suggestions are not configured", nil)
	}

	if len(input.SkillsOffered) == 0 || len(input.SkillsWanted) == 0 {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(input.SkillsOffered) == 0 {
			input.SkillsOffered = user.SkillsOffered
		}
		if len(input.SkillsWanted) == 0 {
			input.SkillsWanted = user.SkillsWanted
		}
	}

	return s.client.Suggest(ctx, input)
}
