package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// DiscoveryPageSize is the fixed number of profiles per discovery page.
const DiscoveryPageSize = 8

// AvailabilityAll is the sentinel that disables availability filtering.
const AvailabilityAll = "all"

// UserService provides profile and discovery business logic.
type UserService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

// DiscoverInput carries discovery listing filters.
type DiscoverInput struct {
	// ViewerID is excluded from results. Zero means an anonymous viewer.
	ViewerID uint
	// Skill filters by case-insensitive substring over offered and wanted
	// skills. Empty matches everyone.
	Skill string
	// Availability filters by exact value, case-insensitive. Empty or "all"
	// matches everyone.
	Availability string
	// Page is 1-based and clamped into the valid range.
	Page int
}

// DiscoveryItem is one profile card in a discovery listing.
type DiscoveryItem struct {
	User   models.User          `json:"user"`
	Rating models.RatingSummary `json:"rating"`
}

// DiscoveryPage is one page of discovery results.
type DiscoveryPage struct {
	Items      []DiscoveryItem `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalCount int             `json:"total_count"`
}

// Discover lists public profiles matching the filters, excluding the viewer.
// Filtering happens here rather than in SQL because skills are stored as
// serialized JSON columns.
func (s *UserService) Discover(ctx context.Context, input DiscoverInput) (*DiscoveryPage, error) {
	users, err := s.userRepo.ListPublic(ctx, input.ViewerID)
	if err != nil {
		return nil, err
	}

	matched := make([]models.User, 0, len(users))
	for _, u := range users {
		if matchesSkill(&u, input.Skill) && matchesAvailability(&u, input.Availability) {
			matched = append(matched, u)
		}
	}

	total := len(matched)
	totalPages := (total + DiscoveryPageSize - 1) / DiscoveryPageSize

	// The current page stays within [1, totalPages], falling back to 1 when
	// nothing matched.
	lastPage := totalPages
	if lastPage < 1 {
		lastPage = 1
	}
	page := input.Page
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	start := (page - 1) * DiscoveryPageSize
	end := start + DiscoveryPageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]DiscoveryItem, 0, end-start)
	for _, u := range matched[start:end] {
		summary, err := s.RatingSummaryFor(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, DiscoveryItem{User: u, Rating: *summary})
	}

	return &DiscoveryPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// matchesSkill reports whether the query is a case-insensitive substring of
// any offered or wanted skill.
func matchesSkill(u *models.User, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, s := range u.SkillsOffered {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	for _, s := range u.SkillsWanted {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

func matchesAvailability(u *models.User, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" || filter == AvailabilityAll {
		return true
	}
	return strings.EqualFold(u.Availability, filter)
}

// RatingSummaryFor aggregates a user's received feedback. The average is
// rounded to one decimal and nil when the user has no feedback.
func (s *UserService) RatingSummaryFor(ctx context.Context, userID uint) (*models.RatingSummary, error) {
	return ratingSummary(ctx, s.feedbackRepo, userID)
}

// GetUserByID returns a user's profile. Private profiles remain directly
// addressable; only discovery hides them.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfileInput carries profile fields to change. Nil pointers leave the
// corresponding field untouched.
type UpdateProfileInput struct {
	Name          *string               `json:"name"`
	Location      *string               `json:"location"`
	SkillsOffered *[]string             `json:"skills_offered"`
	SkillsWanted  *[]string             `json:"skills_wanted"`
	Availability  *string               `json:"availability"`
	ProfileStatus *models.ProfileStatus `json:"profile_status"`
}

// UpdateProfile applies a partial profile update for the user.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = *in.Name
	}
	if in.Location != nil {
		if err := validation.ValidateLocation(*in.Location); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Location = *in.Location
	}
	if in.SkillsOffered != nil {
		skills, err := validation.ValidateSkillList(*in.SkillsOffered)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.SkillsOffered = skills
	}
	if in.SkillsWanted != nil {
		skills, err := validation.ValidateSkillList(*in.SkillsWanted)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.SkillsWanted = skills
	}
	if in.Availability != nil {
		user.Availability = strings.ToLower(strings.TrimSpace(*in.Availability))
	}
	if in.ProfileStatus != nil {
		if err := validation.ValidateProfileStatus(*in.ProfileStatus); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.ProfileStatus = *in.ProfileStatus
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
