package service

import (
	"context"
	"fmt"
	"testing"

	"skillswap/internal/models"
)

type feedbackRepoStub struct {
	createFn               func(context.Context, *models.Feedback) error
	listForUserFn          func(context.Context, uint) ([]models.Feedback, error)
	getBySwapAndReviewerFn func(context.Context, uint, uint) (*models.Feedback, error)
}

func (s *feedbackRepoStub) Create(ctx context.Context, feedback *models.Feedback) error {
	return s.createFn(ctx, feedback)
}
func (s *feedbackRepoStub) ListForUser(ctx context.Context, reviewedID uint) ([]models.Feedback, error) {
	return s.listForUserFn(ctx, reviewedID)
}
func (s *feedbackRepoStub) GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID uint) (*models.Feedback, error) {
	return s.getBySwapAndReviewerFn(ctx, swapID, reviewerID)
}

func noopFeedbackRepo() *feedbackRepoStub {
	return &feedbackRepoStub{
		createFn:               func(context.Context, *models.Feedback) error { return nil },
		listForUserFn:          func(context.Context, uint) ([]models.Feedback, error) { return nil, nil },
		getBySwapAndReviewerFn: func(context.Context, uint, uint) (*models.Feedback, error) { return nil, nil },
	}
}

func discoveryUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{
			ID:            uint(i + 1),
			Name:          fmt.Sprintf("User %d", i+1),
			SkillsOffered: []string{"Web Development"},
			Availability:  models.AvailabilityWeekends,
			ProfileStatus: models.ProfileStatusPublic,
		}
	}
	return users
}

func TestUserServiceDiscoverExcludesViewer(t *testing.T) {
	var gotExclude uint
	repo := noopUserRepo()
	repo.listPublicFn = func(_ context.Context, excludeUserID uint) ([]models.User, error) {
		gotExclude = excludeUserID
		return nil, nil
	}

	svc := NewUserService(repo, noopFeedbackRepo())
	if _, err := svc.Discover(context.Background(), DiscoverInput{ViewerID: 42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotExclude != 42 {
		t.Fatalf("viewer should be excluded from discovery, got exclude=%d", gotExclude)
	}
}

func TestUserServiceDiscoverPagination(t *testing.T) {
	repo := noopUserRepo()
	repo.listPublicFn = func(context.Context, uint) ([]models.User, error) {
		return discoveryUsers(9), nil
	}

	svc := NewUserService(repo, noopFeedbackRepo())

	page1, err := svc.Discover(context.Background(), DiscoverInput{Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page1.Items) != 8 || page1.TotalPages != 2 || page1.TotalCount != 9 {
		t.Fatalf("unexpected first page: items=%d totalPages=%d totalCount=%d",
			len(page1.Items), page1.TotalPages, page1.TotalCount)
	}

	page2, err := svc.Discover(context.Background(), DiscoverInput{Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2.Items) != 1 || page2.Items[0].User.ID != 9 {
		t.Fatalf("unexpected second page: %#v", page2.Items)
	}

	// Out-of-range pages clamp instead of erroring.
	clamped, err := svc.Discover(context.Background(), DiscoverInput{Page: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clamped.Page != 2 || len(clamped.Items) != 1 {
		t.Fatalf("expected clamp to last page, got page=%d items=%d", clamped.Page, len(clamped.Items))
	}

	low, err := svc.Discover(context.Background(), DiscoverInput{Page: -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low.Page != 1 {
		t.Fatalf("expected clamp to first page, got %d", low.Page)
	}
}

func TestUserServiceDiscoverEmptyResult(t *testing.T) {
	repo := noopUserRepo()
	repo.listPublicFn = func(context.Context, uint) ([]models.User, error) { return nil, nil }

	svc := NewUserService(repo, noopFeedbackRepo())
	page, err := svc.Discover(context.Background(), DiscoverInput{Page: 1, Skill: "quantum knitting"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 0 || page.TotalPages != 0 || page.TotalCount != 0 {
		t.Fatalf("expected empty page, got %#v", page)
	}
	if page.Page != 1 {
		t.Fatalf("expected page 1 on empty result, got %d", page.Page)
	}

	// An out-of-range page still clamps to 1 when nothing matched.
	page, err = svc.Discover(context.Background(), DiscoverInput{Page: 7, Skill: "quantum knitting"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.TotalPages != 0 || len(page.Items) != 0 {
		t.Fatalf("expected clamp to page 1 on empty result, got %#v", page)
	}
}

func TestUserServiceDiscoverSkillFilter(t *testing.T) {
	repo := noopUserRepo()
	repo.listPublicFn = func(context.Context, uint) ([]models.User, error) {
		return []models.User{
			{ID: 1, SkillsOffered: []string{"Web Development"}},
			{ID: 2, SkillsOffered: []string{"Baking"}, SkillsWanted: []string{"web design"}},
			{ID: 3, SkillsOffered: []string{"Pottery"}},
		}, nil
	}

	svc := NewUserService(repo, noopFeedbackRepo())

	// Case-insensitive substring match across offered and wanted skills.
	page, err := svc.Discover(context.Background(), DiscoverInput{Skill: "WEB"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(page.Items))
	}
	if page.Items[0].User.ID != 1 || page.Items[1].User.ID != 2 {
		t.Fatalf("unexpected matches: %#v", page.Items)
	}
}

func TestUserServiceDiscoverAvailabilityFilter(t *testing.T) {
	repo := noopUserRepo()
	repo.listPublicFn = func(context.Context, uint) ([]models.User, error) {
		return []models.User{
			{ID: 1, Availability: models.AvailabilityWeekends},
			{ID: 2, Availability: models.AvailabilityEvenings},
		}, nil
	}

	svc := NewUserService(repo, noopFeedbackRepo())

	page, err := svc.Discover(context.Background(), DiscoverInput{Availability: "Evenings"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].User.ID != 2 {
		t.Fatalf("unexpected availability matches: %#v", page.Items)
	}

	// "all" disables the filter.
	page, err = svc.Discover(context.Background(), DiscoverInput{Availability: AvailabilityAll})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected all users with availability=all, got %d", len(page.Items))
	}
}

func TestUserServiceUpdateProfileValidation(t *testing.T) {
	stored := &models.User{ID: 1, Name: "Alice", SkillsOffered: []string{"React"}}
	repo := noopUserRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.User, error) { return stored, nil }

	svc := NewUserService(repo, noopFeedbackRepo())

	empty := ""
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Name: &empty})
	assertCode(t, err, models.CodeValidation)

	badStatus := models.ProfileStatus("friends-only")
	_, err = svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{ProfileStatus: &badStatus})
	assertCode(t, err, models.CodeValidation)
}

func TestUserServiceUpdateProfilePartial(t *testing.T) {
	stored := &models.User{
		ID:            1,
		Name:          "Alice",
		Location:      "San Francisco, CA",
		SkillsOffered: []string{"React"},
	}
	var saved *models.User
	repo := noopUserRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.User, error) { return stored, nil }
	repo.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	svc := NewUserService(repo, noopFeedbackRepo())

	skills := []string{" Web Development ", "Pottery"}
	updated, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{SkillsOffered: &skills})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Alice" {
		t.Fatalf("untouched fields must survive, got name %q", updated.Name)
	}
	if len(saved.SkillsOffered) != 2 || saved.SkillsOffered[0] != "Web Development" {
		t.Fatalf("skills should be trimmed, got %#v", saved.SkillsOffered)
	}
}
