package server

import (
	"context"
	"net/http"
	"testing"

	"skillswap/internal/models"
	"skillswap/internal/suggest"
)

type stubSuggestClient struct {
	fn func(ctx context.Context, input suggest.Input) (*suggest.Output, error)
}

func (s *stubSuggestClient) Suggest(ctx context.Context, input suggest.Input) (*suggest.Output, error) {
	return s.fn(ctx, input)
}

func TestSuggestSkills(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)

	var seen suggest.Input
	client := &stubSuggestClient{fn: func(_ context.Context, input suggest.Input) (*suggest.Output, error) {
		seen = input
		return &suggest.Output{
			SuggestedSkillsToOffer:   []string{"TypeScript"},
			SuggestedSkillsToRequest: []string{"Ceramics"},
		}, nil
	}}
	s := newTestServer(db, client)

	user := createTestUser(t, db, "alice", []string{"React"}, []string{"Pottery"}, models.AvailabilityEvenings, models.ProfileStatusPublic)
	app := authedApp(s, user.ID)

	// Empty body falls back to the stored profile's skill lists.
	resp := doJSON(t, app, http.MethodPost, "/api/suggestions", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out suggest.Output
	decodeJSON(t, resp, &out)
	if len(out.SuggestedSkillsToOffer) != 1 || out.SuggestedSkillsToOffer[0] != "TypeScript" {
		t.Fatalf("unexpected offer suggestions: %v", out.SuggestedSkillsToOffer)
	}
	if len(seen.SkillsOffered) != 1 || seen.SkillsOffered[0] != "React" {
		t.Fatalf("expected profile skills forwarded to gateway, got %v", seen.SkillsOffered)
	}
	if len(seen.SkillsWanted) != 1 || seen.SkillsWanted[0] != "Pottery" {
		t.Fatalf("expected profile wants forwarded to gateway, got %v", seen.SkillsWanted)
	}
}

func TestSuggestSkillsGatewayFailure(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	client := &stubSuggestClient{fn: func(context.Context, suggest.Input) (*suggest.Output, error) {
		return nil, models.NewGatewayError("Suggestion request timed out", nil)
	}}
	s := newTestServer(db, client)

	user := createTestUser(t, db, "alice", []string{"React"}, nil, models.AvailabilityEvenings, models.ProfileStatusPublic)
	app := authedApp(s, user.ID)

	resp := doJSON(t, app, http.MethodPost, "/api/suggestions", map[string]any{})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	decodeJSON(t, resp, &errResp)
	if errResp.Code != models.CodeGateway {
		t.Fatalf("expected %s, got %s", models.CodeGateway, errResp.Code)
	}
	if !errResp.Retryable {
		t.Fatal("gateway errors must be marked retryable")
	}
}

func TestSuggestSkillsUnconfigured(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db, nil)

	user := createTestUser(t, db, "alice", nil, nil, models.AvailabilityEvenings, models.ProfileStatusPublic)
	app := authedApp(s, user.ID)

	resp := doJSON(t, app, http.MethodPost, "/api/suggestions", map[string]any{})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}
