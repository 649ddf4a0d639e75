package server

import (
	"fmt"
	"net/http"
	"testing"

	"skillswap/internal/models"
)

func TestSwapLifecycleFlow(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db, nil)

	alice := createTestUser(t, db, "alice", []string{"React"}, []string{"Pottery"}, models.AvailabilityEvenings, models.ProfileStatusPublic)
	bob := createTestUser(t, db, "bob", []string{"Pottery"}, []string{"React"}, models.AvailabilityWeekends, models.ProfileStatusPublic)

	aliceApp := authedApp(s, alice.ID)
	bobApp := authedApp(s, bob.ID)

	// Alice proposes React for Pottery.
	resp := doJSON(t, aliceApp, http.MethodPost, "/api/swaps/", map[string]any{
		"responder_id":  bob.ID,
		"offered_skill": "React",
		"wanted_skill":  "Pottery",
		"message":       "Trade React lessons for pottery basics?",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create swap: expected 201, got %d", resp.StatusCode)
	}
	var created models.SwapRequest
	decodeJSON(t, resp, &created)
	if created.Status != models.SwapStatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}

	// Bob accepts.
	resp = doJSON(t, bobApp, http.MethodPost, fmt.Sprintf("/api/swaps/%d/accept", created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d", resp.StatusCode)
	}
	var accepted models.SwapRequest
	decodeJSON(t, resp, &accepted)
	if accepted.Status != models.SwapStatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}

	// Accepting again conflicts with the current state.
	resp = doJSON(t, bobApp, http.MethodPost, fmt.Sprintf("/api/swaps/%d/accept", created.ID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("double accept: expected 409, got %d", resp.StatusCode)
	}

	// Either party can complete; Alice does.
	resp = doJSON(t, aliceApp, http.MethodPost, fmt.Sprintf("/api/swaps/%d/complete", created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", resp.StatusCode)
	}

	var stored models.SwapRequest
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload swap: %v", err)
	}
	if stored.Status != models.SwapStatusCompleted {
		t.Fatalf("expected completed, got %s", stored.Status)
	}

	// Both parties review the completed exchange.
	resp = doJSON(t, aliceApp, http.MethodPost, "/api/feedback/", map[string]any{
		"swap_id": created.ID,
		"rating":  5,
		"comment": "Great teacher, very patient.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("alice feedback: expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, aliceApp, http.MethodPost, "/api/feedback/", map[string]any{
		"swap_id": created.ID,
		"rating":  4,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate feedback: expected 409, got %d", resp.StatusCode)
	}

	resp = doJSON(t, bobApp, http.MethodPost, "/api/feedback/", map[string]any{
		"swap_id": created.ID,
		"rating":  4,
		"comment": "Solid React intro.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("bob feedback: expected 201, got %d", resp.StatusCode)
	}

	// Bob's rating now reflects Alice's 5-star review.
	resp = doJSON(t, aliceApp, http.MethodGet, fmt.Sprintf("/api/users/%d/rating", bob.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rating: expected 200, got %d", resp.StatusCode)
	}
	var rating models.RatingSummary
	decodeJSON(t, resp, &rating)
	if rating.Count != 1 {
		t.Fatalf("expected 1 rating, got %d", rating.Count)
	}
	if rating.Average == nil || *rating.Average != 5.0 {
		t.Fatalf("expected average 5.0, got %v", rating.Average)
	}
}

func TestCreateSwapSkillNotOffered(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db, nil)

	alice := createTestUser(t, db, "alice", []string{"React"}, nil, models.AvailabilityEvenings, models.ProfileStatusPublic)
	bob := createTestUser(t, db, "bob", []string{"Pottery"}, nil, models.AvailabilityWeekends, models.ProfileStatusPublic)

	app := authedApp(s, alice.ID)
	resp := doJSON(t, app, http.MethodPost, "/api/swaps/", map[string]any{
		"responder_id":  bob.ID,
		"offered_skill": "Welding",
		"wanted_skill":  "Pottery",
		"message":       "I would love to learn pottery from you.",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	decodeJSON(t, resp, &errResp)
	if errResp.Code != models.CodeValidation {
		t.Fatalf("expected %s, got %s", models.CodeValidation, errResp.Code)
	}

	var count int64
	db.Model(&models.SwapRequest{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no swap rows, got %d", count)
	}
}

func TestRespondByRequesterForbidden(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db, nil)

	alice := createTestUser(t, db, "alice", []string{"React"}, nil, models.AvailabilityEvenings, models.ProfileStatusPublic)
	bob := createTestUser(t, db, "bob", []string{"Pottery"}, nil, models.AvailabilityWeekends, models.ProfileStatusPublic)

	swap := models.SwapRequest{
		RequesterID:  alice.ID,
		ResponderID:  bob.ID,
		OfferedSkill: "React",
		WantedSkill:  "Pottery",
		Message:      "Trade React lessons for pottery basics?",
		Status:       models.SwapStatusPending,
	}
	if err := db.Create(&swap).Error; err != nil {
		t.Fatalf("create swap: %v", err)
	}

	app := authedApp(s, alice.ID)
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/swaps/%d/accept", swap.ID), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	decodeJSON(t, resp, &errResp)
	if errResp.Code != models.CodeUnauthorized {
		t.Fatalf("expected %s, got %s", models.CodeUnauthorized, errResp.Code)
	}
}

func TestGetSwapNotFound(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db, nil)
	alice := createTestUser(t, db, "alice", nil, nil, models.AvailabilityEvenings, models.ProfileStatusPublic)

	app := authedApp(s, alice.ID)
	resp := doJSON(t, app, http.MethodGet, "/api/swaps/999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestWithdrawPendingSwap(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db, nil)

	alice := createTestUser(t, db, "alice", []string{"React"}, nil, models.AvailabilityEvenings, models.ProfileStatusPublic)
	bob := createTestUser(t, db, "bob", []string{"Pottery"}, nil, models.AvailabilityWeekends, models.ProfileStatusPublic)

	swap := models.SwapRequest{
		RequesterID:  alice.ID,
		ResponderID:  bob.ID,
		OfferedSkill: "React",
		WantedSkill:  "Pottery",
		Message:      "Trade React lessons for pottery basics?",
		Status:       models.SwapStatusPending,
	}
	if err := db.Create(&swap).Error; err != nil {
		t.Fatalf("create swap: %v", err)
	}

	app := authedApp(s, alice.ID)
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/swaps/%d/withdraw", swap.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stored models.SwapRequest
	if err := db.First(&stored, swap.ID).Error; err != nil {
		t.Fatalf("reload swap: %v", err)
	}
	if stored.Status != models.SwapStatusDeleted {
		t.Fatalf("expected deleted, got %s", stored.Status)
	}
	if !stored.RequesterHidden {
		t.Fatal("expected swap hidden from requester inbox")
	}
	if stored.ResponderHidden {
		t.Fatal("withdraw must not touch the responder's inbox flag")
	}
}

func TestRemoveSwapFromInboxIsPerParty(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db, nil)

	alice := createTestUser(t, db, "alice", []string{"React"}, nil, models.AvailabilityEvenings, models.ProfileStatusPublic)
	bob := createTestUser(t, db, "bob", []string{"Pottery"}, nil, models.AvailabilityWeekends, models.ProfileStatusPublic)

	swap := models.SwapRequest{
		RequesterID:  alice.ID,
		ResponderID:  bob.ID,
		OfferedSkill: "React",
		WantedSkill:  "Pottery",
		Message:      "Trade React lessons for pottery basics?",
		Status:       models.SwapStatusRejected,
	}
	if err := db.Create(&swap).Error; err != nil {
		t.Fatalf("create swap: %v", err)
	}

	aliceApp := authedApp(s, alice.ID)
	bobApp := authedApp(s, bob.ID)

	resp := doJSON(t, aliceApp, http.MethodDelete, fmt.Sprintf("/api/swaps/%d", swap.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	// Alice's inbox no longer lists it; Bob's still does.
	resp = doJSON(t, aliceApp, http.MethodGet, "/api/swaps/", nil)
	var aliceInbox struct {
		Swaps []models.SwapView `json:"swaps"`
	}
	decodeJSON(t, resp, &aliceInbox)
	if len(aliceInbox.Swaps) != 0 {
		t.Fatalf("expected empty inbox for alice, got %d entries", len(aliceInbox.Swaps))
	}

	resp = doJSON(t, bobApp, http.MethodGet, "/api/swaps/", nil)
	var bobInbox struct {
		Swaps []models.SwapView `json:"swaps"`
	}
	decodeJSON(t, resp, &bobInbox)
	if len(bobInbox.Swaps) != 1 {
		t.Fatalf("expected 1 inbox entry for bob, got %d", len(bobInbox.Swaps))
	}
	if bobInbox.Swaps[0].Direction != "incoming" {
		t.Fatalf("expected incoming for bob, got %s", bobInbox.Swaps[0].Direction)
	}
}
