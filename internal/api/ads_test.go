package api

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/nmr14/adpoints-backend/internal/domain"
)

func TestListAds_RequiresToken(t *testing.T) {
	r, _ := setupRouter(t, 30*time.Second)

	missing := performJSONRequest(t, r, http.MethodGet, "/ads", nil, "")
	if missing.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a token, got %d", missing.Code)
	}

	invalid := performJSONRequest(t, r, http.MethodGet, "/ads", nil, "not-a-token")
	if invalid.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 with a bad token, got %d", invalid.Code)
	}
}

func TestCreateAd_ForbiddenForRegularUser(t *testing.T) {
	r, _ := setupRouter(t, 30*time.Second)
	token := registerAndLogin(t, r, "alice", "hunter22")

	resp := performJSONRequest(t, r, http.MethodPost, "/admin/ads",
		map[string]any{"title": "Ad", "url": "https://x", "duration": 10, "reward_points": 5}, token)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestListAds_CreationOrder(t *testing.T) {
	r, gdb := setupRouter(t, 30*time.Second)
	admin := adminToken(t, r, gdb)
	first := createAd(t, r, admin, "first", 10)
	second := createAd(t, r, admin, "second", 20)

	token := registerAndLogin(t, r, "alice", "hunter22")
	resp := performJSONRequest(t, r, http.MethodGet, "/ads", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var ads []domain.Ad
	decodeBody(t, resp, &ads)
	if len(ads) != 2 {
		t.Fatalf("expected 2 ads, got %d", len(ads))
	}
	if ads[0].ID != first || ads[1].ID != second {
		t.Fatalf("expected creation order [%d %d], got [%d %d]", first, second, ads[0].ID, ads[1].ID)
	}
	if ads[1].RewardPoints != 20 {
		t.Fatalf("expected reward_points 20, got %d", ads[1].RewardPoints)
	}
}

func TestViewAd_CreditsPoints(t *testing.T) {
	r, gdb := setupRouter(t, 30*time.Second)
	admin := adminToken(t, r, gdb)
	adID := createAd(t, r, admin, "promo", 50)
	token := registerAndLogin(t, r, "alice", "hunter22")

	resp := performJSONRequest(t, r, http.MethodPost, fmt.Sprintf("/ads/%d/view", adID), nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Reward  int  `json:"reward"`
	}
	decodeBody(t, resp, &body)
	if !body.Success || body.Reward != 50 {
		t.Fatalf("expected success with reward 50, got %+v", body)
	}

	var user domain.User
	if err := gdb.Where("username = ?", "alice").First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user.Points != 50 {
		t.Fatalf("expected 50 points, got %d", user.Points)
	}

	var views int64
	if err := gdb.Model(&domain.View{}).Where("user_id = ?", user.ID).Count(&views).Error; err != nil {
		t.Fatalf("failed to count views: %v", err)
	}
	if views != 1 {
		t.Fatalf("expected exactly one view row, got %d", views)
	}
}

func TestViewAd_CooldownActive(t *testing.T) {
	r, gdb := setupRouter(t, 30*time.Second)
	admin := adminToken(t, r, gdb)
	adID := createAd(t, r, admin, "promo", 50)
	token := registerAndLogin(t, r, "alice", "hunter22")

	first := performJSONRequest(t, r, http.MethodPost, fmt.Sprintf("/ads/%d/view", adID), nil, token)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first view to succeed, got %d", first.Code)
	}

	second := performJSONRequest(t, r, http.MethodPost, fmt.Sprintf("/ads/%d/view", adID), nil, token)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 inside cooldown, got %d", second.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, second, &body)
	if body.Error != "Cooldown active" {
		t.Fatalf("unexpected error message %q", body.Error)
	}

	var user domain.User
	if err := gdb.Where("username = ?", "alice").First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user.Points != 50 {
		t.Fatalf("expected points unchanged at 50, got %d", user.Points)
	}
	var views int64
	gdb.Model(&domain.View{}).Where("user_id = ?", user.ID).Count(&views)
	if views != 1 {
		t.Fatalf("expected one view row after rejected retry, got %d", views)
	}
}

func TestViewAd_SucceedsAfterCooldownExpires(t *testing.T) {
	r, gdb := setupRouter(t, 10*time.Millisecond)
	admin := adminToken(t, r, gdb)
	adID := createAd(t, r, admin, "promo", 30)
	token := registerAndLogin(t, r, "alice", "hunter22")

	first := performJSONRequest(t, r, http.MethodPost, fmt.Sprintf("/ads/%d/view", adID), nil, token)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first view to succeed, got %d", first.Code)
	}

	time.Sleep(25 * time.Millisecond)

	second := performJSONRequest(t, r, http.MethodPost, fmt.Sprintf("/ads/%d/view", adID), nil, token)
	if second.Code != http.StatusOK {
		t.Fatalf("expected view after cooldown to succeed, got %d", second.Code)
	}

	var user domain.User
	gdb.Where("username = ?", "alice").First(&user)
	if user.Points != 60 {
		t.Fatalf("expected 60 points after two views, got %d", user.Points)
	}
}

func TestViewAd_UnknownAd(t *testing.T) {
	r, gdb := setupRouter(t, 30*time.Second)
	token := registerAndLogin(t, r, "alice", "hunter22")

	resp := performJSONRequest(t, r, http.MethodPost, "/ads/999/view", nil, token)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	var views int64
	gdb.Model(&domain.View{}).Count(&views)
	if views != 0 {
		t.Fatalf("expected no view rows, got %d", views)
	}
}

func TestViewAd_ConcurrentRequestsSingleSuccess(t *testing.T) {
	r, gdb := setupRouter(t, 30*time.Second)
	admin := adminToken(t, r, gdb)
	adID := createAd(t, r, admin, "promo", 50)
	token := registerAndLogin(t, r, "alice", "hunter22")

	const workers = 100
	codes := make([]int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			resp := performJSONRequest(t, r, http.MethodPost, fmt.Sprintf("/ads/%d/view", adID), nil, token)
			codes[i] = resp.Code
		}(i)
	}
	wg.Wait()

	successes, cooldowns := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			successes++
		case http.StatusBadRequest:
			cooldowns++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 success, got %d", successes)
	}
	if cooldowns != workers-1 {
		t.Fatalf("expected %d cooldown rejections, got %d", workers-1, cooldowns)
	}

	var user domain.User
	gdb.Where("username = ?", "alice").First(&user)
	if user.Points != 50 {
		t.Fatalf("expected 50 points after one credited view, got %d", user.Points)
	}
	var views int64
	gdb.Model(&domain.View{}).Where("user_id = ?", user.ID).Count(&views)
	if views != 1 {
		t.Fatalf("expected exactly one view row, got %d", views)
	}
}
