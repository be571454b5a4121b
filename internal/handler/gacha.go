package handler

import (
	"net/http"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/gacha"
	"github.com/lunefall/rewardengine/internal/logger"
)

// GachaHandler bundles the draw endpoints
type GachaHandler struct {
	svc gacha.Service
}

// NewGachaHandler creates a new gacha handler
func NewGachaHandler(svc gacha.Service) *GachaHandler {
	return &GachaHandler{svc: svc}
}

type DrawRequest struct {
	UserID   string `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	GachaKey string `json:"gacha_key" validate:"required,max=100"`
	Count    int    `json:"count" validate:"min=1,max=100"`
}

type DrawResponse struct {
	GachaKey string                 `json:"gacha_key"`
	Rewards  []domain.RewardHandler `json:"rewards"`
	Modes    []domain.DrawMode      `json:"modes"`
	Counters domain.PityCounters    `json:"counters"`
}

// HandleDraw performs a batch of gacha draws
// @Summary Perform gacha draws
// @Description Resolve count draws against a gacha key, commit the rewards and updated pity counters atomically
// @Tags gacha
// @Accept json
// @Produce json
// @Param request body DrawRequest true "Draw details"
// @Success 200 {object} DrawResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /gacha/draw [post]
func (h *GachaHandler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req DrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Gacha draw"); err != nil {
		return
	}

	log.Debug("Draw request", "user_id", req.UserID, "gacha_key", req.GachaKey, "count", req.Count)

	result, err := h.svc.Draw(r.Context(), req.UserID, req.GachaKey, req.Count)
	if err != nil {
		respondServiceError(w, r, "Gacha draw", err)
		return
	}

	log.Info("Draw completed", "user_id", req.UserID, "gacha_key", req.GachaKey, "rewards", len(result.Rewards))

	respondJSON(w, http.StatusOK, DrawResponse{
		GachaKey: result.GachaKey,
		Rewards:  result.Rewards,
		Modes:    result.Modes,
		Counters: result.Counters,
	})
}

type CountersResponse struct {
	GachaKey string              `json:"gacha_key"`
	Counters domain.PityCounters `json:"counters"`
}

// HandleGetCounters returns the persisted pity counters for a user and gacha key
// @Summary Get pity counters
// @Description Returns the current pity counter state for one user and gacha key
// @Tags gacha
// @Produce json
// @Param userID path string true "User ID"
// @Param gachaKey path string true "Gacha key"
// @Success 200 {object} CountersResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userID}/counters/{gachaKey} [get]
func (h *GachaHandler) HandleGetCounters(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}
	gachaKey, ok := GetPathParam(r, w, "gachaKey")
	if !ok {
		return
	}

	counters, err := h.svc.GetCounters(r.Context(), userID, gachaKey)
	if err != nil {
		respondServiceError(w, r, "Get counters", err)
		return
	}

	respondJSON(w, http.StatusOK, CountersResponse{GachaKey: gachaKey, Counters: counters})
}
