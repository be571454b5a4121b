package handler

import (
	"net/http"

	"github.com/lunefall/rewardengine/internal/inventory"
	"github.com/lunefall/rewardengine/internal/rewardlog"
)

type InventoryResponse struct {
	UserID string               `json:"user_id"`
	Items  []inventory.ItemView `json:"items"`
}

// HandleGetInventory returns a user's inventory view
// @Summary Get inventory
// @Description Returns all inventory records for a user, equipment sub-options included
// @Tags inventory
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} InventoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userID}/inventory [get]
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetPathParam(r, w, "userID")
		if !ok {
			return
		}

		items, err := svc.ListItems(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		respondJSON(w, http.StatusOK, InventoryResponse{UserID: userID, Items: items})
	}
}

type RewardLogResponse struct {
	UserID  string           `json:"user_id"`
	Entries []rewardlog.Entry `json:"entries"`
}

// HandleGetRewardLog returns a user's recent resolution audit entries
// @Summary Get reward log
// @Description Returns the most recent audit entries for a user, newest first
// @Tags audit
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Maximum entries to return (default 50)"
// @Success 200 {object} RewardLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userID}/rewardlog [get]
func HandleGetRewardLog(repo rewardlog.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetPathParam(r, w, "userID")
		if !ok {
			return
		}

		limit, ok := GetOptionalIntParam(r, w, "limit", 50)
		if !ok {
			return
		}
		if limit < 1 || limit > 500 {
			http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
			return
		}

		entries, err := repo.GetEntriesByUser(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, "Get reward log", err)
			return
		}

		if entries == nil {
			entries = []rewardlog.Entry{}
		}

		respondJSON(w, http.StatusOK, RewardLogResponse{UserID: userID, Entries: entries})
	}
}
