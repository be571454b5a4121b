package handler

import (
	"net/http"

	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/inventory"
	"github.com/lunefall/rewardengine/internal/logger"
	"github.com/lunefall/rewardengine/internal/reward"
)

// RewardInput is one reward entry in a grant request. Amount may be negative
// to consume (e.g. an exchange cost granted alongside its payout).
type RewardInput struct {
	Type    string `json:"type" validate:"required,rewardtype"`
	TypeKey string `json:"type_key" validate:"required,max=100"`
	Amount  int    `json:"amount" validate:"required"`
	Source  string `json:"source" validate:"source"`
}

type GrantRequest struct {
	UserID  string        `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Rewards []RewardInput `json:"rewards" validate:"required,min=1,max=100,dive"`
}

type GrantResponse struct {
	Message string                 `json:"message"`
	Rewards []domain.RewardHandler `json:"rewards"`
}

// HandleGrantRewards grants a batch of rewards to a user
// @Summary Grant rewards
// @Description Expand composite rewards, simulate capacity and apply the whole batch in one transaction
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body GrantRequest true "Grant details"
// @Success 200 {object} GrantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rewards/grant [post]
func HandleGrantRewards(expander *reward.Expander, inv inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant rewards"); err != nil {
			return
		}

		var flat []domain.RewardHandler
		for _, in := range req.Rewards {
			// Gacha draws consume pity state and must go through the draw
			// endpoint.
			if domain.RewardType(in.Type) == domain.RewardGacha {
				log.Warn("Gacha reward submitted to grant endpoint", "type_key", in.TypeKey)
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
				return
			}

			expanded, err := expander.FlattenHandler(domain.RewardHandler{
				Type:    domain.RewardType(in.Type),
				TypeKey: in.TypeKey,
				Amount:  in.Amount,
				Source:  domain.AcquireSource(in.Source),
			})
			if err != nil {
				respondServiceError(w, r, "Expand rewards", err)
				return
			}
			flat = append(flat, expanded...)
		}

		if err := inv.Grant(r.Context(), req.UserID, flat); err != nil {
			respondServiceError(w, r, "Grant rewards", err)
			return
		}

		log.Info("Rewards granted", "user_id", req.UserID, "rewards", len(flat))

		respondJSON(w, http.StatusOK, GrantResponse{
			Message: MsgRewardsGrantedSuccess,
			Rewards: flat,
		})
	}
}

type ItemOptionInput struct {
	OptionID string  `json:"option_id" validate:"required,max=100"`
	Value    float64 `json:"value"`
}

type AddItemRequest struct {
	UserID  string            `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ItemKey string            `json:"item_key" validate:"required,max=100"`
	Amount  int               `json:"amount" validate:"min=1,max=10000"`
	Options []ItemOptionInput `json:"options,omitempty" validate:"max=16,dive"`
}

// HandleAddItem grants item units with optionally predetermined sub-options
// @Summary Add item to inventory
// @Description Add item units directly; fixed equipment sub-options override rolled ones index-aligned
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Item details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rewards/item [post]
func HandleAddItem(inv inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
			return
		}

		fixed := make([]domain.ItemOption, 0, len(req.Options))
		for _, opt := range req.Options {
			fixed = append(fixed, domain.ItemOption{OptionID: opt.OptionID, Value: opt.Value})
		}

		if err := inv.AddItemWithOptions(r.Context(), req.UserID, req.ItemKey, req.Amount, fixed); err != nil {
			respondServiceError(w, r, "Add item", err)
			return
		}

		log.Info("Item added", "user_id", req.UserID, "item", req.ItemKey, "amount", req.Amount)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemAddedSuccess})
	}
}
