package vault

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "roulette_backend/internal/api/dto/vault"
	"roulette_backend/internal/api/httperr"
	"roulette_backend/internal/converter"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/req"
	"roulette_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.VaultService
}

type Handler struct {
	serv service.VaultService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Create создаёт хранилище токена с начальной ликвидностью
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.CreateVaultRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vault, err := h.serv.CreateVault(r.Context(), userID, payload.Mint, payload.Amount)
	if err != nil {
		log.Println("CreateVault error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToVaultResponse(vault))
}

// Provide довносит ликвидность в хранилище
func (h *Handler) Provide(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.ProvideLiquidityRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.serv.ProvideLiquidity(r.Context(), userID, payload.Mint, payload.Amount); err != nil {
		log.Println("ProvideLiquidity error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Withdraw выводит принципал провайдера вместе с накопленными наградами
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	amount, err := h.serv.WithdrawLiquidity(r.Context(), userID, chi.URLParam(r, "mint"))
	if err != nil {
		log.Println("WithdrawLiquidity error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawResponse{Amount: amount})
}

// WithdrawRevenue выводит только награды провайдера
func (h *Handler) WithdrawRevenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	amount, err := h.serv.WithdrawProviderRevenue(r.Context(), userID, chi.URLParam(r, "mint"))
	if err != nil {
		log.Println("WithdrawProviderRevenue error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawResponse{Amount: amount})
}

// WithdrawOwnerRevenue выплачивает доход владельца на счет казны
func (h *Handler) WithdrawOwnerRevenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	amount, err := h.serv.WithdrawOwnerRevenue(r.Context(), userID, chi.URLParam(r, "mint"))
	if err != nil {
		log.Println("WithdrawOwnerRevenue error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawResponse{Amount: amount})
}

// DistributeReserve разносит часть резерва выплат по наградам
func (h *Handler) DistributeReserve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	amount, err := h.serv.DistributePayoutReserve(r.Context(), userID, chi.URLParam(r, "mint"))
	if err != nil {
		log.Println("DistributePayoutReserve error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.WithdrawResponse{Amount: amount})
}

// State отдает состояние хранилища
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	vault, err := h.serv.VaultState(r.Context(), chi.URLParam(r, "mint"))
	if err != nil {
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToVaultResponse(vault))
}

// Rewards отдает накопленные, но не выведенные награды провайдера
func (h *Handler) Rewards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	amount, err := h.serv.UnclaimedRewards(r.Context(), userID, chi.URLParam(r, "mint"))
	if err != nil {
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.RewardsResponse{UnclaimedRewards: amount})
}
