package bet

import (
	"log"
	"net/http"

	dto "roulette_backend/internal/api/dto/bet"
	"roulette_backend/internal/api/httperr"
	"roulette_backend/internal/converter"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/req"
	"roulette_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.BetService
}

type Handler struct {
	serv service.BetService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Place принимает ставку игрока в текущем раунде
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.PlaceBetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.serv.PlaceBet(r.Context(), userID, payload.Mint, converter.ToBetModel(payload)); err != nil {
		log.Println("PlaceBet error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Claim выплачивает выигрыш за завершенный раунд
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.ClaimRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payout, err := h.serv.ClaimWinnings(r.Context(), userID, payload.Round)
	if err != nil {
		log.Println("ClaimWinnings error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.ClaimResponse{Payout: payout})
}

// MyBets отдает ставки игрока в его текущем раунде
func (h *Handler) MyBets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	playerBets, err := h.serv.MyBets(r.Context(), userID)
	if err != nil {
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMyBetsResponse(playerBets))
}
