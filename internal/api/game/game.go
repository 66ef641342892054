package game

import (
	"log"
	"net/http"

	"roulette_backend/internal/api/httperr"
	"roulette_backend/internal/converter"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Initialize создаёт игровую сессию, вызвавший становится авторитетом
func (h *Handler) Initialize(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.serv.InitializeSession(r.Context(), userID); err != nil {
		log.Println("Initialize error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// StartRound открывает прием ставок нового раунда
func (h *Handler) StartRound(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.serv.StartNewRound(r.Context(), userID)
	if err != nil {
		log.Println("StartRound error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(session))
}

// CloseBets закрывает прием ставок текущего раунда
func (h *Handler) CloseBets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.serv.CloseBets(r.Context(), userID)
	if err != nil {
		log.Println("CloseBets error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(session))
}

// Draw разыгрывает выигрышное число и завершает раунд
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := h.serv.GetRandom(r.Context(), userID)
	if err != nil {
		log.Println("Draw error:", err)
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(session))
}

// Session отдает текущее состояние сессии
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.serv.SessionState(r.Context())
	if err != nil {
		resp.WriteErrorResponse(w, httperr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(session))
}
