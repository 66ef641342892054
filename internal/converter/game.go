package converter

import (
	"roulette_backend/internal/api/dto/game"
	"roulette_backend/internal/model"
)

func ToSessionResponse(s *model.GameSession) game.SessionResponse {
	return game.SessionResponse{
		CurrentRound:       s.CurrentRound,
		RoundStatus:        string(s.RoundStatus),
		WinningNumber:      s.WinningNumber,
		RoundStartTime:     s.RoundStartTime,
		BetsClosedTime:     s.BetsClosedTime,
		GetRandomTime:      s.GetRandomTime,
		LastCompletedRound: s.LastCompletedRound,
	}
}
