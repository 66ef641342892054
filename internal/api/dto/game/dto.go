package game

type SessionResponse struct {
	CurrentRound       uint64 `json:"current_round"`            // Номер текущего раунда
	RoundStatus        string `json:"round_status"`             // Фаза раунда
	WinningNumber      *uint8 `json:"winning_number,omitempty"` // Выигрышное число (только для завершенного раунда)
	RoundStartTime     int64  `json:"round_start_time"`
	BetsClosedTime     int64  `json:"bets_closed_time,omitempty"`
	GetRandomTime      int64  `json:"get_random_time,omitempty"`
	LastCompletedRound uint64 `json:"last_completed_round"`
}
