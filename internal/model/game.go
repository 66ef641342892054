package model

// RoundStatus - фаза жизненного цикла раунда
type RoundStatus string

const (
	RoundNotStarted    RoundStatus = "not_started"
	RoundAcceptingBets RoundStatus = "accepting_bets"
	RoundBetsClosed    RoundStatus = "bets_closed"
	RoundCompleted     RoundStatus = "completed"
)

// GameSession - глобальное состояние игры (одна запись на развертывание).
// Инвариант: WinningNumber != nil тогда и только тогда, когда RoundStatus == RoundCompleted.
type GameSession struct {
	CurrentRound       uint64
	RoundStartTime     int64
	RoundStatus        RoundStatus
	WinningNumber      *uint8
	BetsClosedTime     int64
	GetRandomTime      int64
	LastBettor         *int
	LastCompletedRound uint64
	Authority          int
}
