// Package event - доменные события движка. События информационные:
// их потеря не влияет на консистентность состояния.
package event

type Event interface {
	EventName() string
}

// Emitter - приемник доменных событий
type Emitter interface {
	Emit(e Event)
}

type RoundStarted struct {
	Round     uint64
	Starter   int
	StartTime int64
}

func (RoundStarted) EventName() string { return "round_started" }

type BetsClosed struct {
	Round     uint64
	Closer    int
	CloseTime int64
}

func (BetsClosed) EventName() string { return "bets_closed" }

type RandomGenerated struct {
	Round          uint64
	Initiator      int
	WinningNumber  uint8
	GenerationTime int64
	Slot           uint64
	LastBettor     int
	HashResult     [32]byte
	HashPrefix     uint64
}

func (RandomGenerated) EventName() string { return "random_generated" }

type BetPlaced struct {
	Player    int
	Mint      string
	Round     uint64
	Amount    uint64
	BetType   uint8
	Timestamp int64
}

func (BetPlaced) EventName() string { return "bet_placed" }

type LiquidityProvided struct {
	Provider  int
	Mint      string
	Amount    uint64
	Timestamp int64
}

func (LiquidityProvided) EventName() string { return "liquidity_provided" }

type LiquidityWithdrawn struct {
	Provider  int
	Mint      string
	Amount    uint64 // только принципал
	Timestamp int64
}

func (LiquidityWithdrawn) EventName() string { return "liquidity_withdrawn" }

type ProviderRevenueWithdrawn struct {
	Provider  int
	Mint      string
	Amount    uint64
	Timestamp int64
}

func (ProviderRevenueWithdrawn) EventName() string { return "provider_revenue_withdrawn" }

type OwnerRevenueWithdrawn struct {
	Mint      string
	Amount    uint64
	Timestamp int64
}

func (OwnerRevenueWithdrawn) EventName() string { return "owner_revenue_withdrawn" }

type PayoutReserveDistributed struct {
	Mint      string
	Amount    uint64
	Timestamp int64
}

func (PayoutReserveDistributed) EventName() string { return "payout_reserve_distributed" }

// WinningsClaimed - выплата выигрыша. Capped=true сигнализирует оператору,
// что запрошенная сумма была срезана до остатка ликвидности хранилища.
type WinningsClaimed struct {
	Round       uint64
	Player      int
	Mint        string
	Amount      uint64 // фактически выплачено
	TotalPayout uint64 // причиталось по ставкам
	Capped      bool
	Timestamp   int64
}

func (WinningsClaimed) EventName() string { return "winnings_claimed" }
