package bet

type PlaceBetRequest struct {
	Mint    string   `json:"mint"`     // Токен хранилища, в котором делается ставка
	Amount  uint64   `json:"amount"`   // Размер ставки (>0)
	BetType uint8    `json:"bet_type"` // 0-15, см. таблицу выплат
	Numbers [4]uint8 `json:"numbers"`  // Параметры ставки, смысл зависит от bet_type
}

type ClaimRequest struct {
	Round uint64 `json:"round"` // Заявляемый раунд
}

type ClaimResponse struct {
	Payout uint64 `json:"payout"` // Фактическая выплата
}

type BetResponse struct {
	Amount  uint64   `json:"amount"`
	BetType uint8    `json:"bet_type"`
	Numbers [4]uint8 `json:"numbers"`
}

type MyBetsResponse struct {
	Round        uint64        `json:"round"`
	Mint         string        `json:"mint"`
	Bets         []BetResponse `json:"bets"`
	ClaimedRound uint64        `json:"claimed_round"`
}
