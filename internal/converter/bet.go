package converter

import (
	"roulette_backend/internal/api/dto/bet"
	"roulette_backend/internal/model"
)

func ToBetModel(req bet.PlaceBetRequest) model.Bet {
	return model.Bet{
		Amount:  req.Amount,
		BetType: req.BetType,
		Numbers: req.Numbers,
	}
}

func ToMyBetsResponse(pb *model.PlayerBets) bet.MyBetsResponse {
	bets := make([]bet.BetResponse, len(pb.Bets))
	for i, b := range pb.Bets {
		bets[i] = bet.BetResponse{
			Amount:  b.Amount,
			BetType: b.BetType,
			Numbers: b.Numbers,
		}
	}

	return bet.MyBetsResponse{
		Round:        pb.Round,
		Mint:         pb.Mint,
		Bets:         bets,
		ClaimedRound: pb.ClaimedRound,
	}
}
