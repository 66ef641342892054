package bet

import (
	"context"

	"roulette_backend/internal/event"
	"roulette_backend/internal/model"
	"roulette_backend/pkg/safemath"
)

// PlaceBet - принимает ставку игрока в текущем раунде.
// Ставка ограничена процентом от ликвидности хранилища, с каждой ставки
// снимается доля дома в пользу владельца и провайдеров.
func (s *serv) PlaceBet(ctx context.Context, player int, mint string, bet model.Bet) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.gameRepo.GetSessionForUpdate(txCtx)
		if err != nil {
			return err
		}
		if session.RoundStatus != model.RoundAcceptingBets {
			return model.ErrBetsNotAccepted
		}

		if err := model.ValidateBet(bet); err != nil {
			return err
		}

		vault, err := s.vaultRepo.GetForUpdate(txCtx, mint)
		if err != nil {
			return err
		}

		// Лимит ставки относительно ликвидности: при пустом хранилище
		// лимит нулевой и ставки не принимаются
		if bet.Amount > vault.MaxBetAmount(s.cfg.MaxBetPercent()) {
			return model.ErrBetAmountExceedsLimit
		}

		playerBets, err := s.betsRepo.GetForUpdate(txCtx, player)
		if err != nil {
			return err
		}

		if playerBets.Round != session.CurrentRound {
			// Первая ставка игрока в этом раунде: список очищается,
			// запись привязывается к текущему раунду и хранилищу
			playerBets.Bets = playerBets.Bets[:0]
			playerBets.Round = session.CurrentRound
			playerBets.Mint = mint
		} else if playerBets.Mint != mint {
			return model.ErrVaultMismatch
		}

		if len(playerBets.Bets) >= model.MaxBetsPerRound {
			return model.ErrInvalidNumberOfBets
		}

		playerAccount, err := s.tokenRepo.GetOrCreateAccount(txCtx, player, mint)
		if err != nil {
			return err
		}
		if err := s.tokenRepo.Transfer(txCtx, playerAccount.ID, vault.TokenAccountID, bet.Amount); err != nil {
			return err
		}

		newLiquidity, ok := safemath.Add(vault.TotalLiquidity, bet.Amount)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		vault.TotalLiquidity = newLiquidity

		// Доля дома: независимо от исхода раунда
		providerRevenue := bet.Amount / model.ProviderDivisor
		ownerRevenue := bet.Amount / model.OwnerDivisor

		newOwnerReward, ok := safemath.Add(vault.OwnerReward, ownerRevenue)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		vault.OwnerReward = newOwnerReward
		vault.AccrueProviderRevenue(providerRevenue)

		playerBets.Bets = append(playerBets.Bets, bet)
		session.LastBettor = &player

		if err := s.vaultRepo.Update(txCtx, vault); err != nil {
			return err
		}
		if err := s.betsRepo.Upsert(txCtx, playerBets); err != nil {
			return err
		}
		if err := s.gameRepo.UpdateSession(txCtx, session); err != nil {
			return err
		}

		s.emitter.Emit(event.BetPlaced{
			Player:    player,
			Mint:      mint,
			Round:     session.CurrentRound,
			Amount:    bet.Amount,
			BetType:   bet.BetType,
			Timestamp: s.clock.Now().Unix(),
		})

		return nil
	})
}

// MyBets - текущая запись ставок игрока
func (s *serv) MyBets(ctx context.Context, player int) (*model.PlayerBets, error) {
	return s.betsRepo.Get(ctx, player)
}
