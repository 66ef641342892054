package bet

import (
	"context"

	"roulette_backend/internal/event"
	"roulette_backend/internal/model"
	"roulette_backend/pkg/safemath"
)

// ClaimWinnings - выплачивает выигрыш игрока за раунд roundToClaim.
// Повторная заявка на тот же раунд отклоняется; заявка без выигрыша
// тоже расходует право на заявку. Выплата срезается до остатка
// ликвидности хранилища, если обязательства его превышают.
func (s *serv) ClaimWinnings(ctx context.Context, player int, roundToClaim uint64) (uint64, error) {
	var (
		paid       uint64
		noWinnings bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.gameRepo.GetSession(txCtx)
		if err != nil {
			return err
		}

		// Заявить можно только последний завершенный раунд
		if roundToClaim != session.LastCompletedRound || session.WinningNumber == nil {
			return model.ErrClaimRoundMismatchOrNotCompleted
		}

		playerBets, err := s.betsRepo.GetForUpdate(txCtx, player)
		if err != nil {
			return err
		}
		if playerBets.Round != roundToClaim {
			return model.ErrBetsRoundMismatch
		}
		if playerBets.ClaimedRound >= roundToClaim {
			return model.ErrAlreadyClaimed
		}

		vault, err := s.vaultRepo.GetForUpdate(txCtx, playerBets.Mint)
		if err != nil {
			return err
		}

		winningNumber := *session.WinningNumber

		var totalPayout uint64
		for _, b := range playerBets.Bets {
			if !model.IsBetWinner(b.BetType, b.Numbers, winningNumber) {
				continue
			}
			payoutForBet, ok := safemath.Mul(b.Amount, model.PayoutMultiplier(b.BetType))
			if !ok {
				return model.ErrArithmeticOverflow
			}
			totalPayout, ok = safemath.Add(totalPayout, payoutForBet)
			if !ok {
				return model.ErrArithmeticOverflow
			}
		}

		if totalPayout == 0 {
			// Пустая заявка все равно расходует право: водяной знак
			// двигается, а вызвавшему отдается NoWinningsFound
			playerBets.ClaimedRound = roundToClaim
			noWinnings = true
			return s.betsRepo.Upsert(txCtx, playerBets)
		}

		actualPayout := totalPayout
		if vault.TotalLiquidity < actualPayout {
			actualPayout = vault.TotalLiquidity
		}
		if actualPayout == 0 {
			return model.ErrInsufficientLiquidity
		}

		playerAccount, err := s.tokenRepo.GetOrCreateAccount(txCtx, player, playerBets.Mint)
		if err != nil {
			return err
		}
		if err := s.tokenRepo.Transfer(txCtx, vault.TokenAccountID, playerAccount.ID, actualPayout); err != nil {
			return err
		}

		newLiquidity, ok := safemath.Sub(vault.TotalLiquidity, actualPayout)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		vault.TotalLiquidity = newLiquidity
		playerBets.ClaimedRound = roundToClaim

		if err := s.vaultRepo.Update(txCtx, vault); err != nil {
			return err
		}
		if err := s.betsRepo.Upsert(txCtx, playerBets); err != nil {
			return err
		}

		s.emitter.Emit(event.WinningsClaimed{
			Round:       roundToClaim,
			Player:      player,
			Mint:        playerBets.Mint,
			Amount:      actualPayout,
			TotalPayout: totalPayout,
			Capped:      actualPayout < totalPayout,
			Timestamp:   s.clock.Now().Unix(),
		})

		paid = actualPayout
		return nil
	})
	if err != nil {
		return 0, err
	}
	if noWinnings {
		return 0, model.ErrNoWinningsFound
	}

	return paid, nil
}
