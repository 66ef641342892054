package vault

import (
	"context"

	"roulette_backend/internal/event"
	"roulette_backend/internal/model"
	"roulette_backend/pkg/safemath"
)

// WithdrawProviderRevenue - выводит накопленные награды провайдера,
// не трогая принципал. Возвращает выплаченную сумму.
func (s *serv) WithdrawProviderRevenue(ctx context.Context, provider int, mint string) (uint64, error) {
	var paid uint64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		vault, err := s.vaultRepo.GetForUpdate(txCtx, mint)
		if err != nil {
			return err
		}
		state, err := s.providerRepo.GetForUpdate(txCtx, mint, provider)
		if err != nil {
			return err
		}

		if err := state.Settle(vault.RewardPerShareIndex); err != nil {
			return err
		}

		reward := state.UnclaimedRewards
		if reward == 0 {
			return model.ErrNoReward
		}
		if vault.TotalLiquidity < reward {
			return model.ErrInsufficientLiquidity
		}

		providerAccount, err := s.tokenRepo.GetOrCreateAccount(txCtx, provider, mint)
		if err != nil {
			return err
		}
		if err := s.tokenRepo.Transfer(txCtx, vault.TokenAccountID, providerAccount.ID, reward); err != nil {
			return err
		}

		newLiquidity, ok := safemath.Sub(vault.TotalLiquidity, reward)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		vault.TotalLiquidity = newLiquidity
		state.UnclaimedRewards = 0

		if err := s.vaultRepo.Update(txCtx, vault); err != nil {
			return err
		}
		if err := s.providerRepo.Upsert(txCtx, state); err != nil {
			return err
		}

		s.emitter.Emit(event.ProviderRevenueWithdrawn{
			Provider:  provider,
			Mint:      mint,
			Amount:    reward,
			Timestamp: s.clock.Now().Unix(),
		})

		paid = reward
		return nil
	})
	if err != nil {
		return 0, err
	}

	return paid, nil
}

// WithdrawOwnerRevenue - выплачивает накопленный доход владельца на счет
// казны. Доступно только авторитету сессии.
func (s *serv) WithdrawOwnerRevenue(ctx context.Context, authority int, mint string) (uint64, error) {
	var paid uint64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.gameRepo.GetSession(txCtx)
		if err != nil {
			return err
		}
		if err := s.requireAuthority(session.Authority, authority); err != nil {
			return err
		}

		vault, err := s.vaultRepo.GetForUpdate(txCtx, mint)
		if err != nil {
			return err
		}

		reward := vault.OwnerReward
		if reward == 0 {
			return model.ErrNoReward
		}
		if vault.TotalLiquidity < reward {
			return model.ErrInsufficientLiquidity
		}

		treasury, err := s.tokenRepo.GetOrCreateAccount(txCtx, s.cfg.TreasuryUserID(), mint)
		if err != nil {
			return err
		}
		if err := s.tokenRepo.Transfer(txCtx, vault.TokenAccountID, treasury.ID, reward); err != nil {
			return err
		}

		newLiquidity, ok := safemath.Sub(vault.TotalLiquidity, reward)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		vault.TotalLiquidity = newLiquidity
		vault.OwnerReward = 0

		if err := s.vaultRepo.Update(txCtx, vault); err != nil {
			return err
		}

		s.emitter.Emit(event.OwnerRevenueWithdrawn{
			Mint:      mint,
			Amount:    reward,
			Timestamp: s.clock.Now().Unix(),
		})

		paid = reward
		return nil
	})
	if err != nil {
		return 0, err
	}

	return paid, nil
}

// DistributePayoutReserve - разносит половину резерва выплат: поровну
// между доходом владельца и индексом наград провайдеров, остаток от
// деления уходит провайдерам. Токены хранилища не покидают.
func (s *serv) DistributePayoutReserve(ctx context.Context, authority int, mint string) (uint64, error) {
	var distributed uint64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.gameRepo.GetSession(txCtx)
		if err != nil {
			return err
		}
		if err := s.requireAuthority(session.Authority, authority); err != nil {
			return err
		}

		vault, err := s.vaultRepo.GetForUpdate(txCtx, mint)
		if err != nil {
			return err
		}

		reserve, err := vault.PayoutReserve()
		if err != nil {
			return err
		}
		if reserve == 0 {
			return model.ErrNoReward
		}

		amountToDistribute := reserve / 2
		if amountToDistribute == 0 {
			return model.ErrNoReward
		}

		ownerShare := amountToDistribute / 2
		providersShare := amountToDistribute - ownerShare

		newOwnerReward, ok := safemath.Add(vault.OwnerReward, ownerShare)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		vault.OwnerReward = newOwnerReward
		vault.AccrueProviderRevenue(providersShare)

		if err := s.vaultRepo.Update(txCtx, vault); err != nil {
			return err
		}

		s.emitter.Emit(event.PayoutReserveDistributed{
			Mint:      mint,
			Amount:    amountToDistribute,
			Timestamp: s.clock.Now().Unix(),
		})

		distributed = amountToDistribute
		return nil
	})
	if err != nil {
		return 0, err
	}

	return distributed, nil
}

// UnclaimedRewards - сколько провайдер может вывести прямо сейчас,
// без изменения состояния
func (s *serv) UnclaimedRewards(ctx context.Context, provider int, mint string) (uint64, error) {
	vault, err := s.vaultRepo.Get(ctx, mint)
	if err != nil {
		return 0, err
	}
	state, err := s.providerRepo.Get(ctx, mint, provider)
	if err != nil {
		return 0, err
	}

	newlyEarned, err := state.NewlyEarnedRewards(vault.RewardPerShareIndex)
	if err != nil {
		return 0, err
	}

	total, ok := safemath.Add(state.UnclaimedRewards, newlyEarned)
	if !ok {
		return 0, model.ErrArithmeticOverflow
	}
	return total, nil
}
