package vault

import (
	"context"
	"errors"
	"math/big"

	"roulette_backend/internal/event"
	"roulette_backend/internal/model"
	"roulette_backend/pkg/safemath"
)

// CreateVault - создает хранилище токена и заводит первого провайдера.
// За создание взимается фиксированная комиссия в пользу казны,
// начальная ликвидность переводится на кастодиальный счет хранилища.
func (s *serv) CreateVault(ctx context.Context, provider int, mint string, amount uint64) (*model.Vault, error) {
	if amount == 0 {
		return nil, model.ErrAmountMustBeGreaterThanZero
	}

	var result *model.Vault

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.vaultRepo.Get(txCtx, mint)
		if err == nil {
			return model.ErrVaultAlreadyExists
		}
		if !errors.Is(err, model.ErrVaultNotFound) {
			return err
		}

		// Комиссия за создание: провайдер -> казна
		if fee := s.cfg.CreateVaultFee(); fee > 0 {
			feeFrom, err := s.tokenRepo.GetOrCreateAccount(txCtx, provider, s.cfg.FeeMint())
			if err != nil {
				return err
			}
			feeTo, err := s.tokenRepo.GetOrCreateAccount(txCtx, s.cfg.TreasuryUserID(), s.cfg.FeeMint())
			if err != nil {
				return err
			}
			if err := s.tokenRepo.Transfer(txCtx, feeFrom.ID, feeTo.ID, fee); err != nil {
				return err
			}
		}

		custody, err := s.tokenRepo.CreateVaultAccount(txCtx, mint)
		if err != nil {
			return err
		}

		providerAccount, err := s.tokenRepo.GetOrCreateAccount(txCtx, provider, mint)
		if err != nil {
			return err
		}
		if err := s.tokenRepo.Transfer(txCtx, providerAccount.ID, custody.ID, amount); err != nil {
			return err
		}

		vault := model.NewVault(mint, custody.ID)
		vault.TotalLiquidity = amount
		vault.TotalProviderCapital = amount

		if err := s.vaultRepo.Create(txCtx, vault); err != nil {
			return err
		}

		state := &model.ProviderState{
			Mint:             mint,
			Provider:         provider,
			Amount:           amount,
			LastClaimedIndex: big.NewInt(0),
		}
		if err := s.providerRepo.Upsert(txCtx, state); err != nil {
			return err
		}

		s.emitter.Emit(event.LiquidityProvided{
			Provider:  provider,
			Mint:      mint,
			Amount:    amount,
			Timestamp: s.clock.Now().Unix(),
		})

		result = vault
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ProvideLiquidity - довносит ликвидность в существующее хранилище.
// Награды провайдера фиксируются до изменения принципала.
func (s *serv) ProvideLiquidity(ctx context.Context, provider int, mint string, amount uint64) error {
	if amount == 0 {
		return model.ErrAmountMustBeGreaterThanZero
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		vault, err := s.vaultRepo.GetForUpdate(txCtx, mint)
		if err != nil {
			return err
		}

		state, err := s.providerRepo.GetForUpdate(txCtx, mint, provider)
		if errors.Is(err, model.ErrProviderNotFound) {
			state = &model.ProviderState{
				Mint:             mint,
				Provider:         provider,
				LastClaimedIndex: big.NewInt(0),
			}
		} else if err != nil {
			return err
		}

		// Сначала фиксируем накопленное по старому принципалу
		if err := state.Settle(vault.RewardPerShareIndex); err != nil {
			return err
		}

		providerAccount, err := s.tokenRepo.GetOrCreateAccount(txCtx, provider, mint)
		if err != nil {
			return err
		}
		if err := s.tokenRepo.Transfer(txCtx, providerAccount.ID, vault.TokenAccountID, amount); err != nil {
			return err
		}

		newLiquidity, ok := safemath.Add(vault.TotalLiquidity, amount)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		newCapital, ok := safemath.Add(vault.TotalProviderCapital, amount)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		newPrincipal, ok := safemath.Add(state.Amount, amount)
		if !ok {
			return model.ErrArithmeticOverflow
		}

		vault.TotalLiquidity = newLiquidity
		vault.TotalProviderCapital = newCapital
		state.Amount = newPrincipal

		if err := s.vaultRepo.Update(txCtx, vault); err != nil {
			return err
		}
		if err := s.providerRepo.Upsert(txCtx, state); err != nil {
			return err
		}

		s.emitter.Emit(event.LiquidityProvided{
			Provider:  provider,
			Mint:      mint,
			Amount:    amount,
			Timestamp: s.clock.Now().Unix(),
		})

		return nil
	})
}

// WithdrawLiquidity - полный выход провайдера: принципал плюс
// зафиксированные награды одним переводом, учетная запись удаляется.
// Возвращает фактически выведенную сумму.
func (s *serv) WithdrawLiquidity(ctx context.Context, provider int, mint string) (uint64, error) {
	var withdrawn uint64

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

		principal := state.Amount
		total, ok := safemath.Add(principal, state.UnclaimedRewards)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		if vault.TotalLiquidity < total {
			return model.ErrInsufficientLiquidity
		}

		if total > 0 {
			providerAccount, err := s.tokenRepo.GetOrCreateAccount(txCtx, provider, mint)
			if err != nil {
				return err
			}
			if err := s.tokenRepo.Transfer(txCtx, vault.TokenAccountID, providerAccount.ID, total); err != nil {
				return err
			}
		}

		newLiquidity, ok := safemath.Sub(vault.TotalLiquidity, total)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		// Из капитала вычитается только принципал
		newCapital, ok := safemath.Sub(vault.TotalProviderCapital, principal)
		if !ok {
			return model.ErrArithmeticOverflow
		}
		vault.TotalLiquidity = newLiquidity
		vault.TotalProviderCapital = newCapital

		if err := s.vaultRepo.Update(txCtx, vault); err != nil {
			return err
		}
		if err := s.providerRepo.Delete(txCtx, mint, provider); err != nil {
			return err
		}

		s.emitter.Emit(event.LiquidityWithdrawn{
			Provider:  provider,
			Mint:      mint,
			Amount:    principal,
			Timestamp: s.clock.Now().Unix(),
		})

		withdrawn = total
		return nil
	})
	if err != nil {
		return 0, err
	}

	return withdrawn, nil
}

// VaultState - текущее состояние хранилища
func (s *serv) VaultState(ctx context.Context, mint string) (*model.Vault, error) {
	return s.vaultRepo.Get(ctx, mint)
}
