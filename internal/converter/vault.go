package converter

import (
	"roulette_backend/internal/api/dto/vault"
	"roulette_backend/internal/model"
)

func ToVaultResponse(v *model.Vault) vault.VaultResponse {
	return vault.VaultResponse{
		Mint:                 v.Mint,
		TotalLiquidity:       v.TotalLiquidity,
		TotalProviderCapital: v.TotalProviderCapital,
		OwnerReward:          v.OwnerReward,
		RewardPerShareIndex:  v.RewardPerShareIndex.String(),
	}
}
