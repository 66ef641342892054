package vault

type CreateVaultRequest struct {
	Mint   string `json:"mint"`   // Токен нового хранилища
	Amount uint64 `json:"amount"` // Начальная ликвидность
}

type ProvideLiquidityRequest struct {
	Mint   string `json:"mint"`
	Amount uint64 `json:"amount"`
}

type VaultResponse struct {
	Mint                 string `json:"mint"`
	TotalLiquidity       uint64 `json:"total_liquidity"`
	TotalProviderCapital uint64 `json:"total_provider_capital"`
	OwnerReward          uint64 `json:"owner_reward"`
	RewardPerShareIndex  string `json:"reward_per_share_index"` // u128, поэтому строкой
}

type WithdrawResponse struct {
	Amount uint64 `json:"amount"` // Выведенная сумма
}

type RewardsResponse struct {
	UnclaimedRewards uint64 `json:"unclaimed_rewards"`
}
