package vault_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/repository/pgnum"
)

const (
	table                   = "vaults"
	colMint                 = "mint"
	colTokenAccountID       = "token_account_id"
	colTotalLiquidity       = "total_liquidity"
	colTotalProviderCapital = "total_provider_capital"
	colOwnerReward          = "owner_reward"
	colRewardPerShareIndex  = "reward_per_share_index"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewVaultRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.VaultRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// Create - создает хранилище. Повторное создание для того же минта
// падает с ErrVaultAlreadyExists.
func (r *repo) Create(ctx context.Context, v *model.Vault) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colMint, colTokenAccountID, colTotalLiquidity, colTotalProviderCapital,
			colOwnerReward, colRewardPerShareIndex).
		Values(v.Mint, v.TokenAccountID, int64(v.TotalLiquidity), int64(v.TotalProviderCapital),
			int64(v.OwnerReward), pgnum.FromBig(v.RewardPerShareIndex)).
		Suffix("ON CONFLICT (" + colMint + ") DO NOTHING").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrVaultAlreadyExists
	}

	return nil
}

func (r *repo) Get(ctx context.Context, mint string) (*model.Vault, error) {
	return r.get(ctx, mint, false)
}

func (r *repo) GetForUpdate(ctx context.Context, mint string) (*model.Vault, error) {
	return r.get(ctx, mint, true)
}

func (r *repo) get(ctx context.Context, mint string, forUpdate bool) (*model.Vault, error) {
	// Формируем запрос
	query := sq.Select(colMint, colTokenAccountID, colTotalLiquidity, colTotalProviderCapital,
		colOwnerReward, colRewardPerShareIndex).
		From(table).
		Where(sq.Eq{colMint: mint}).
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		v         model.Vault
		liquidity int64
		capital   int64
		reward    int64
		index     pgtype.Numeric
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&v.Mint, &v.TokenAccountID, &liquidity, &capital, &reward, &index,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVaultNotFound
		}
		return nil, err
	}

	v.TotalLiquidity = uint64(liquidity)
	v.TotalProviderCapital = uint64(capital)
	v.OwnerReward = uint64(reward)
	v.RewardPerShareIndex, err = pgnum.ToBig(index)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *repo) Update(ctx context.Context, v *model.Vault) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colTotalLiquidity, int64(v.TotalLiquidity)).
		Set(colTotalProviderCapital, int64(v.TotalProviderCapital)).
		Set(colOwnerReward, int64(v.OwnerReward)).
		Set(colRewardPerShareIndex, pgnum.FromBig(v.RewardPerShareIndex)).
		Where(sq.Eq{colMint: v.Mint}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrVaultNotFound
	}

	return nil
}
