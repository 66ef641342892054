package provider_repo

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
	table               = "provider_states"
	colMint             = "mint"
	colProviderID       = "provider_id"
	colAmount           = "amount"
	colUnclaimedRewards = "unclaimed_rewards"
	colLastClaimedIndex = "last_claimed_index"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewProviderRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.ProviderRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

func (r *repo) Get(ctx context.Context, mint string, provider int) (*model.ProviderState, error) {
	return r.get(ctx, mint, provider, false)
}

func (r *repo) GetForUpdate(ctx context.Context, mint string, provider int) (*model.ProviderState, error) {
	return r.get(ctx, mint, provider, true)
}

func (r *repo) get(ctx context.Context, mint string, provider int, forUpdate bool) (*model.ProviderState, error) {
	// Формируем запрос
	query := sq.Select(colAmount, colUnclaimedRewards, colLastClaimedIndex).
		From(table).
		Where(sq.Eq{colMint: mint, colProviderID: provider}).
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		amount    int64
		unclaimed int64
		index     pgtype.Numeric
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&amount, &unclaimed, &index)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProviderNotFound
		}
		return nil, err
	}

	p := model.ProviderState{
		Mint:             mint,
		Provider:         provider,
		Amount:           uint64(amount),
		UnclaimedRewards: uint64(unclaimed),
	}
	p.LastClaimedIndex, err = pgnum.ToBig(index)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repo) Upsert(ctx context.Context, p *model.ProviderState) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colMint, colProviderID, colAmount, colUnclaimedRewards, colLastClaimedIndex).
		Values(p.Mint, p.Provider, int64(p.Amount), int64(p.UnclaimedRewards),
			pgnum.FromBig(p.LastClaimedIndex)).
		Suffix("ON CONFLICT (" + colMint + ", " + colProviderID + ") DO UPDATE SET " +
			colAmount + " = EXCLUDED." + colAmount + ", " +
			colUnclaimedRewards + " = EXCLUDED." + colUnclaimedRewards + ", " +
			colLastClaimedIndex + " = EXCLUDED." + colLastClaimedIndex).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// Delete - удаляет учет провайдера после полного вывода ликвидности
func (r *repo) Delete(ctx context.Context, mint string, provider int) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colMint: mint, colProviderID: provider}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}
