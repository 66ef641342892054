package bets_repo

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
)

const (
	table           = "player_bets"
	colPlayerID     = "player_id"
	colRound        = "round"
	colMint         = "mint"
	colBets         = "bets"
	colClaimedRound = "claimed_round"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPlayerBetsRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.PlayerBetsRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// Get - запись ставок игрока. Если записи еще нет, возвращается
// свежая пустая запись: она материализуется при первом Upsert.
func (r *repo) Get(ctx context.Context, player int) (*model.PlayerBets, error) {
	return r.get(ctx, player, false)
}

func (r *repo) GetForUpdate(ctx context.Context, player int) (*model.PlayerBets, error) {
	return r.get(ctx, player, true)
}

func (r *repo) get(ctx context.Context, player int, forUpdate bool) (*model.PlayerBets, error) {
	// Формируем запрос
	query := sq.Select(colRound, colMint, colBets, colClaimedRound).
		From(table).
		Where(sq.Eq{colPlayerID: player}).
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		round        int64
		mint         string
		rawBets      []byte
		claimedRound int64
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&round, &mint, &rawBets, &claimedRound)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.PlayerBets{Player: player}, nil
		}
		return nil, err
	}

	pb := model.PlayerBets{
		Player:       player,
		Round:        uint64(round),
		Mint:         mint,
		ClaimedRound: uint64(claimedRound),
	}
	if err := json.Unmarshal(rawBets, &pb.Bets); err != nil {
		return nil, err
	}

	return &pb, nil
}

func (r *repo) Upsert(ctx context.Context, pb *model.PlayerBets) error {
	rawBets, err := json.Marshal(pb.Bets)
	if err != nil {
		return err
	}
	if pb.Bets == nil {
		rawBets = []byte("[]")
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colPlayerID, colRound, colMint, colBets, colClaimedRound).
		Values(pb.Player, int64(pb.Round), pb.Mint, rawBets, int64(pb.ClaimedRound)).
		Suffix("ON CONFLICT (" + colPlayerID + ") DO UPDATE SET " +
			colRound + " = EXCLUDED." + colRound + ", " +
			colMint + " = EXCLUDED." + colMint + ", " +
			colBets + " = EXCLUDED." + colBets + ", " +
			colClaimedRound + " = EXCLUDED." + colClaimedRound).
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
