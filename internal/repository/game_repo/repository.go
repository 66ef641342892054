package game_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
)

const (
	table                 = "game_session"
	colID                 = "id"
	colCurrentRound       = "current_round"
	colRoundStartTime     = "round_start_time"
	colRoundStatus        = "round_status"
	colWinningNumber      = "winning_number"
	colBetsClosedTime     = "bets_closed_time"
	colGetRandomTime      = "get_random_time"
	colLastBettor         = "last_bettor"
	colLastCompletedRound = "last_completed_round"
	colAuthority          = "authority"

	// сессия всегда одна
	sessionID = 1
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewGameRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.GameRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// conn - соединение текущей транзакции, либо пул вне транзакции
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateSession - создает единственную запись сессии.
// Повторный вызов падает с ErrAlreadyInitialized.
func (r *repo) CreateSession(ctx context.Context, s *model.GameSession) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colCurrentRound, colRoundStartTime, colRoundStatus,
			colBetsClosedTime, colGetRandomTime, colLastCompletedRound, colAuthority).
		Values(sessionID, int64(s.CurrentRound), s.RoundStartTime, string(s.RoundStatus),
			s.BetsClosedTime, s.GetRandomTime, int64(s.LastCompletedRound), s.Authority).
		Suffix("ON CONFLICT (" + colID + ") DO NOTHING").
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
		return model.ErrAlreadyInitialized
	}

	return nil
}

func (r *repo) GetSession(ctx context.Context) (*model.GameSession, error) {
	return r.getSession(ctx, false)
}

func (r *repo) GetSessionForUpdate(ctx context.Context) (*model.GameSession, error) {
	return r.getSession(ctx, true)
}

func (r *repo) getSession(ctx context.Context, forUpdate bool) (*model.GameSession, error) {
	// Формируем запрос
	query := sq.Select(colCurrentRound, colRoundStartTime, colRoundStatus, colWinningNumber,
		colBetsClosedTime, colGetRandomTime, colLastBettor, colLastCompletedRound, colAuthority).
		From(table).
		Where(sq.Eq{colID: sessionID}).
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		s             model.GameSession
		currentRound  int64
		status        string
		winning       *int16
		lastCompleted int64
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&currentRound, &s.RoundStartTime, &status, &winning,
		&s.BetsClosedTime, &s.GetRandomTime, &s.LastBettor, &lastCompleted, &s.Authority,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	s.CurrentRound = uint64(currentRound)
	s.RoundStatus = model.RoundStatus(status)
	s.LastCompletedRound = uint64(lastCompleted)
	if winning != nil {
		n := uint8(*winning)
		s.WinningNumber = &n
	}

	return &s, nil
}

func (r *repo) UpdateSession(ctx context.Context, s *model.GameSession) error {
	var winning *int16
	if s.WinningNumber != nil {
		n := int16(*s.WinningNumber)
		winning = &n
	}

	// Формируем запрос
	query := sq.Update(table).
		Set(colCurrentRound, int64(s.CurrentRound)).
		Set(colRoundStartTime, s.RoundStartTime).
		Set(colRoundStatus, string(s.RoundStatus)).
		Set(colWinningNumber, winning).
		Set(colBetsClosedTime, s.BetsClosedTime).
		Set(colGetRandomTime, s.GetRandomTime).
		Set(colLastBettor, s.LastBettor).
		Set(colLastCompletedRound, int64(s.LastCompletedRound)).
		Set(colAuthority, s.Authority).
		Where(sq.Eq{colID: sessionID}).
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
		return model.ErrSessionNotFound
	}

	return nil
}
