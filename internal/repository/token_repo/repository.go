package token_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
)

const (
	table      = "token_accounts"
	colID      = "id"
	colOwnerID = "owner_id"
	colMint    = "mint"
	colBalance = "balance"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTokenRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.TokenRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetOrCreateAccount - счет пользователя для минта; создается пустым,
// если его еще нет
func (r *repo) GetOrCreateAccount(ctx context.Context, ownerID int, mint string) (*model.TokenAccount, error) {
	// Формируем запрос
	query := sq.Select(colID, colBalance).
		From(table).
		Where(sq.Eq{colOwnerID: ownerID, colMint: mint}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		id      string
		balance int64
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id, &balance)
	if err == nil {
		return &model.TokenAccount{
			ID:      id,
			OwnerID: &ownerID,
			Mint:    mint,
			Balance: uint64(balance),
		}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Записи нет - создаем пустой счет
	acc := model.TokenAccount{
		ID:      uuid.NewString(),
		OwnerID: &ownerID,
		Mint:    mint,
	}

	insert := sq.Insert(table).
		Columns(colID, colOwnerID, colMint, colBalance).
		Values(acc.ID, ownerID, mint, 0).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = insert.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

// CreateVaultAccount - кастодиальный счет хранилища (без владельца):
// распоряжаться им может только движок
func (r *repo) CreateVaultAccount(ctx context.Context, mint string) (*model.TokenAccount, error) {
	acc := model.TokenAccount{
		ID:   uuid.NewString(),
		Mint: mint,
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colOwnerID, colMint, colBalance).
		Values(acc.ID, nil, mint, 0).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

func (r *repo) GetAccount(ctx context.Context, id string) (*model.TokenAccount, error) {
	// Формируем запрос
	query := sq.Select(colOwnerID, colMint, colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		acc     model.TokenAccount
		balance int64
	)
	acc.ID = id
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&acc.OwnerID, &acc.Mint, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTokenAccountNotFound
		}
		return nil, err
	}

	acc.Balance = uint64(balance)
	return &acc, nil
}

// Transfer - атомарный перевод между счетами. Списание условное:
// при нехватке баланса ни одна из сторон не меняется.
func (r *repo) Transfer(ctx context.Context, fromID, toID string, amount uint64) error {
	// перевод самому себе ничего не меняет
	if fromID == toID {
		return nil
	}

	// Формируем запрос на условное списание
	debit := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" - ?", int64(amount))).
		Where(sq.Eq{colID: fromID}).
		Where(sq.GtOrEq{colBalance: int64(amount)}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := debit.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrInsufficientFunds
	}

	// Зачисление
	credit := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" + ?", int64(amount))).
		Where(sq.Eq{colID: toID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = credit.ToSql()
	if err != nil {
		return err
	}

	res, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrTokenAccountNotFound
	}

	return nil
}

// Deposit - начисление на счет (демо-кран)
func (r *repo) Deposit(ctx context.Context, accountID string, amount uint64) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" + ?", int64(amount))).
		Where(sq.Eq{colID: accountID}).
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
		return model.ErrTokenAccountNotFound
	}

	return nil
}
