// Package pgnum - конвертация NUMERIC(39,0) (индекс наград) в big.Int и обратно
package pgnum

import (
	"errors"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

var ten = big.NewInt(10)

// ToBig - pgtype.Numeric -> big.Int. Колонки имеют нулевой масштаб,
// поэтому дробная часть считается ошибкой данных.
func ToBig(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, errors.New("numeric value is not a finite integer")
	}
	if n.Int == nil {
		return big.NewInt(0), nil
	}
	if n.Exp < 0 {
		return nil, errors.New("numeric value has a fractional part")
	}

	v := new(big.Int).Set(n.Int)
	for i := int32(0); i < n.Exp; i++ {
		v.Mul(v, ten)
	}
	return v, nil
}

// FromBig - big.Int -> pgtype.Numeric
func FromBig(v *big.Int) pgtype.Numeric {
	if v == nil {
		v = big.NewInt(0)
	}
	return pgtype.Numeric{
		Int:   new(big.Int).Set(v),
		Exp:   0,
		Valid: true,
	}
}
