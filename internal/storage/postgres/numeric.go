package postgres

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

var ten = big.NewInt(10)

func toNumeric(v *big.Int) pgtype.Numeric {
	if v == nil {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

// fromNumeric converts an integral numeric value. NULL becomes nil.
func fromNumeric(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid {
		return nil, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("numeric is not finite")
	}
	if n.Int == nil {
		return new(big.Int), nil
	}

	out := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		out.Mul(out, new(big.Int).Exp(ten, big.NewInt(int64(n.Exp)), nil))
	case n.Exp < 0:
		div := new(big.Int).Exp(ten, big.NewInt(int64(-n.Exp)), nil)
		q, r := new(big.Int).QuoRem(out, div, new(big.Int))
		if r.Sign() != 0 {
			return nil, fmt.Errorf("numeric %s has a fractional part", n.Int)
		}
		out = q
	}
	return out, nil
}
