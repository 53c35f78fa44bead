package fixedpoint

import (
	"database/sql/driver"
	"fmt"

	"cosmossdk.io/math"
)

// Amount wraps math.Int so big integer columns round trip through the
// database as decimal strings. JSON marshalling is inherited from math.Int.
type Amount struct {
	math.Int
}

// NewAmount new amount from math.Int
func NewAmount(v math.Int) Amount {
	return Amount{Int: v}
}

// ZeroAmount zero valued amount
func ZeroAmount() Amount {
	return Amount{Int: math.ZeroInt()}
}

// Value implements driver.Valuer
func (a Amount) Value() (driver.Value, error) {
	if a.Int.IsNil() {
		return "0", nil
	}

	return a.Int.String(), nil
}

// Scan implements sql.Scanner
func (a *Amount) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
		a.Int = math.ZeroInt()
		return nil
	case int64:
		a.Int = math.NewInt(v)
		return nil
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("fixedpoint: cannot scan %T into Amount", value)
	}

	if s == "" {
		a.Int = math.ZeroInt()
		return nil
	}

	i, ok := math.NewIntFromString(s)
	if !ok {
		return fmt.Errorf("fixedpoint: malformed integer %q", s)
	}

	a.Int = i
	return nil
}
