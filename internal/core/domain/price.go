package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitDecimals is the number of decimals between the display unit (ether)
// and the ledger's smallest unit (wei).
const UnitDecimals = 18

const (
	// maxPriceLength bounds the accepted input text; the largest uint256
	// amount written in ether needs 79 characters.
	maxPriceLength = 100
	// maxWeiDigits is the number of decimal digits of 2^256-1.
	maxWeiDigits = 78
	maxWeiBits   = 256
)

var (
	ErrPriceEmpty     = errors.New("price is required")
	ErrPriceMalformed = errors.New("price is not a number")
	ErrPriceNegative  = errors.New("price must not be negative")
	ErrPricePrecision = errors.New("price has more than 18 decimals")
	ErrPriceTooLarge  = errors.New("price does not fit in 256 bits of wei")
)

// ParsePrice converts a display-unit amount such as "1.5" into smallest
// units. The result always fits the ledger's uint256 amounts. Exponents are
// checked before scaling so inputs like "1e2000000000" fail without ever
// being expanded.
func ParsePrice(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrPriceEmpty
	}
	if len(s) > maxPriceLength {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrPriceMalformed, maxPriceLength)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPriceMalformed, s)
	}
	if d.IsNegative() {
		return nil, ErrPriceNegative
	}
	if d.IsZero() {
		return new(big.Int), nil
	}

	// The coefficient has at most maxPriceLength digits, so it cannot carry
	// enough trailing zeros to make a lower exponent whole.
	exp := int64(d.Exponent()) + UnitDecimals
	if exp >= maxWeiDigits {
		return nil, ErrPriceTooLarge
	}
	if exp < -maxPriceLength {
		return nil, ErrPricePrecision
	}

	wei := d.Shift(UnitDecimals)
	if !wei.IsInteger() {
		return nil, ErrPricePrecision
	}
	v := wei.BigInt()
	if v.BitLen() > maxWeiBits {
		return nil, ErrPriceTooLarge
	}
	return v, nil
}

// FormatPrice renders smallest units in the display unit, e.g. "1.5".
func FormatPrice(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -UnitDecimals).String()
}
