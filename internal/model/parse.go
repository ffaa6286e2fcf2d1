package model

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a subgraph decimal string. Empty values count as zero.
func ParseAmount(input string) (decimal.Decimal, error) {
	if input == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", input, err)
	}
	return value, nil
}

// ParseInt32 parses a tick index or token decimals field.
func ParseInt32(input string) (int32, error) {
	value, err := strconv.ParseInt(input, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", input, err)
	}
	return int32(value), nil
}
