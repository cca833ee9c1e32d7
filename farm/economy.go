package farm

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned by Economy.Debit when the balance does not
// cover the requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Economy holds the farm's single currency balance.
type Economy struct {
	balance float32
}

// NewEconomy creates an economy with the given opening balance.
func NewEconomy(balance float32) *Economy {
	return &Economy{balance: balance}
}

// Balance returns the current balance.
func (e *Economy) Balance() float32 {
	return e.balance
}

// CanAfford reports whether the balance covers cost.
func (e *Economy) CanAfford(cost float32) bool {
	return e.balance >= cost
}

// Debit subtracts cost from the balance. If the balance does not cover cost
// nothing changes and ErrInsufficientFunds is returned.
func (e *Economy) Debit(cost float32) error {
	if !e.CanAfford(cost) {
		return fmt.Errorf("debit %.2f from balance %.2f: %w", cost, e.balance, ErrInsufficientFunds)
	}
	e.balance -= cost
	return nil
}

// Credit adds amount to the balance. There is no upper bound.
func (e *Economy) Credit(amount float32) {
	e.balance += amount
}
