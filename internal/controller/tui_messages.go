package controller

import (
	m "github.com/doclens/doclens/internal/model"
)

// List item types.
type debtItem struct {
	debt m.Debt
}

func (d debtItem) FilterValue() string {
	return string(d.debt.File) + " " + d.debt.Entity
}
