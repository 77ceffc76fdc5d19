package paystation

import (
	"fmt"
	"strings"

	"github.com/temoto/paystation/currency"
)

// InsertionLog is sequence of accepted coins, index is insertion step starting at 0.
type InsertionLog []currency.Nominal

func (self InsertionLog) Len() int { return len(self) }

// Get returns false for index outside of log.
func (self InsertionLog) Get(index int) (currency.Nominal, bool) {
	if index < 0 || index >= len(self) {
		return 0, false
	}
	return self[index], true
}

func (self InsertionLog) Total() currency.Amount {
	sum := currency.Amount(0)
	for _, n := range self {
		sum += currency.Amount(n)
	}
	return sum
}

func (self InsertionLog) String() string {
	parts := make([]string, len(self))
	for i, n := range self {
		parts[i] = fmt.Sprintf("%d:%d", i, n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
