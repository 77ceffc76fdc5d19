package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// Amount is integer counting lowest currency unit, e.g. $1.20 = 120
type Amount uint32

func (self Amount) String() string { return fmt.Sprintf("%d", uint32(self)) }

// Nominal is value of one coin
type Nominal Amount

var ErrNominalInvalid = errors.New("Nominal is not valid for this group")

// NominalGroup counts money comprised of multiple nominals, like coins.
// coin5 : 3
// coin10: 1
// coin25: 4
// total : 125
// Only nominals passed to SetValid are accepted.
type NominalGroup struct {
	values map[Nominal]uint
}

func NewNominalGroup(valid ...Nominal) *NominalGroup {
	ng := &NominalGroup{}
	ng.SetValid(valid)
	return ng
}

func (self *NominalGroup) Copy() *NominalGroup {
	ng2 := &NominalGroup{
		values: make(map[Nominal]uint, len(self.values)),
	}
	for k, v := range self.values {
		ng2.values[k] = v
	}
	return ng2
}

func (self *NominalGroup) SetValid(valid []Nominal) {
	self.values = make(map[Nominal]uint, len(valid))
	for _, n := range valid {
		if n != 0 {
			self.values[n] = 0
		}
	}
}

func (self *NominalGroup) Valid(n Nominal) bool {
	_, ok := self.values[n]
	return ok
}

// Add does not modify group on error.
func (self *NominalGroup) Add(n Nominal, count uint) error {
	if !self.Valid(n) {
		return errors.Annotatef(ErrNominalInvalid, "Add(n=%d, c=%d)", n, count)
	}
	self.values[n] += count
	return nil
}

func (self *NominalGroup) Clear() {
	for n := range self.values {
		self.values[n] = 0
	}
}

func (self *NominalGroup) Get(n Nominal) (uint, error) {
	stored, ok := self.values[n]
	if !ok {
		return 0, errors.Annotatef(ErrNominalInvalid, "Get(n=%d)", n)
	}
	return stored, nil
}

// Iter visits nominals in ascending order.
func (self *NominalGroup) Iter(f func(nominal Nominal, count uint) error) error {
	for _, nominal := range self.sorted() {
		if err := f(nominal, self.values[nominal]); err != nil {
			return err
		}
	}
	return nil
}

func (self *NominalGroup) Total() Amount {
	sum := Amount(0)
	for nominal, count := range self.values {
		sum += Amount(nominal) * Amount(count)
	}
	return sum
}

func (self *NominalGroup) String() string {
	parts := make([]string, 0, len(self.values)+1)
	for _, nominal := range self.sorted() {
		if count := self.values[nominal]; count > 0 {
			parts = append(parts, fmt.Sprintf("%d:%d", nominal, count))
		}
	}
	parts = append(parts, fmt.Sprintf("total:%s", self.Total()))
	return strings.Join(parts, ",")
}

func (self *NominalGroup) sorted() []Nominal {
	order := make([]Nominal, 0, len(self.values))
	for n := range self.values {
		order = append(order, n)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return order
}
