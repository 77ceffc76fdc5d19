// Package paystation is coin-operated parking pay station.
// Overview:
// - AddPayment: coin 5, 10 or 25 accumulates credit, display shows minutes bought
// - Buy: receipt for minutes bought, session reset
// - Cancel: refund report with total inserted, session reset
// - Empty: collector takes inserted total, session reset
// Station is owned by single caller, no locking inside.
package paystation

import (
	"github.com/juju/errors"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/log2"
)

var ErrIllegalCoin = errors.New("illegal coin")

// Minutes of parking time.
type Minutes uint32

// Parking time rate: RateMinutes for every RateUnit inserted, remainder is not counted.
const (
	RateUnit    currency.Amount = 5
	RateMinutes Minutes         = 2
)

var legalCoins = [...]currency.Nominal{5, 10, 25}

// LegalCoins returns accepted coin values in ascending order.
func LegalCoins() []currency.Nominal {
	result := make([]currency.Nominal, len(legalCoins))
	copy(result, legalCoins[:])
	return result
}

func IsIllegalCoin(err error) bool { return err != nil && errors.Cause(err) == ErrIllegalCoin }

// MinutesFor converts money to parking time.
func MinutesFor(a currency.Amount) Minutes { return Minutes(a/RateUnit) * RateMinutes }

// RefundTotalKey is the only key of RefundReport, it maps to total inserted money.
const RefundTotalKey = 1

type RefundReport map[int]currency.Amount

func (r RefundReport) Total() currency.Amount { return r[RefundTotalKey] }

type PayStation struct {
	Log *log2.Log

	insertedSoFar currency.Amount
	timeBought    Minutes
	insertions    InsertionLog
	// per nominal count of current session coins
	credit *currency.NominalGroup
}

func New(log *log2.Log) *PayStation {
	return &PayStation{
		Log:    log,
		credit: currency.NewNominalGroup(legalCoins[:]...),
	}
}

// AddPayment accepts one coin. Illegal coin error leaves station unchanged.
func (self *PayStation) AddPayment(coin currency.Nominal) error {
	const tag = "paystation.add-payment"

	if err := self.credit.Add(coin, 1); err != nil {
		self.Log.Debugf("%s rejected coin=%d", tag, coin)
		return errors.Wrapf(err, ErrIllegalCoin, "coin=%d", coin)
	}
	self.insertions = append(self.insertions, coin)
	self.insertedSoFar += currency.Amount(coin)
	self.timeBought = MinutesFor(self.insertedSoFar)
	self.Log.Debugf("%s coin=%d index=%d total=%s minutes=%d",
		tag, coin, len(self.insertions)-1, self.insertedSoFar, self.timeBought)
	return nil
}

func (self *PayStation) ReadDisplay() Minutes { return self.timeBought }

func (self *PayStation) InsertedSoFar() currency.Amount { return self.insertedSoFar }

// InsertionLog returns copy of coins accepted since last reset, in insertion order.
func (self *PayStation) InsertionLog() InsertionLog {
	if len(self.insertions) == 0 {
		return InsertionLog{}
	}
	result := make(InsertionLog, len(self.insertions))
	copy(result, self.insertions)
	return result
}

// Buy returns receipt for the time bought so far, then resets session.
func (self *PayStation) Buy() Receipt {
	r := newReceipt(self.timeBought)
	self.Log.Debugf("paystation.buy receipt=%s credit=%s", r.String(), self.credit.String())
	self.zero()
	return r
}

// Cancel reports total money to return, then resets session.
func (self *PayStation) Cancel() RefundReport {
	report := RefundReport{RefundTotalKey: self.insertedSoFar}
	self.Log.Debugf("paystation.cancel return=%s coins=%s", self.insertedSoFar, self.credit.String())
	self.zero()
	return report
}

// Empty is maintenance operation: collector takes money inserted since last reset.
func (self *PayStation) Empty() currency.Amount {
	total := self.insertedSoFar
	self.Log.Debugf("paystation.empty total=%s", total)
	self.zero()
	return total
}

func (self *PayStation) zero() {
	self.insertedSoFar = 0
	self.timeBought = 0
	self.insertions = nil
	self.credit.Clear()
}
