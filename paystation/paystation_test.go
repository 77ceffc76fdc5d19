package paystation

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/log2"
)

func newTestStation(t testing.TB) *PayStation {
	return New(log2.NewTest(t, log2.LDebug))
}

func mustPay(t testing.TB, ps *PayStation, coins ...currency.Nominal) {
	t.Helper()
	for _, c := range coins {
		require.NoError(t, ps.AddPayment(c))
	}
}

func assertSettled(t testing.TB, ps *PayStation) {
	t.Helper()
	assert.Equal(t, Minutes(0), ps.ReadDisplay())
	assert.Equal(t, currency.Amount(0), ps.InsertedSoFar())
	assert.Equal(t, 0, ps.InsertionLog().Len())
	_, ok := ps.InsertionLog().Get(0)
	assert.False(t, ok)
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		coins  []currency.Nominal
		expect Minutes
	}{
		{"empty", nil, 0},
		{"5", []currency.Nominal{5}, 2},
		{"10", []currency.Nominal{10}, 4},
		{"25", []currency.Nominal{25}, 10},
		{"10+25", []currency.Nominal{10, 25}, 14},
		{"5+10+25", []currency.Nominal{5, 10, 25}, 16},
		{"100", []currency.Nominal{10, 10, 10, 10, 10, 25, 25}, 40},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			ps := newTestStation(t)
			mustPay(t, ps, c.coins...)
			assert.Equal(t, c.expect, ps.ReadDisplay())
			assert.Equal(t, c.expect, MinutesFor(ps.InsertedSoFar()))
		})
	}
}

func TestDisplayMatchesRate(t *testing.T) {
	t.Parallel()

	ps := newTestStation(t)
	sum := currency.Amount(0)
	coins := []currency.Nominal{25, 5, 10, 10, 25, 5, 5, 25, 10}
	for _, c := range coins {
		mustPay(t, ps, c)
		sum += currency.Amount(c)
		assert.Equal(t, Minutes(sum/5*2), ps.ReadDisplay())
		assert.Equal(t, sum, ps.InsertedSoFar())
	}
	// pure read
	assert.Equal(t, ps.ReadDisplay(), ps.ReadDisplay())
}

func TestMinutesFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Minutes(0), MinutesFor(0))
	assert.Equal(t, Minutes(0), MinutesFor(4))
	assert.Equal(t, Minutes(2), MinutesFor(9))
	assert.Equal(t, Minutes(40), MinutesFor(100))
}

func TestIllegalCoin(t *testing.T) {
	t.Parallel()

	for _, coin := range []currency.Nominal{0, 1, 2, 4, 6, 15, 17, 20, 50, 100} {
		coin := coin
		t.Run(currency.Amount(coin).String(), func(t *testing.T) {
			ps := newTestStation(t)
			mustPay(t, ps, 10, 5)
			logBefore := ps.InsertionLog()

			err := ps.AddPayment(coin)
			require.Error(t, err)
			assert.True(t, IsIllegalCoin(err))
			assert.Equal(t, ErrIllegalCoin, errors.Cause(err))
			assert.Contains(t, err.Error(), "illegal coin")

			assert.Equal(t, Minutes(6), ps.ReadDisplay())
			assert.Equal(t, currency.Amount(15), ps.InsertedSoFar())
			assert.Equal(t, logBefore, ps.InsertionLog())

			// recoverable
			mustPay(t, ps, 25)
			assert.Equal(t, Minutes(16), ps.ReadDisplay())
		})
	}
}

func TestIllegalCoinOnFresh(t *testing.T) {
	t.Parallel()
	ps := newTestStation(t)
	err := ps.AddPayment(17)
	assert.True(t, IsIllegalCoin(err))
	assertSettled(t, ps)
	assert.False(t, IsIllegalCoin(nil))
	assert.False(t, IsIllegalCoin(errors.New("other")))
}

func TestBuy(t *testing.T) {
	t.Parallel()

	ps := newTestStation(t)
	mustPay(t, ps, 5, 10, 25)
	before := ps.ReadDisplay()
	r := ps.Buy()
	assert.Equal(t, before, r.Value())
	assert.Equal(t, Minutes(16), r.Value())
	assertSettled(t, ps)

	// following session behaves properly
	mustPay(t, ps, 10, 25)
	assert.Equal(t, Minutes(14), ps.ReadDisplay())
	r2 := ps.Buy()
	assert.Equal(t, Minutes(14), r2.Value())
	assertSettled(t, ps)

	// receipt is independent of later session
	assert.Equal(t, Minutes(16), r.Value())
	assert.NotEqual(t, r.ID(), r2.ID())
}

func TestBuyNothing(t *testing.T) {
	t.Parallel()
	ps := newTestStation(t)
	r := ps.Buy()
	assert.Equal(t, Minutes(0), r.Value())
	assertSettled(t, ps)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	ps := newTestStation(t)
	mustPay(t, ps, 10)
	report := ps.Cancel()
	assert.Equal(t, RefundReport{1: 10}, report)
	assert.Equal(t, currency.Amount(10), report.Total())
	assertSettled(t, ps)

	mustPay(t, ps, 25)
	assert.Equal(t, Minutes(10), ps.ReadDisplay())

	ps2 := newTestStation(t)
	mustPay(t, ps2, 25, 10, 5)
	report = ps2.Cancel()
	assert.Len(t, report, 1)
	assert.Equal(t, currency.Amount(40), report[RefundTotalKey])
}

func TestCancelNothing(t *testing.T) {
	t.Parallel()
	ps := newTestStation(t)
	report := ps.Cancel()
	assert.Equal(t, RefundReport{RefundTotalKey: 0}, report)
	assertSettled(t, ps)
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		prep   func(*PayStation)
		expect currency.Amount
	}{
		{"nothing", func(*PayStation) {}, 0},
		{"10", func(ps *PayStation) { _ = ps.AddPayment(10) }, 10},
		{"5", func(ps *PayStation) { _ = ps.AddPayment(5) }, 5},
		{"with-illegal", func(ps *PayStation) {
			_ = ps.AddPayment(25)
			_ = ps.AddPayment(17)
			_ = ps.AddPayment(5)
		}, 30},
		{"after-cancel", func(ps *PayStation) {
			_ = ps.AddPayment(25)
			ps.Cancel()
			_ = ps.AddPayment(10)
		}, 10},
		{"after-buy", func(ps *PayStation) {
			_ = ps.AddPayment(25)
			ps.Buy()
		}, 0},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			ps := newTestStation(t)
			c.prep(ps)
			assert.Equal(t, c.expect, ps.Empty())
			assertSettled(t, ps)
			assert.Equal(t, currency.Amount(0), ps.Empty())
		})
	}
}

func TestInsertionLog(t *testing.T) {
	t.Parallel()

	ps := newTestStation(t)
	expect := []currency.Nominal{25, 10, 5}
	mustPay(t, ps, expect...)
	require.Error(t, ps.AddPayment(17))

	il := ps.InsertionLog()
	require.Equal(t, len(expect), il.Len())
	for i, n := range expect {
		got, ok := il.Get(i)
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
	_, ok := il.Get(3)
	assert.False(t, ok, "index beyond log must be absent")
	_, ok = il.Get(-1)
	assert.False(t, ok)
	assert.Equal(t, ps.InsertedSoFar(), il.Total())
	assert.Equal(t, "[0:25 1:10 2:5]", il.String())

	// snapshot does not follow station
	ps.Cancel()
	assert.Equal(t, 3, il.Len())
	assertSettled(t, ps)

	mustPay(t, ps, 10, 10, 10)
	ps.Buy()
	_, ok = ps.InsertionLog().Get(0)
	assert.False(t, ok)
}

func TestLegalCoins(t *testing.T) {
	t.Parallel()
	coins := LegalCoins()
	assert.Equal(t, []currency.Nominal{5, 10, 25}, coins)
	coins[0] = 1
	assert.Equal(t, []currency.Nominal{5, 10, 25}, LegalCoins())
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	t.Run("1", func(t *testing.T) {
		ps := newTestStation(t)
		mustPay(t, ps, 5)
		assert.Equal(t, Minutes(2), ps.ReadDisplay())
	})
	t.Run("2", func(t *testing.T) {
		ps := newTestStation(t)
		mustPay(t, ps, 25)
		assert.Equal(t, Minutes(10), ps.ReadDisplay())
	})
	t.Run("3", func(t *testing.T) {
		ps := newTestStation(t)
		assert.True(t, IsIllegalCoin(ps.AddPayment(17)))
		assert.Equal(t, Minutes(0), ps.ReadDisplay())
	})
	t.Run("4", func(t *testing.T) {
		ps := newTestStation(t)
		mustPay(t, ps, 10, 25)
		assert.Equal(t, Minutes(14), ps.ReadDisplay())
	})
	t.Run("5", func(t *testing.T) {
		ps := newTestStation(t)
		mustPay(t, ps, 5, 10, 25)
		assert.Equal(t, Minutes(16), ps.Buy().Value())
		assert.Equal(t, Minutes(0), ps.ReadDisplay())
	})
	t.Run("6", func(t *testing.T) {
		ps := newTestStation(t)
		mustPay(t, ps, 10)
		assert.Equal(t, RefundReport{1: 10}, ps.Cancel())
		assert.Equal(t, Minutes(0), ps.ReadDisplay())
		mustPay(t, ps, 25)
		assert.Equal(t, Minutes(10), ps.ReadDisplay())
	})
}

func TestNilLog(t *testing.T) {
	t.Parallel()
	ps := New(nil)
	mustPay(t, ps, 25)
	assert.Error(t, ps.AddPayment(3))
	assert.Equal(t, Minutes(10), ps.Buy().Value())
}
