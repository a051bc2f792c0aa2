package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratesOf(m map[time.Month]float64) RateTable {
	var t RateTable
	for month, r := range m {
		t.Set(month, r)
	}
	return t
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestComputeRent_MonthRollover(t *testing.T) {
	rates := ratesOf(map[time.Month]float64{time.July: 100, time.August: 120})

	res := ComputeRent(mustDate(t, "2024-07-30"), mustDate(t, "2024-08-02"), rates, nil)

	// nights of Jul 30, Jul 31 and Aug 1
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, 320.0, res.RentTotal)
	assert.Equal(t, []MonthNights{{time.July, 2}, {time.August, 1}}, res.NightsByMonth)
}

func TestComputeRent_NightBelongsToStartMonth(t *testing.T) {
	rates := ratesOf(map[time.Month]float64{time.July: 100, time.August: 120})

	// one night starting July 31 ends on August 1
	res := ComputeRent(mustDate(t, "2024-07-31"), mustDate(t, "2024-08-01"), rates, nil)

	require.Equal(t, 1, res.Nights)
	assert.Equal(t, 1, res.Count(time.July))
	assert.Equal(t, 0, res.Count(time.August))
	assert.Equal(t, 100.0, res.RentTotal)
}

func TestComputeRent_YearRollover(t *testing.T) {
	rates := ratesOf(map[time.Month]float64{time.December: 90, time.January: 70})

	res := ComputeRent(mustDate(t, "2024-12-30"), mustDate(t, "2025-01-03"), rates, nil)

	assert.Equal(t, 4, res.Nights)
	assert.Equal(t, 2, res.Count(time.December))
	assert.Equal(t, 2, res.Count(time.January))
	assert.Equal(t, 320.0, res.RentTotal)
}

func TestComputeRent_LeapFebruary(t *testing.T) {
	rates := ratesOf(map[time.Month]float64{time.February: 50, time.March: 60})

	res := ComputeRent(mustDate(t, "2024-02-27"), mustDate(t, "2024-03-02"), rates, nil)

	assert.Equal(t, 4, res.Nights)
	assert.Equal(t, 3, res.Count(time.February))
	assert.Equal(t, 1, res.Count(time.March))
}

func TestComputeRent_MissingRateFailsOpen(t *testing.T) {
	rates := ratesOf(map[time.Month]float64{time.July: 100})

	var missing []Date
	res := ComputeRent(mustDate(t, "2024-07-31"), mustDate(t, "2024-08-03"), rates, func(d Date) {
		missing = append(missing, d)
	})

	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, 100.0, res.RentTotal)
	assert.Equal(t, 2, res.Count(time.August))
	assert.Equal(t, []Date{NewDate(2024, time.August, 1), NewDate(2024, time.August, 2)}, missing)
}

func TestComputeRent_EmptyOrReversedRange(t *testing.T) {
	rates := ratesOf(map[time.Month]float64{time.July: 100})
	d := mustDate(t, "2024-07-10")

	same := ComputeRent(d, d, rates, nil)
	assert.Equal(t, RentResult{}, same)

	reversed := ComputeRent(d, d.AddDays(-5), rates, nil)
	assert.Equal(t, RentResult{}, reversed)
}

func TestComputeRent_Invariants(t *testing.T) {
	rates := ratesOf(map[time.Month]float64{
		time.January: 10, time.March: 30, time.June: 60, time.October: 100, time.December: 120,
	})
	start := mustDate(t, "2023-11-15")

	for _, length := range []int{1, 2, 17, 45, 120, 400} {
		end := start.AddDays(length)
		res := ComputeRent(start, end, rates, nil)

		assert.Equal(t, start.DaysUntil(end), res.Nights, "length %d", length)

		sum := 0
		for _, mn := range res.NightsByMonth {
			sum += mn.Nights
		}
		assert.Equal(t, res.Nights, sum, "length %d", length)

		want := 0.0
		for cur := start; cur.Before(end); cur = cur.AddDays(1) {
			r, _ := rates.Rate(cur.Month)
			want += r
		}
		assert.Equal(t, want, res.RentTotal, "length %d", length)
	}
}

func TestComputeRent_DSTWeekendInLocalZone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tz data unavailable: %v", err)
	}
	rates := ratesOf(map[time.Month]float64{time.March: 80})

	in := DateOf(time.Date(2024, time.March, 30, 0, 0, 0, 0, loc))
	out := DateOf(time.Date(2024, time.April, 1, 0, 0, 0, 0, loc))
	res := ComputeRent(in, out, rates, nil)

	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, 160.0, res.RentTotal)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-07-30 ")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.July, 30}, d)
	assert.Equal(t, "30/07/2024", d.Display())

	for _, bad := range []string{"", "2024-02-30", "30/07/2024", "2024-13-01"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseMonthKey(t *testing.T) {
	m, ok := ParseMonthKey("Luglio")
	assert.True(t, ok)
	assert.Equal(t, time.July, m)

	m, ok = ParseMonthKey("august")
	assert.True(t, ok)
	assert.Equal(t, time.August, m)

	_, ok = ParseMonthKey("smarch")
	assert.False(t, ok)

	assert.Equal(t, "dicembre", MonthKey(time.December))
}
