package pricing

import "time"

// RateTable holds one optional nightly rate per calendar month.
type RateTable struct {
	rates [12]float64
	set   [12]bool
}

func (t *RateTable) Set(m time.Month, rate float64) {
	if m < time.January || m > time.December {
		return
	}
	t.rates[m-1] = rate
	t.set[m-1] = true
}

// Rate reports the nightly rate for m and whether one is configured.
func (t RateTable) Rate(m time.Month) (float64, bool) {
	if m < time.January || m > time.December {
		return 0, false
	}
	return t.rates[m-1], t.set[m-1]
}

// Months lists configured months in calendar order.
func (t RateTable) Months() []time.Month {
	out := make([]time.Month, 0, 12)
	for i, ok := range t.set {
		if ok {
			out = append(out, time.Month(i+1))
		}
	}
	return out
}

type MonthNights struct {
	Month  time.Month `json:"month"`
	Nights int        `json:"nights"`
}

type RentResult struct {
	Nights        int           `json:"nights"`
	RentTotal     float64       `json:"rentTotal"`
	NightsByMonth []MonthNights `json:"nightsByMonth"`
}

// Count returns the nights attributed to m.
func (r RentResult) Count(m time.Month) int {
	for _, mn := range r.NightsByMonth {
		if mn.Month == m {
			return mn.Nights
		}
	}
	return 0
}

// MissingRateFunc is notified once per night priced at 0 for lack of a rate.
type MissingRateFunc func(night Date)

// ComputeRent prices every night in [checkIn, checkOut). A night belongs to the month
// of its start date. Months without a rate price at 0 and are reported through onMissing.
// An empty or reversed range yields the zero result.
func ComputeRent(checkIn, checkOut Date, rates RateTable, onMissing MissingRateFunc) RentResult {
	var res RentResult
	for cur := checkIn; cur.Before(checkOut); cur = cur.AddDays(1) {
		res.Nights++
		if rate, ok := rates.Rate(cur.Month); ok {
			res.RentTotal += rate
		} else if onMissing != nil {
			onMissing(cur)
		}
		res.addNight(cur.Month)
	}
	return res
}

func (r *RentResult) addNight(m time.Month) {
	for i := range r.NightsByMonth {
		if r.NightsByMonth[i].Month == m {
			r.NightsByMonth[i].Nights++
			return
		}
	}
	r.NightsByMonth = append(r.NightsByMonth, MonthNights{Month: m, Nights: 1})
}
