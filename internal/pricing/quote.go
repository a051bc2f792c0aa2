package pricing

import "math"

const (
	// LinenRate is charged per guest when linen is included.
	LinenRate = 20.0
	// PetFee is flat per stay.
	PetFee = 30.0
)

// StayRequest is a validated stay: CheckOut is after CheckIn and Guests is positive.
type StayRequest struct {
	GuestName string `json:"guestName"`
	Property  string `json:"property"`
	CheckIn   Date   `json:"checkIn"`
	CheckOut  Date   `json:"checkOut"`
	Guests    int    `json:"guests"`
}

type Fees struct {
	CleaningFee   float64
	LinenIncluded bool
	HasPet        bool
}

type Discounts struct {
	Percent float64
	Euro    float64
}

// Quote is the full pricing breakdown of one stay. Amounts are unrounded.
type Quote struct {
	Stay StayRequest `json:"stay"`
	Rent RentResult  `json:"rent"`

	DiscountPercent       float64 `json:"discountPercent"`
	PercentDiscountAmount float64 `json:"percentDiscountAmount"`
	RentAfterPercent      float64 `json:"rentAfterPercent"`

	CleaningFee float64 `json:"cleaningFee"`
	LinenFee    float64 `json:"linenFee"`
	PetFee      float64 `json:"petFee"`
	Subtotal    float64 `json:"subtotal"`

	DiscountEuro float64 `json:"discountEuro"`
	Total        float64 `json:"total"`
}

// AssembleQuote applies percent discount, fees and fixed discount in that order.
func AssembleQuote(stay StayRequest, rent RentResult, fees Fees, discounts Discounts) Quote {
	pct := clamp(discounts.Percent, 0, 100)
	percentAmount := rent.RentTotal * pct / 100
	rentAfter := rent.RentTotal - percentAmount

	linen := 0.0
	if fees.LinenIncluded {
		linen = float64(stay.Guests) * LinenRate
	}
	pet := 0.0
	if fees.HasPet {
		pet = PetFee
	}

	subtotal := rentAfter + fees.CleaningFee + linen + pet
	euro := nonNegative(discounts.Euro)
	total := math.Max(subtotal-euro, 0)

	return Quote{
		Stay:                  stay,
		Rent:                  rent,
		DiscountPercent:       pct,
		PercentDiscountAmount: percentAmount,
		RentAfterPercent:      rentAfter,
		CleaningFee:           fees.CleaningFee,
		LinenFee:              linen,
		PetFee:                pet,
		Subtotal:              subtotal,
		DiscountEuro:          euro,
		Total:                 total,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
