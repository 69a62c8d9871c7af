package stats

import "github.com/fabiareis/trading-journal/journal"

// AccountSummary splits trade results between the personal account and the
// proprietary (prop-firm) accounts.
type AccountSummary struct {
	PersonalCapital   float64 // allocated capital of the latest personal trade
	PersonalResult    float64
	PersonalReturn    float64 // percent of PersonalCapital; 0 without capital
	TestValues        float64 // sum of evaluation fees paid
	ProprietaryResult float64
}

func SummarizeAccounts(trades []journal.Trade) AccountSummary {
	var s AccountSummary
	for _, t := range trades {
		switch {
		case t.Personal():
			s.PersonalResult += t.Result
			if t.AllocatedCapital != nil {
				s.PersonalCapital = *t.AllocatedCapital
			} else {
				s.PersonalCapital = 0
			}
		case t.Proprietary():
			s.ProprietaryResult += t.Result
			if t.TestValue != nil {
				s.TestValues += *t.TestValue
			}
		}
	}
	if s.PersonalCapital > 0 {
		s.PersonalReturn = s.PersonalResult / s.PersonalCapital * 100
	}
	return s
}

// GainLossRow is the risk plan row for a gain×loss multiplier pair:
// the gain target, the stop, and the stop split over 2, 3 and 4 entries.
type GainLossRow struct {
	Gain        float64
	Loss        float64
	LossHalf    float64
	LossThird   float64
	LossQuarter float64
}

// GainLossTable scales base by the gain and loss multipliers.
func GainLossTable(base, gainMult, lossMult float64) GainLossRow {
	loss := base * lossMult
	return GainLossRow{
		Gain:        base * gainMult,
		Loss:        loss,
		LossHalf:    loss / 2,
		LossThird:   loss / 3,
		LossQuarter: loss / 4,
	}
}
