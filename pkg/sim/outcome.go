package sim

// Outcome classifies a settled period for coaching.
type Outcome int

const (
	NoSales Outcome = iota
	Profitable
	MarginalLoss
	SevereLoss
)

// SevereLossRatio is the combined ratio at which a loss stops being marginal.
const SevereLossRatio = 1.10

func (o Outcome) String() string {
	switch o {
	case NoSales:
		return "no_sales"
	case Profitable:
		return "profitable"
	case MarginalLoss:
		return "marginal_loss"
	case SevereLoss:
		return "severe_loss"
	}
	return "unknown"
}

// Classify buckets a period by combined ratio. Periods with no premium income
// are NoSales regardless of their (zero) combined ratio.
func Classify(r PeriodResult) Outcome {
	switch {
	case !r.HasExposure():
		return NoSales
	case r.CombinedRatio < 1:
		return Profitable
	case r.CombinedRatio < SevereLossRatio:
		return MarginalLoss
	default:
		return SevereLoss
	}
}
