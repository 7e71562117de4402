package service

const (
	MaxPrice         = 1_000_000_000.0 // 1 billion
	MaxInterestRate  = 100.0           // 100% annual
	MaxLoanTermYears = 50
	MinLoanTermYears = 1
	MaxUnits         = 1000
	MaxHorizonYears  = 100

	DefaultLoanTermYears = 30 // 30-year fixed

	// OperatingExpenseRatio is the share of projected rent treated as operating
	// expense in the cash flow projection. It is a fixed policy, not derived
	// from the deal's actual expenses.
	OperatingExpenseRatio = 0.4

	// Growth rates at or below this make the compounding base non-positive.
	MinGrowthPct = -100.0
)
