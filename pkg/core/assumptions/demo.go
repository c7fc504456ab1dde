package assumptions

// Demo returns a fully populated consulting-carve-out deal that exercises the
// whole pipeline: three scenarios, a funded transaction, linear senior debt
// with a sweep, and an investor exit in the final projection year.
func Demo() *Deal {
	horizon := DefaultHorizon

	base := demoDrivers(horizon, 0.68, 2125, 2350)
	best := demoDrivers(horizon, 0.75, 2300, 2600)
	worst := demoDrivers(horizon, 0.55, 1800, 2000)

	personnel := make([]PersonnelYear, horizon)
	overhead := make([]OverheadYear, horizon)
	variable := make([]VariableYear, horizon)
	for i := 0; i < horizon; i++ {
		personnel[i] = PersonnelYear{
			ConsultantFTE:        63,
			ConsultantLoadedCost: 150000,
			BackofficeFTE:        18,
			BackofficeLoadedCost: 80000,
			ManagementCost:       600000,
		}
		overhead[i] = OverheadYear{
			Advisory:      150000,
			Legal:         320000,
			ITSoftware:    440000,
			OfficeRent:    1730000,
			Services:      400000,
			OtherServices: 700000,
		}
		variable[i] = VariableYear{
			Training:      VariableCost{Basis: BasisPctRevenue, Value: 0.01},
			Travel:        VariableCost{Basis: BasisPctRevenue, Value: 0.02},
			Communication: VariableCost{Basis: BasisAbsolute, Value: 120000},
		}
	}

	specialYear := 3

	return &Deal{
		Name:         "Demo Consulting MBO",
		HorizonYears: horizon,
		Scenario:     ScenarioBase,
		Revenue: map[Scenario]*RevenueDrivers{
			ScenarioBase:  base,
			ScenarioBest:  best,
			ScenarioWorst: worst,
		},
		Costs: CostPlan{
			ApplyInflation: true,
			InflationRate:  0.02,
			Personnel:      personnel,
			FixedOverhead:  overhead,
			Variable:       variable,
		},
		Cashflow: CashflowPolicy{
			TaxCashRate:        0.30,
			TaxPaymentLagYears: 1,
			CapexPctRevenue:    0.005,
			BaseCapex:          200000,
			NWCPctRevenue:      0.10,
			OpeningCash:        0,
		},
		Financing: Financing{
			SeniorDebt:             11000000,
			SeniorRate:             0.06,
			Amortization:           AmortizationLinear,
			AmortYears:             5,
			GraceYears:             0,
			SpecialRepaymentYear:   &specialYear,
			SpecialRepaymentAmount: 0,
			CashSweepPct:           0.50,
			RevolverLimit:          1500000,
			RevolverRate:           0.07,
			MinimumDSCR:            1.3,
			MaintenanceCapexPct:    0.01,
		},
		Transaction: Transaction{
			PurchasePrice:      16000000,
			EquityContribution: 5320000,
			TransactionFeePct:  0.02,
		},
		Equity: EquityCase{
			SponsorEquity:       2000000,
			InvestorEquity:      3320000,
			ExitYear:            5,
			ExitMultiple:        7.0,
			DividendPayoutRatio: 0.0,
			FirstDividendYear:   4,
		},
		Balance: BalancePolicy{
			OpeningEquity:    0,
			MinimumCash:      250000,
			BaseDepreciation: 150000,
		},
		TaxRate: 0.30,
	}
}

func demoDrivers(horizon int, utilization, groupRate, externalRate float64) *RevenueDrivers {
	drv := &RevenueDrivers{
		ReferenceRevenue: 20000000,
		ConsultantFTE:    make([]float64, horizon),
		Workdays:         make([]float64, horizon),
		Utilization:      make([]float64, horizon),
		GroupDayRate:     make([]float64, horizon),
		ExternalDayRate:  make([]float64, horizon),
		DayRateGrowth:    make([]float64, horizon),
		RevenueGrowth:    make([]float64, horizon),
		GroupShare:       make([]float64, horizon),
		ExternalShare:    make([]float64, horizon),
		GuaranteePct:     make([]float64, horizon),
	}
	guarantees := []float64{0.80, 0.60, 0.60, 0, 0}
	for i := 0; i < horizon; i++ {
		drv.ConsultantFTE[i] = 63
		drv.Workdays[i] = 220
		drv.Utilization[i] = utilization
		drv.GroupDayRate[i] = groupRate
		drv.ExternalDayRate[i] = externalRate
		drv.DayRateGrowth[i] = 0.02
		drv.RevenueGrowth[i] = 0
		drv.GroupShare[i] = 0.85
		drv.ExternalShare[i] = 0.15
		if i < len(guarantees) {
			drv.GuaranteePct[i] = guarantees[i]
		}
	}
	return drv
}
