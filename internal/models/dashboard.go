package models

// MonthlyIncome is one month's paid-rent bucket in the trailing six-month
// series. Month reads like "March '26".
type MonthlyIncome struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// DashboardSummary is the consolidated landlord dashboard snapshot.
type DashboardSummary struct {
	PropertiesCount       int                  `json:"properties_count"`
	TenantsCount          int                  `json:"tenants_count"`
	UpcomingPaymentsTotal float64              `json:"upcoming_payments_total"`
	OverduePaymentsTotal  float64              `json:"overdue_payments_total"`
	Properties            []PropertyWithUnits  `json:"properties"`
	TenantActivity        []PaymentWithDetails `json:"tenant_activity"`
	MonthlyIncome         []MonthlyIncome      `json:"monthly_income"`
}
