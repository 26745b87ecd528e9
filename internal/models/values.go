package models

// CalculateValue is the presentation-ready result of one calculation.
// All fields are formatted in the base currency.
type CalculateValue struct {
	GrossIncome         string `json:"gross_income"`
	GrossIncomePerMonth string `json:"gross_income_per_month"`
	NetIncome           string `json:"net_income"`
	NetIncomePerMonth   string `json:"net_income_per_month"`
	FinalPercentage     string `json:"final_percentage"`
}

// Country is an entry of the published country list
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}
