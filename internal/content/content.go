// Package content holds the static informational text shown next to the
// generated data. Nothing here depends on a generation run.
package content

// SQLExample is a reference query over a customers table shaped like the
// generated records. It is shown, never executed.
const SQLExample = `
-- Churn rate and revenue at risk by contract type
SELECT
    contract_type,
    COUNT(*)                                              AS total_customers,
    SUM(CASE WHEN churn = 'Yes' THEN 1 ELSE 0 END)        AS churned_customers,
    ROUND(AVG(CASE WHEN churn = 'Yes' THEN 1.0 ELSE 0 END) * 100, 2)
                                                          AS churn_rate_percent,
    ROUND(SUM(CASE WHEN churn = 'Yes' THEN monthly_charges ELSE 0 END) * 12, 2)
                                                          AS annual_revenue_at_risk,
    ROUND(AVG(tenure), 1)                                 AS avg_tenure_months
FROM customers
GROUP BY contract_type
ORDER BY churn_rate_percent DESC;
`

// Note pairs a headline with its supporting detail.
type Note struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Insights are the observations drawn from the churn analysis.
var Insights = []Note{
	{
		Title:  "Contract length drives retention",
		Detail: "Month-to-Month customers churn far more often than customers on One Year or Two Year contracts.",
	},
	{
		Title:  "The first year is the riskiest",
		Detail: "Customers in their first six months churn at the highest rate; risk falls steadily after the first year.",
	},
	{
		Title:  "Electronic check payers leave more",
		Detail: "Customers paying by electronic check show a higher churn rate than those on automatic bank transfer or credit card.",
	},
	{
		Title:  "High bills add risk",
		Detail: "Customers paying more than $80 a month, mostly Fiber Optic subscribers, are more likely to churn.",
	},
}

// Recommendations are the retention actions suggested by the insights.
var Recommendations = []Note{
	{
		Title:  "Incentivize longer contracts",
		Detail: "Offer a discount for moving from Month-to-Month to an annual contract.",
	},
	{
		Title:  "Strengthen onboarding",
		Detail: "Run a structured check-in programme for customers in their first six months.",
	},
	{
		Title:  "Promote automatic payment",
		Detail: "Encourage electronic check payers to switch to bank transfer or credit card autopay.",
	},
	{
		Title:  "Review premium pricing",
		Detail: "Bundle value-added services with Fiber Optic plans to justify higher monthly charges.",
	},
}
