package dashboard

import "github.com/georgemunganga/printa-dashboard/internal/money"

// Overview holds the headline figures of the admin dashboard.
type Overview struct {
	TotalSales       money.Amount `json:"totalSales"`
	TotalProfit      money.Amount `json:"totalProfit"`
	TotalOpenBalance money.Amount `json:"totalOpenBalance"`
	TotalOrders      int          `json:"totalOrders"`
	TotalCustomers   int          `json:"totalCustomers"`
	TotalProspects   int          `json:"totalProspects"`
}

// SalesPoint is the sales of one period.
type SalesPoint struct {
	Period string       `json:"period"`
	Sales  money.Amount `json:"totalSales"`
	Profit money.Amount `json:"totalProfit"`
	Orders int          `json:"orderCount"`
}

// ChartPoint is one bar of the dashboard chart.
type ChartPoint struct {
	Label string       `json:"label"`
	Value money.Amount `json:"value"`
}

// ProductSegment is a set of products often bought together and how many
// orders contained it.
type ProductSegment struct {
	Combination []string `json:"combination"`
	Frequency   int      `json:"frequency"`
}
