package models

// DashboardStats is the payload of GET /api/orders/dashboard-stats.
type DashboardStats struct {
	NewOrders    NewOrdersStat    `json:"newOrders"`
	TotalSales   TotalSalesStat   `json:"totalSales"`
	TotalRevenue TotalRevenueStat `json:"totalRevenue"`
	TopProducts  []TopProduct     `json:"topProducts"`
}

type NewOrdersStat struct {
	TodayOrders     int     `json:"todayOrders"`
	TotalPercentage float64 `json:"totalPercentage"`
}

type TotalSalesStat struct {
	TotalSales      float64 `json:"totalSales"`
	TotalPercentage float64 `json:"totalPercentage"`
}

type TotalRevenueStat struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalPercentage float64 `json:"totalPercentage"`
}

type TopProduct struct {
	Product   Product `json:"product"`
	TotalSold int     `json:"totalSold"`
}

// ChartPoints returns the three dashboard bars: today's orders, sales in
// thousands and revenue in thousands.
func (s DashboardStats) ChartPoints() [3]float64 {
	return [3]float64{
		float64(s.NewOrders.TodayOrders),
		s.TotalSales.TotalSales / 1000,
		s.TotalRevenue.TotalRevenue / 1000,
	}
}
