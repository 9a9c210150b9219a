package admin

import (
	"github.com/shopspring/decimal"
)

// ListUsersFilter narrows the account listing. Search matches business
// name or email, case-insensitively.
type ListUsersFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PlatformStats is the marketplace-wide dashboard summary. TotalSales
// excludes cancelled orders.
type PlatformStats struct {
	TotalUsers     int64           `json:"total_users"`
	TotalSellers   int64           `json:"total_sellers"`
	TotalRetailers int64           `json:"total_retailers"`
	TotalAdmins    int64           `json:"total_admins"`
	TotalProducts  int64           `json:"total_products"`
	ActiveProducts int64           `json:"active_products"`
	TotalOrders    int64           `json:"total_orders"`
	TotalSales     decimal.Decimal `json:"total_sales"`
}
