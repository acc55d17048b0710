package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsQuery rango de fechas y filtro de producto para el dashboard.
// Todos los campos son opcionales: sin fechas se asume la ventana de los
// últimos 12 meses calendario terminando hoy.
type AnalyticsQuery struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	ProductID *string    `json:"product_id"`
}

// MonthlyBucket costo de compras vs ingresos de ventas de un mes calendario.
type MonthlyBucket struct {
	Month        string          `json:"month"` // "Ene 2026"
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SalesRevenue decimal.Decimal `json:"sales_revenue"`
}

// TopProduct costo/ingreso/margen por producto.
type TopProduct struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	Margin      decimal.Decimal `json:"margin"` // %, 2 decimales
}

// UnitEconomics economía unitaria por producto.
type UnitEconomics struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	AvgPurchaseCost decimal.Decimal `json:"avg_purchase_cost"`
	AvgSalePrice    decimal.Decimal `json:"avg_sale_price"`
	UnitProfit      decimal.Decimal `json:"unit_profit"` // avg_sale - avg_purchase
}

// AnalyticsSummaryResponse resumen del dashboard para un rango de fechas.
type AnalyticsSummaryResponse struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"`
	TotalStock       int             `json:"total_stock"`
	MonthlyData      []MonthlyBucket `json:"monthly_data"`
	TopProducts      []TopProduct    `json:"top_products"`
	UnitCosts        []UnitEconomics `json:"unit_costs"`
}

// DailyPricePoint precio unitario promedio de compra y venta de un día.
type DailyPricePoint struct {
	Day              string          `json:"day"` // "01".."31"
	AvgPurchasePrice decimal.Decimal `json:"avg_purchase_price"`
	AvgSalePrice     decimal.Decimal `json:"avg_sale_price"`
}

// PriceVariationResponse variación diaria de precios dentro de un mes calendario.
type PriceVariationResponse struct {
	MonthLabel  string            `json:"month_label"` // "Enero 2026"
	ProductName *string           `json:"product_name,omitempty"`
	Data        []DailyPricePoint `json:"data"`
}
