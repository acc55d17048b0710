package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Nombres de mes en español, abreviados y completos.
var (
	shortMonths = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}
	longMonths  = [12]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}
)

var oneHundred = decimal.NewFromInt(100)

// UseCase agrega compras y ventas para el dashboard. Las órdenes REJECTED
// y CANCELLED no cuentan como costo ni como ingreso.
type UseCase struct {
	purchaseRepo repository.PurchaseOrderRepository
	salesRepo    repository.SalesOrderRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso de analítica.
func NewUseCase(purchaseRepo repository.PurchaseOrderRepository, salesRepo repository.SalesOrderRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{
		purchaseRepo: purchaseRepo,
		salesRepo:    salesRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

// Summary calcula el resumen del dashboard: serie mensual de 12 meses
// calendario terminando en la fecha final, top 5 de productos por ingreso,
// economía unitaria y totales globales sobre el rango [start, end].
// Sin fechas la ventana es la de los 12 meses; product_id filtra todo.
// Todos los montos se redondean a 2 decimales.
func (uc *UseCase) Summary(ctx context.Context, q dto.AnalyticsQuery) (*dto.AnalyticsSummaryResponse, error) {
	end := uc.now()
	if q.EndDate != nil {
		end = *q.EndDate
	}
	// Inicio del mes, 11 meses atrás: 12 cubetas calendario incluyendo el mes final.
	seriesFrom := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location()).AddDate(0, -11, 0)
	start := seriesFrom
	if q.StartDate != nil {
		start = *q.StartDate
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	// La serie mensual siempre cubre los 12 meses aunque el rango pedido sea
	// más corto; se consulta la unión de ambas ventanas.
	fetchFrom := start
	if seriesFrom.Before(fetchFrom) {
		fetchFrom = seriesFrom
	}
	purchases, err := uc.purchaseRepo.ListCreatedBetween(ctx, fetchFrom, end)
	if err != nil {
		return nil, err
	}
	sales, err := uc.salesRepo.ListCreatedBetween(ctx, fetchFrom, end)
	if err != nil {
		return nil, err
	}
	totalStock, err := uc.productRepo.TotalStock(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.AnalyticsSummaryResponse{
		TotalStock:  totalStock,
		MonthlyData: make([]dto.MonthlyBucket, 0, 12),
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	purchaseByMonth := make(map[monthKey]decimal.Decimal)
	salesByMonth := make(map[monthKey]decimal.Decimal)

	type productAgg struct {
		name          string
		cost          decimal.Decimal
		revenue       decimal.Decimal
		unitsBought   int
		unitsSold     int
		purchaseGross decimal.Decimal // cantidad × precio unitario, sin IGV ni flete
		salesGross    decimal.Decimal
	}
	byProduct := make(map[string]*productAgg)
	agg := func(productID, productName string) *productAgg {
		a, ok := byProduct[productID]
		if !ok {
			a = &productAgg{name: productName}
			byProduct[productID] = a
		}
		if a.name == "" {
			a.name = productName
		}
		return a
	}

	totalCost := decimal.Zero
	totalRevenue := decimal.Zero

	for _, o := range purchases {
		if o.Status == entity.PurchaseStatusRejected {
			continue
		}
		if q.ProductID != nil && o.ProductID != *q.ProductID {
			continue
		}
		k := monthKey{o.CreatedAt.Year(), o.CreatedAt.Month()}
		purchaseByMonth[k] = purchaseByMonth[k].Add(o.TotalAmount)
		if o.CreatedAt.Before(start) {
			continue // solo cuenta en la serie mensual, no en los totales del rango
		}
		totalCost = totalCost.Add(o.TotalAmount)

		a := agg(o.ProductID, o.ProductName)
		a.cost = a.cost.Add(o.TotalAmount)
		a.unitsBought += o.Quantity
		a.purchaseGross = a.purchaseGross.Add(o.Subtotal())
	}
	for _, o := range sales {
		if o.Status == entity.SalesStatusCancelled {
			continue
		}
		if q.ProductID != nil && o.ProductID != *q.ProductID {
			continue
		}
		k := monthKey{o.CreatedAt.Year(), o.CreatedAt.Month()}
		salesByMonth[k] = salesByMonth[k].Add(o.TotalAmount)
		if o.CreatedAt.Before(start) {
			continue
		}
		totalRevenue = totalRevenue.Add(o.TotalAmount)

		a := agg(o.ProductID, o.ProductName)
		a.revenue = a.revenue.Add(o.TotalAmount)
		a.unitsSold += o.Quantity
		a.salesGross = a.salesGross.Add(decimal.NewFromInt(int64(o.Quantity)).Mul(o.UnitPrice))
	}

	for i := 0; i < 12; i++ {
		bucket := seriesFrom.AddDate(0, i, 0)
		k := monthKey{bucket.Year(), bucket.Month()}
		out.MonthlyData = append(out.MonthlyData, dto.MonthlyBucket{
			Month:        fmt.Sprintf("%s %d", shortMonths[bucket.Month()-1], bucket.Year()),
			PurchaseCost: purchaseByMonth[k].Round(2),
			SalesRevenue: salesByMonth[k].Round(2),
		})
	}

	out.TotalRevenue = totalRevenue.Round(2)
	out.TotalCost = totalCost.Round(2)
	out.GrossProfit = totalRevenue.Sub(totalCost).Round(2)
	if !totalRevenue.IsZero() {
		out.MarginPercentage = totalRevenue.Sub(totalCost).Div(totalRevenue).Mul(oneHundred).Round(2)
	}

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	// Orden estable por ingreso descendente, con ID como desempate.
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := byProduct[ids[i]].revenue, byProduct[ids[j]].revenue
		if !ri.Equal(rj) {
			return ri.GreaterThan(rj)
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		a := byProduct[id]
		if len(out.TopProducts) < 5 {
			margin := decimal.Zero
			if !a.revenue.IsZero() {
				margin = a.revenue.Sub(a.cost).Div(a.revenue).Mul(oneHundred).Round(2)
			}
			out.TopProducts = append(out.TopProducts, dto.TopProduct{
				ProductID:   id,
				ProductName: a.name,
				TotalCost:   a.cost.Round(2),
				TotalSales:  a.revenue.Round(2),
				Margin:      margin,
			})
		}

		avgCost := decimal.Zero
		if a.unitsBought > 0 {
			avgCost = a.purchaseGross.Div(decimal.NewFromInt(int64(a.unitsBought))).Round(2)
		}
		avgSale := decimal.Zero
		if a.unitsSold > 0 {
			avgSale = a.salesGross.Div(decimal.NewFromInt(int64(a.unitsSold))).Round(2)
		}
		out.UnitCosts = append(out.UnitCosts, dto.UnitEconomics{
			ProductID:       id,
			ProductName:     a.name,
			AvgPurchaseCost: avgCost,
			AvgSalePrice:    avgSale,
			UnitProfit:      avgSale.Sub(avgCost).Round(2),
		})
	}

	return out, nil
}

// PriceVariation serie diaria de precios unitarios promedio (compra y venta)
// dentro de un mes calendario. Los días sin actividad se omiten de la serie.
// productID filtra opcionalmente por producto.
func (uc *UseCase) PriceVariation(ctx context.Context, year int, month time.Month, productID *string) (*dto.PriceVariationResponse, error) {
	if month < time.January || month > time.December || year < 2000 {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	purchases, err := uc.purchaseRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sales, err := uc.salesRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type dayAgg struct {
		purchaseSum decimal.Decimal
		purchaseN   int
		saleSum     decimal.Decimal
		saleN       int
	}
	days := make(map[int]*dayAgg)
	day := func(d int) *dayAgg {
		a, ok := days[d]
		if !ok {
			a = &dayAgg{}
			days[d] = a
		}
		return a
	}

	var productName *string
	for _, o := range purchases {
		if o.Status == entity.PurchaseStatusRejected {
			continue
		}
		if productID != nil && o.ProductID != *productID {
			continue
		}
		if productID != nil && productName == nil && o.ProductName != "" {
			name := o.ProductName
			productName = &name
		}
		a := day(o.CreatedAt.Day())
		a.purchaseSum = a.purchaseSum.Add(o.UnitPrice)
		a.purchaseN++
	}
	for _, o := range sales {
		if o.Status == entity.SalesStatusCancelled {
			continue
		}
		if productID != nil && o.ProductID != *productID {
			continue
		}
		if productID != nil && productName == nil && o.ProductName != "" {
			name := o.ProductName
			productName = &name
		}
		a := day(o.CreatedAt.Day())
		a.saleSum = a.saleSum.Add(o.UnitPrice)
		a.saleN++
	}

	out := &dto.PriceVariationResponse{
		MonthLabel:  fmt.Sprintf("%s %d", longMonths[month-1], year),
		ProductName: productName,
		Data:        make([]dto.DailyPricePoint, 0, len(days)),
	}
	for d := 1; d <= 31; d++ {
		a, ok := days[d]
		if !ok {
			continue
		}
		point := dto.DailyPricePoint{Day: fmt.Sprintf("%02d", d)}
		if a.purchaseN > 0 {
			point.AvgPurchasePrice = a.purchaseSum.Div(decimal.NewFromInt(int64(a.purchaseN))).Round(2)
		}
		if a.saleN > 0 {
			point.AvgSalePrice = a.saleSum.Div(decimal.NewFromInt(int64(a.saleN))).Round(2)
		}
		out.Data = append(out.Data, point)
	}
	return out, nil
}
