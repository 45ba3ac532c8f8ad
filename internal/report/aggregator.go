// Package report builds admin sales summaries from committed orders.
package report

import (
	"context"
	"database/sql"
)

type ProductSales struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

// SalesReport aggregates every order_items row (one row = one unit sold).
// Revenue is estimated from the product's current price.
type SalesReport struct {
	BestSellers      []ProductSales `json:"best_sellers"`
	TotalUsers       int            `json:"total_users"`
	TotalProducts    int            `json:"total_products"`
	TotalOrders      int            `json:"total_orders"`
	EstimatedRevenue int64          `json:"estimated_revenue"`
}

type Aggregator struct {
	db *sql.DB
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{db: db}
}

// BuildSalesReport never fails on an empty store; it returns an empty
// frequency table and zero totals. Items whose product was deleted are left
// out of the ranking and the revenue estimate.
func (a *Aggregator) BuildSalesReport(ctx context.Context) (*SalesReport, error) {
	report := &SalesReport{BestSellers: []ProductSales{}}

	rows, err := a.db.QueryContext(ctx, `
		SELECT p.name, COUNT(*) AS units
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.name
		ORDER BY units DESC, p.name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var sales ProductSales
		if err := rows.Scan(&sales.Name, &sales.Units); err != nil {
			return nil, err
		}
		report.BestSellers = append(report.BestSellers, sales)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = a.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(p.price), 0)
			 FROM order_items oi
			 JOIN products p ON p.id = oi.product_id)
	`).Scan(&report.TotalUsers, &report.TotalProducts, &report.TotalOrders, &report.EstimatedRevenue)
	if err != nil {
		return nil, err
	}

	return report, nil
}
