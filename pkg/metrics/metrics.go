package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SalesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_committed_total",
		Help: "Number of sales committed successfully.",
	})
	SalesVoided = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_voided_total",
		Help: "Number of sales voided.",
	})
	SalesRestored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_restored_total",
		Help: "Number of voided sales restored.",
	})
	StockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_stock_rejections_total",
		Help: "Number of sale operations rejected for insufficient stock.",
	})
)

// Handler exposes the default prometheus registry as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
