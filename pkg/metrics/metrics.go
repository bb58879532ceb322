package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas Prometheus de la aplicación. Se registran en el registry por
// defecto y se exponen en GET /metrics.
var (
	// MovementsTotal movimientos del ledger confirmados, por tipo
	// (IN, OUT, ASSEMBLY_IN, ASSEMBLY_OUT).
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockledger",
		Name:      "stock_movements_total",
		Help:      "Movimientos de inventario confirmados, por tipo.",
	}, []string{"type"})

	// SalesTotal ventas confirmadas.
	SalesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stockledger",
		Name:      "sales_total",
		Help:      "Ventas confirmadas.",
	})

	// InsufficientStockTotal operaciones rechazadas por falta de stock.
	InsufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stockledger",
		Name:      "insufficient_stock_total",
		Help:      "Operaciones rechazadas por stock insuficiente.",
	})
)

// Handler expone el endpoint de scrape de Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
