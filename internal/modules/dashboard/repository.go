package dashboard

import "context"

// Repository defines access to the server-computed dashboard figures.
type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
	SalesOverview(ctx context.Context) ([]SalesPoint, error)
	Chart(ctx context.Context) ([]ChartPoint, error)
	ProductSegments(ctx context.Context) ([]ProductSegment, error)

	// WatchOverview calls fn with the current overview and again each time
	// it is refetched, until stop is called.
	WatchOverview(fn func(*Overview, error)) (stop func())
	WatchSalesOverview(fn func([]SalesPoint, error)) (stop func())
	WatchChart(fn func([]ChartPoint, error)) (stop func())
	WatchProductSegments(fn func([]ProductSegment, error)) (stop func())
}
