package dashboard

import (
	"context"

	"github.com/georgemunganga/printa-dashboard/internal/endpoints"
	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

type restRepo struct{ client *rest.Client }

// NewRESTRepository creates a dashboard repository over the upstream API.
func NewRESTRepository(client *rest.Client) Repository { return &restRepo{client: client} }

func (r *restRepo) Overview(ctx context.Context) (*Overview, error) {
	o := &Overview{}
	if err := r.client.Query(ctx, endpoints.GetDashboard, rest.NoArg, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *restRepo) SalesOverview(ctx context.Context) ([]SalesPoint, error) {
	var points []SalesPoint
	if err := r.client.Query(ctx, endpoints.GetSalesOverview, rest.NoArg, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *restRepo) Chart(ctx context.Context) ([]ChartPoint, error) {
	var points []ChartPoint
	if err := r.client.Query(ctx, endpoints.GetChart, rest.NoArg, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *restRepo) ProductSegments(ctx context.Context) ([]ProductSegment, error) {
	var segments []ProductSegment
	if err := r.client.Query(ctx, endpoints.GetProductSegments, rest.NoArg, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// watch subscribes to q and decodes every result into a fresh T.
func watch[T any](client *rest.Client, q rest.Query, fn func(T, error)) func() {
	sub := client.Subscribe(q, rest.NoArg, func(res rest.Result) {
		var v T
		if res.Err != nil {
			fn(v, res.Err)
			return
		}
		fn(v, res.Decode(&v))
	})
	return sub.Close
}

func (r *restRepo) WatchOverview(fn func(*Overview, error)) func() {
	return watch(r.client, endpoints.GetDashboard, func(o Overview, err error) {
		if err != nil {
			fn(nil, err)
			return
		}
		fn(&o, nil)
	})
}

func (r *restRepo) WatchSalesOverview(fn func([]SalesPoint, error)) func() {
	return watch(r.client, endpoints.GetSalesOverview, fn)
}

func (r *restRepo) WatchChart(fn func([]ChartPoint, error)) func() {
	return watch(r.client, endpoints.GetChart, fn)
}

func (r *restRepo) WatchProductSegments(fn func([]ProductSegment, error)) func() {
	return watch(r.client, endpoints.GetProductSegments, fn)
}
