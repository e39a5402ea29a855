package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("printa.dashboard")

// DefaultSegments is the number of product segments shown on the dashboard.
const DefaultSegments = 4

// Service defines the dashboard views. The Watch methods keep a view live:
// fn is called with the current figures and again after every mutation that
// changes them, until stop is called.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	SalesOverview(ctx context.Context) ([]SalesPoint, error)
	Chart(ctx context.Context) ([]ChartPoint, error)
	// TopSegments returns the limit most frequent product segments.
	TopSegments(ctx context.Context, limit int) ([]ProductSegment, error)

	WatchOverview(fn func(*Overview, error)) (stop func())
	WatchSalesOverview(fn func([]SalesPoint, error)) (stop func())
	WatchChart(fn func([]ChartPoint, error)) (stop func())
	WatchProductSegments(fn func([]ProductSegment, error)) (stop func())
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	o, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard overview: %w", err)
	}
	return o, nil
}

func (s *service) SalesOverview(ctx context.Context) ([]SalesPoint, error) {
	points, err := s.repo.SalesOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales overview: %w", err)
	}
	return points, nil
}

func (s *service) Chart(ctx context.Context) ([]ChartPoint, error) {
	points, err := s.repo.Chart(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard chart: %w", err)
	}
	return points, nil
}

func (s *service) TopSegments(ctx context.Context, limit int) ([]ProductSegment, error) {
	segments, err := s.repo.ProductSegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("product segments: %w", err)
	}
	if limit <= 0 {
		limit = DefaultSegments
	}
	top := append([]ProductSegment(nil), segments...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Frequency > top[j].Frequency })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (s *service) WatchOverview(fn func(*Overview, error)) func() {
	return s.repo.WatchOverview(fn)
}

func (s *service) WatchSalesOverview(fn func([]SalesPoint, error)) func() {
	return s.repo.WatchSalesOverview(fn)
}

func (s *service) WatchChart(fn func([]ChartPoint, error)) func() {
	return s.repo.WatchChart(fn)
}

func (s *service) WatchProductSegments(fn func([]ProductSegment, error)) func() {
	return s.repo.WatchProductSegments(fn)
}
