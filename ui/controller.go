package ui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"trendtruth/domain/core"
	"trendtruth/domain/dashboard"
	"trendtruth/domain/trend"
	"trendtruth/ports"
)

// DashboardController owns the dashboard's presentation state: the selected
// category, the last settled view-model, and whether a refresh is mid-flight.
// All mutation goes through Refresh and SelectCategory; readers get a copy.
type DashboardController struct {
	fetcher  ports.BatchFetcher
	renderer ports.DashboardRenderer
	limit    int

	mu       sync.Mutex
	inFlight bool
	selected string
	vm       dashboard.ViewModel
}

// NewDashboardController creates a controller starting on the "all" view.
func NewDashboardController(fetcher ports.BatchFetcher, renderer ports.DashboardRenderer, limit int) *DashboardController {
	c := &DashboardController{
		fetcher:  fetcher,
		renderer: renderer,
		limit:    limit,
		selected: trend.CategoryAll,
	}
	c.vm = dashboard.ViewModel{
		SelectedCategory: c.selected,
		StatusLine:       fmt.Sprintf("Analyzing %s trends...", trend.CategoryLabel(c.selected)),
	}
	return c
}

// ViewModel returns the last settled view-model.
func (c *DashboardController) ViewModel() dashboard.ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vm
}

// SelectedCategory returns the current category selection.
func (c *DashboardController) SelectedCategory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SelectCategory switches the dashboard to a category and refreshes
// immediately. Unknown categories fall back to the "all" view.
func (c *DashboardController) SelectCategory(ctx context.Context, category string) error {
	c.mu.Lock()
	c.selected = trend.NormalizeCategory(category)
	c.mu.Unlock()
	return c.Refresh(ctx, false)
}

// Refresh fetches a fresh batch for the current selection and re-renders.
// A refresh already in flight is never cancelled: concurrent callers get
// core.ErrRefreshInFlight and the running fetch settles on its own. On
// failure the previous view-model's content is kept; only the status line
// changes.
func (c *DashboardController) Refresh(ctx context.Context, force bool) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return core.ErrRefreshInFlight
	}
	c.inFlight = true
	category := c.selected
	c.vm.StatusLine = fmt.Sprintf("Analyzing %s trends...", trend.CategoryLabel(category))
	c.vm.StatusIsError = false
	c.mu.Unlock()

	c.render()

	batch, err := c.fetcher.FetchBatch(ctx, ports.BatchRequest{
		Limit:        c.limit,
		Category:     category,
		ForceRefresh: force,
	})

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.vm.StatusLine = fmt.Sprintf("Failed to load analysis: %s", err.Error())
		c.vm.StatusIsError = true
		c.mu.Unlock()
		c.render()
		return err
	}

	vm := dashboard.BuildViewModel(batch, category)
	vm.StatusLine = fmt.Sprintf("Updated at %s.", vm.UpdatedAt)
	c.vm = vm
	c.mu.Unlock()

	c.render()
	return nil
}

// Run refreshes once immediately, then on every tick until ctx is done.
// Ticks that land while a refresh is still in flight are dropped.
func (c *DashboardController) Run(ctx context.Context, interval time.Duration) {
	if err := c.Refresh(ctx, false); err != nil {
		log.Printf("[DashboardController] Initial refresh failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := c.Refresh(ctx, false)
			if err != nil && err != core.ErrRefreshInFlight {
				log.Printf("[DashboardController] Refresh failed: %v", err)
			}
		}
	}
}

func (c *DashboardController) render() {
	if c.renderer == nil {
		return
	}
	if err := c.renderer.Render(c.ViewModel()); err != nil {
		log.Printf("[DashboardController] Render failed: %v", err)
	}
}
