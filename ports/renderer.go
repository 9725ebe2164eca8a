package ports

import (
	"trendtruth/domain/dashboard"
)

// DashboardRenderer is the rendering boundary: it receives a complete
// view-model and is responsible for making it visible. The controller calls
// it after every settled refresh (success or failure) and never partially
// updates a previous paint.
type DashboardRenderer interface {
	Render(vm dashboard.ViewModel) error
}
