package worker

import (
	"github.com/spec-kit/travel-support-desk/internal/service"
)

// StartActivityWorker registers the ticket activity log handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
