package worker

import (
	"github.com/spec-kit/shift-planner/internal/service"
)

// StartNotificationWorker registers the event handlers that feed the
// structured log and the Redis activity feed.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
