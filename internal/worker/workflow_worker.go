package worker

import (
	"github.com/justjoin/justjoin-backend/internal/service"
)

// StartWorkflowWorker registers the workflow notification handlers on
// the event dispatcher.
func StartWorkflowWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
