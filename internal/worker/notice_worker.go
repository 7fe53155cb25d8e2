package worker

import (
	"github.com/spec-kit/supervisor-console/internal/service"
)

// StartNoticeWorker registers notice handlers on the dispatcher.
func StartNoticeWorker(noticeService *service.NoticeService) {
	if noticeService == nil {
		return
	}
	noticeService.RegisterHandlers()
}
