package emailsvc

import (
	"github.com/trezcool/saynoretake/core"
)

type messageSender interface {
	sendMessage(msg *core.EmailMessage)
}

type syncService struct {
	sender messageSender
}

var _ core.EmailService = (*syncService)(nil)

// Synchronous wraps one of this package's services so that SendMessages returns once every message is handled.
// Other services are returned as is.
func Synchronous(svc core.EmailService) core.EmailService {
	if sender, ok := svc.(messageSender); ok {
		return &syncService{sender: sender}
	}
	return svc
}

func (svc *syncService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		svc.sender.sendMessage(msg)
	}
}
