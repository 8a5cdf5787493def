package user

import (
	"fmt"
	"net/mail"

	"github.com/trezcool/saynoretake/core"
)

// MailNotifier mails the latest grade report of a student to a fixed address every time they add a grade.
type MailNotifier struct {
	to      mail.Address
	mailSvc core.EmailService
}

var _ Observer = (*MailNotifier)(nil)

func NewMailNotifier(to mail.Address, mailSvc core.EmailService) *MailNotifier {
	return &MailNotifier{to: to, mailSvc: mailSvc}
}

func (n *MailNotifier) Update(s *Student) {
	n.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{n.to},
		Subject: fmt.Sprintf("New grade for %s", s.Name()),
		Body:    s.GenerateReport(),
	})
}
