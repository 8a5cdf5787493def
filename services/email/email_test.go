package emailsvc

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"testing"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/user"
)

var adviser = mail.Address{Name: "Nursat", Address: "nursat@test.kz"}

func testConfig() *core.Config {
	conf := new(core.Config)
	conf.AppName = "SayNoToRetake"
	conf.Email.DefaultFrom = "SayNoToRetake <noreply@test.kz>"
	conf.Email.SendgridApiKey = "SG.test"
	return conf
}

func Test_consoleService_SendMessages(t *testing.T) {
	svc := Synchronous(NewConsoleService(testConfig(), nil))

	tests := []struct {
		name     string
		msg      *core.EmailMessage
		wantSent bool
	}{
		{name: "sent", msg: &core.EmailMessage{To: []mail.Address{adviser}, Subject: "New grade for Kamila", Body: "report"}, wantSent: true},
		{name: "no recipients", msg: &core.EmailMessage{Subject: "New grade for Kamila", Body: "report"}},
		{name: "no content", msg: &core.EmailMessage{To: []mail.Address{adviser}, Subject: "New grade for Kamila"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetSentMessages()
			svc.SendMessages(tt.msg)
			if tt.wantSent {
				require.Len(t, SentMessages, 1)
				assert.Equal(t, *tt.msg, SentMessages[0])
			} else {
				assert.Empty(t, SentMessages)
			}
		})
	}
}

func Test_sendgridService_prepare(t *testing.T) {
	svc := NewSendgridService(testConfig(), user.NewTestLogger()).(*sendgridService)
	req := svc.request(core.EmailMessage{
		To:      []mail.Address{adviser},
		Cc:      []mail.Address{{Address: "dean@test.kz"}},
		Subject: "New grade for Kamila",
		Body:    "report",
	})

	assert.Equal(t, rest.Post, req.Method)
	assert.Equal(t, "https://api.sendgrid.com/v3/mail/send", req.BaseURL)
	assert.Equal(t, "Bearer SG.test", req.Headers["Authorization"])

	var body struct {
		From struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			To      []map[string]string `json:"to"`
			Cc      []map[string]string `json:"cc"`
			Subject string              `json:"subject"`
		} `json:"personalizations"`
		Content []map[string]string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "SayNoToRetake", body.From.Name)
	assert.Equal(t, "noreply@test.kz", body.From.Email)
	require.Len(t, body.Personalizations, 1)
	assert.Equal(t, "[SayNoToRetake] New grade for Kamila", body.Personalizations[0].Subject)
	assert.Equal(t, "nursat@test.kz", body.Personalizations[0].To[0]["email"])
	assert.Equal(t, "dean@test.kz", body.Personalizations[0].Cc[0]["email"])
	assert.Equal(t, []map[string]string{{"type": "text/plain", "value": "report"}}, body.Content)
}

func Test_sendgridService_send(t *testing.T) {
	defer func(orig func(rest.Request) (*rest.Response, error)) { sendgridAPIFunc = orig }(sendgridAPIFunc)

	tests := []struct {
		name       string
		res        *rest.Response
		err        error
		wantErrors int
	}{
		{name: "accepted", res: &rest.Response{StatusCode: http.StatusAccepted}},
		{name: "rejected", res: &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}, wantErrors: 1},
		{name: "network error", err: errors.New("connection refused"), wantErrors: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := user.NewTestLogger()
			svc := NewSendgridService(testConfig(), logger).(*sendgridService)

			var calls int
			sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
				calls++
				return tt.res, tt.err
			}
			svc.send(core.EmailMessage{To: []mail.Address{adviser}, Subject: "New grade for Kamila", Body: "report"})

			assert.Equal(t, 1, calls)
			assert.Len(t, logger.Messages("ERROR"), tt.wantErrors)
		})
	}
}

type recordingService struct {
	sent int
}

func (svc *recordingService) SendMessages(messages ...*core.EmailMessage) { svc.sent += len(messages) }

func TestSynchronous(t *testing.T) {
	defer func(orig func(rest.Request) (*rest.Response, error)) { sendgridAPIFunc = orig }(sendgridAPIFunc)

	var calls int
	sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
		calls++
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}

	svc := Synchronous(NewSendgridService(testConfig(), user.NewTestLogger()))
	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{adviser}, Subject: "New grade for Kamila", Body: "report"},
		&core.EmailMessage{To: []mail.Address{adviser}, Subject: "New grade for Akbota"}, // no content
		&core.EmailMessage{To: []mail.Address{adviser}, Subject: "New grade for Nurkanat", Body: "report"},
	)
	assert.Equal(t, 2, calls)

	other := new(recordingService)
	assert.Same(t, other, Synchronous(other))
}
