package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/go-profile-service/pkg/mailer/templates"
)

type senderMock struct{ mock.Mock }

func (m *senderMock) Send(ctx context.Context, to, subject, text, html string) error {
	return m.Called(ctx, to, subject, text, html).Error(0)
}

func newProcessor(s Sender) *Processor {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewProcessor(s, l)
}

func jobBody(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessor_SendsTemplate(t *testing.T) {
	sender := new(senderMock)
	sender.On("Send", mock.Anything, "jane@example.com", "Your profile was updated", mock.Anything, mock.Anything).Return(nil).Once()

	job := EmailJob{
		To:       "jane@example.com",
		Template: mailtpl.ProfileUpdated,
		Data:     mailtpl.NewProfileUpdatedData(mailtpl.Brand{AppName: "Profiles"}, "Jane", "", []string{"bio"}),
	}
	assert.Equal(t, Ack, newProcessor(sender).Handle(context.Background(), jobBody(t, job)))
	sender.AssertExpectations(t)
}

func TestProcessor_Literal(t *testing.T) {
	sender := new(senderMock)
	sender.On("Send", mock.Anything, "a@b.c", "hi", "body", "").Return(nil).Once()

	out := newProcessor(sender).Handle(context.Background(), jobBody(t, EmailJob{To: "a@b.c", Subject: "hi", Text: "body"}))
	assert.Equal(t, Ack, out)
	sender.AssertExpectations(t)
}

func TestProcessor_RequeuesOnSendFailure(t *testing.T) {
	sender := new(senderMock)
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout"))

	out := newProcessor(sender).Handle(context.Background(), jobBody(t, EmailJob{To: "a@b.c", Template: mailtpl.Welcome}))
	assert.Equal(t, Requeue, out)
}

func TestProcessor_DropsMalformed(t *testing.T) {
	sender := new(senderMock)
	p := newProcessor(sender)

	assert.Equal(t, Drop, p.Handle(context.Background(), []byte("{not json")))
	assert.Equal(t, Drop, p.Handle(context.Background(), jobBody(t, EmailJob{Template: mailtpl.Welcome})))
	assert.Equal(t, Drop, p.Handle(context.Background(), jobBody(t, EmailJob{To: "a@b.c", Template: "login_otp"})))
	assert.Equal(t, Drop, p.Handle(context.Background(), jobBody(t, EmailJob{To: "a@b.c"})))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPrepare_FillsRecipient(t *testing.T) {
	job := &EmailJob{To: " jane@example.com ", Template: mailtpl.Welcome}
	_, text, _, err := Prepare(job)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", job.Data["Email"])
	assert.Contains(t, text, "jane@example.com")
}
