package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/go-profile-service/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota // sent
	Requeue                // transient send failure
	Drop                   // malformed job; retrying cannot help
)

var errEmptyJob = errors.New("email job has no recipient or body")

// Processor turns queued EmailJob payloads into sent emails.
type Processor struct {
	sender  Sender
	logger  logrus.FieldLogger
	timeout time.Duration
}

func NewProcessor(sender Sender, logger logrus.FieldLogger) *Processor {
	return &Processor{sender: sender, logger: logger, timeout: 15 * time.Second}
}

// Handle decodes, renders and sends one job.
func (p *Processor) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		p.logger.WithError(err).Warn("bad email job")
		return Drop
	}
	subject, text, html, err := Prepare(&job)
	if err != nil {
		p.logger.WithError(err).WithField("template", job.Template).Warn("email job dropped")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.sender.Send(c, job.To, subject, text, html); err != nil {
		p.logger.WithError(err).WithField("to", job.To).Error("send failed")
		return Requeue
	}
	p.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return Ack
}

// Prepare fills the recipient into the template data and renders the job.
func Prepare(job *EmailJob) (subject, text, html string, err error) {
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return "", "", "", errEmptyJob
	}
	if job.Template == "" {
		if job.Text == "" && job.HTML == "" {
			return "", "", "", errEmptyJob
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	if !mailtpl.Known(job.Template) {
		return "", "", "", fmt.Errorf("unknown template %q", job.Template)
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	return mailtpl.Render(job.Template, job.Data)
}
