package notify

import (
	"context"
	"time"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/pkg/mailer"
	mailtpl "github.com/oksasatya/go-profile-service/pkg/mailer/templates"
)

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier queues template email jobs for the email worker.
type EmailNotifier struct {
	pub   Publisher
	brand mailtpl.Brand
	now   func() time.Time
}

func NewEmailNotifier(pub Publisher, brand mailtpl.Brand) *EmailNotifier {
	return &EmailNotifier{pub: pub, brand: brand, now: time.Now}
}

func (n *EmailNotifier) Welcome(ctx context.Context, u *entity.User) error {
	return n.pub.PublishJSON(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.brand, u.FullName(), u.Email, mailtpl.WithTime(n.now())),
	})
}

func (n *EmailNotifier) ProfileUpdated(ctx context.Context, u *entity.User, changed []string) error {
	return n.pub.PublishJSON(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.ProfileUpdated,
		Data:     mailtpl.NewProfileUpdatedData(n.brand, u.FullName(), u.Email, changed, mailtpl.WithTime(n.now())),
	})
}
