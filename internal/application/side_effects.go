package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/pkg/helpers"
)

const sideEffectTimeout = 3 * time.Second

// sideEffects runs the best-effort work that follows a successful write.
// Failures are logged and never returned to the caller.
type sideEffects struct {
	index    ProfileIndexer
	notifier Notifier
	logger   logrus.FieldLogger
}

func (e sideEffects) reindex(ctx context.Context, u *entity.User) {
	if e.index == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := e.index.Index(c, u); err != nil {
		helpers.LogWarn(e.logger, "profile index failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func (e sideEffects) welcome(ctx context.Context, u *entity.User) {
	if e.notifier == nil || !u.Settings.EmailNotifications {
		return
	}
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := e.notifier.Welcome(c, u); err != nil {
		helpers.LogWarn(e.logger, "welcome email enqueue failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func (e sideEffects) profileUpdated(ctx context.Context, u *entity.User, changed []string) {
	if e.notifier == nil || !u.Settings.EmailNotifications {
		return
	}
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := e.notifier.ProfileUpdated(c, u, changed); err != nil {
		helpers.LogWarn(e.logger, "profile updated email enqueue failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func loggerOrDefault(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}
