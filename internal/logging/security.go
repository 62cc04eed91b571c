// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger tags events with a stable event key for downstream SIEM
// filtering.
type SecurityLogger struct {
	l *zap.Logger
}

func NewSecurityLogger(base *zap.Logger) *SecurityLogger {
	return &SecurityLogger{
		l: base.With(zap.String("log_type", "security")),
	}
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system.startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system.shutdown"))
}

func (s *SecurityLogger) AuthnFailure(subject string) {
	s.l.Warn("authentication failure",
		zap.String("event", "authn.failure"),
		zap.String("subject", subject),
	)
}

func (s *SecurityLogger) AuthzFailure(subject, policy string) {
	s.l.Warn("authorization failure",
		zap.String("event", "authz.failure"),
		zap.String("subject", subject),
		zap.String("policy", policy),
	)
}

func (s *SecurityLogger) RateLimitExceeded(subject, class string) {
	s.l.Warn("rate limit exceeded",
		zap.String("event", "ratelimit.exceeded"),
		zap.String("subject", subject),
		zap.String("class", class),
	)
}
