// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/store/audit"
	"github.com/wekezagroup/wekeza/internal/app/system/ratelimit"
)

// Logger writes audit events to both MongoDB (via audit.Store) and the
// structured log. Mutations call it after they have committed; a failed
// audit write is logged and swallowed so it never fails the request.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
}

func New(store *audit.Store, zapLog *zap.Logger) *Logger {
	return &Logger{store: store, zapLog: zapLog}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func (l *Logger) record(ctx context.Context, event audit.Event) {
	l.logToZap(event)
	if err := l.store.Log(ctx, event); err != nil {
		l.zapLog.Error("audit event not persisted",
			zap.String("event_type", event.EventType),
			zap.Error(err))
	}
}

// Identity records a successful provisioning event from the identity
// provider. userID may be nil when the affected row no longer exists.
func (l *Logger) Identity(ctx context.Context, eventType string, userID *primitive.ObjectID, details map[string]string) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryIdentity,
		EventType: eventType,
		UserID:    userID,
		Success:   true,
		Details:   details,
	})
}

// IdentityFailure records a rejected or failed provisioning delivery.
func (l *Logger) IdentityFailure(ctx context.Context, r *http.Request, eventType, reason string) {
	l.record(ctx, audit.Event{
		Category:      audit.CategoryIdentity,
		EventType:     eventType,
		IP:            ratelimit.ClientIP(r),
		Success:       false,
		FailureReason: reason,
	})
}

// Admin records a privileged action performed by a signed-in member.
func (l *Logger) Admin(ctx context.Context, r *http.Request, eventType string, actorID, userID *primitive.ObjectID, details map[string]string) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		UserID:    userID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
		Details:   details,
	})
}
