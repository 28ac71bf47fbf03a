package notification

import (
	"context"
	"log/slog"

	"github.com/delordemm1/learnhub-api/internal/notification/templates"
)

// --- Constants for Type Safety ---
type Channel string
type Priority string

const (
	ChannelEmail Channel = "email"
)

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// --- Data Structures ---

// Content holds the specific message data for each channel.
type Content struct {
	EmailSubject  string
	EmailHTMLBody string
	EmailTextBody string
}

// Notification is the universal object used to send any notification.
type Notification struct {
	Recipient string // An email address
	Channels  []Channel
	Priority  Priority
	Content   Content
}

// --- Internal Sender Interfaces ---
// These are not exposed outside the package.
type emailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// --- Public Service ---

// Service is the main interface for the notification system. Render
// materializes a scenario template; Send dispatches a notification to its
// channels.
type Service interface {
	Send(ctx context.Context, n Notification) error
	Render(ctx context.Context, id string, data any) (templates.Rendered, error)
}

// service is the concrete implementation.
type service struct {
	log         *slog.Logger
	engine      *templates.Engine
	emailSender emailSender
}

// NewService creates a new notification service.
func NewService(log *slog.Logger, engine *templates.Engine, emailSender emailSender) Service {
	return &service{
		log:         log,
		engine:      engine,
		emailSender: emailSender,
	}
}

// Render renders a scenario template by ID.
func (s *service) Render(ctx context.Context, id string, data any) (templates.Rendered, error) {
	return s.engine.RenderAny(ctx, id, data)
}

// Send dispatches the notification to each requested channel. Channel sends
// are launched in goroutines; failures are logged for monitoring since there
// is no caller left to report them to.
func (s *service) Send(ctx context.Context, n Notification) error {
	for _, channel := range n.Channels {
		go func(ch Channel) {
			var err error
			switch ch {
			case ChannelEmail:
				s.log.Info("dispatching email notification", "recipient", n.Recipient)
				err = s.emailSender.Send(ctx, n.Recipient, n.Content.EmailSubject, n.Content.EmailHTMLBody, n.Content.EmailTextBody)
			default:
				s.log.Warn("unsupported notification channel", "channel", ch)
			}

			if err != nil {
				s.log.Error("failed to send notification", "channel", ch, "recipient", n.Recipient, "error", err)
			}
		}(channel)
	}
	return nil // Return immediately
}

// SendTemplate renders a typed template scenario and dispatches the result.
// The Handle ties the template ID to its data type at compile time.
func SendTemplate[T any](ctx context.Context, svc Service, h templates.Handle[T], recipient string, channels []Channel, priority Priority, data T) error {
	rendered, err := svc.Render(ctx, h.ID(), data)
	if err != nil {
		return err
	}
	return svc.Send(ctx, Notification{
		Recipient: recipient,
		Channels:  channels,
		Priority:  priority,
		Content: Content{
			EmailSubject:  rendered.Subject,
			EmailHTMLBody: rendered.EmailHTML,
			EmailTextBody: rendered.EmailText,
		},
	})
}
