package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/queue"
	"github.com/iliyamo/portfolio/internal/repository"
	"github.com/iliyamo/portfolio/internal/validate"
)

// MessageStore persists contact submissions.
type MessageStore interface {
	Create(ctx context.Context, in model.ContactInput) (model.ContactMessage, error)
}

const (
	publishTimeout = 3 * time.Second
	previewLen     = 140
)

// ContactService stores contact form submissions and announces them on the
// broker.
type ContactService struct {
	messages  MessageStore
	publisher queue.Publisher
	validator *validate.Validator
	log       *slog.Logger
}

func NewContactService(messages MessageStore, publisher queue.Publisher, v *validate.Validator, log *slog.Logger) *ContactService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ContactService{messages: messages, publisher: publisher, validator: v, log: log}
}

// Submit validates and stores a message. Publishing the event is best
// effort: a broker failure is logged and the stored message still counts.
func (s *ContactService) Submit(ctx context.Context, in model.ContactInput) (model.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = repository.NormalizeEmail(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Subject != nil {
		subj := strings.TrimSpace(*in.Subject)
		in.Subject = &subj
	}
	if err := s.validator.Validate(in); err != nil {
		return model.ContactMessage{}, err
	}

	msg, err := s.messages.Create(ctx, in)
	if err != nil {
		return model.ContactMessage{}, err
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishContactReceived(pctx, contactEvent(msg)); err != nil {
		s.log.Warn("contact event not published", slog.Uint64("message_id", msg.ID), slog.Any("err", err))
	}
	return msg, nil
}

func contactEvent(m model.ContactMessage) queue.ContactReceivedEvent {
	ev := queue.ContactReceivedEvent{
		MessageID:  m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Preview:    m.Message,
		ReceivedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.Subject != nil {
		ev.Subject = *m.Subject
	}
	if r := []rune(ev.Preview); len(r) > previewLen {
		ev.Preview = string(r[:previewLen]) + "..."
	}
	return ev
}
