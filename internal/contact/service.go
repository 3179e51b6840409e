package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/redmonkez12/advisory-cms/internal/email"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

var (
	ErrFieldsRequired = errors.New("all fields are required")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrInvalidStatus  = errors.New("invalid status")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type Store interface {
	Create(ctx context.Context, c *Contact) (*Contact, error)
	List(ctx context.Context, f Filter) ([]*Contact, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	Update(ctx context.Context, c *Contact) (*Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}

// Notifier delivers the admin notification and the sender acknowledgement
type Notifier interface {
	SendContactNotification(ctx context.Context, c email.Contact) error
	SendAutoReply(ctx context.Context, c email.Contact) error
}

type Service struct {
	store    Store
	notifier Notifier
	logger   *logging.Logger
}

func NewService(store Store, notifier Notifier, logger *logging.Logger) *Service {
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Submit stores a message and sends both emails concurrently. Email
// failures are logged and do not fail the submission.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Contact, error) {
	c := &Contact{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		ServiceInterest: in.ServiceInterest,
		Message:         in.Message,
		Status:          StatusNew,
	}
	if c.FullName == "" || c.Email == "" || c.Phone == "" || c.ServiceInterest == "" || c.Message == "" {
		return nil, ErrFieldsRequired
	}
	if !emailPattern.MatchString(c.Email) {
		return nil, ErrInvalidEmail
	}

	created, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	mail := email.Contact{
		FullName:        created.FullName,
		Email:           created.Email,
		Phone:           created.Phone,
		ServiceInterest: created.ServiceInterest,
		Message:         created.Message,
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := s.notifier.SendContactNotification(ctx, mail); err != nil {
			s.logger.Warn("failed to send contact notification", "contact_id", created.ID, "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.notifier.SendAutoReply(ctx, mail); err != nil {
			s.logger.Warn("failed to send contact auto reply", "contact_id", created.ID, "error", err)
		}
		return nil
	})
	_ = g.Wait()

	return created, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Contact, int, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.store.Stats(ctx)
}

// Update changes the triage status and notes of a message
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Contact, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		status := Status(in.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		c.Status = status
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}

	return s.store.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
