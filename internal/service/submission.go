package service

import (
	"context"
	"errors"
	"fmt"

	"sitecms/internal/email"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ErrMissingFields rejects submissions without the minimum contact details.
var ErrMissingFields = errors.New("required fields missing")

// SubmissionService handles the two public form endpoints. Notifications go
// out after the submission persisted and never affect the response.
type SubmissionService interface {
	CreateContact(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error)
	ListContacts(ctx context.Context) ([]model.ContactMessage, error)
	CreateQuote(ctx context.Context, q *model.QuoteRequest) (*model.QuoteRequest, error)
	ListQuotes(ctx context.Context) ([]model.QuoteRequest, error)
}

type submissionService struct {
	contacts repository.ContactRepository
	quotes   repository.QuoteRepository
	notifier email.Notifier
}

// NewSubmissionService constructs a SubmissionService. notifier may be nil
// when notifications are disabled.
func NewSubmissionService(contacts repository.ContactRepository, quotes repository.QuoteRepository, notifier email.Notifier) SubmissionService {
	return &submissionService{contacts: contacts, quotes: quotes, notifier: notifier}
}

func (s *submissionService) CreateContact(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message", ErrMissingFields)
	}
	stored, err := s.contacts.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	if s.notifier != nil {
		go s.notifier.NotifyContact(stored)
	}
	return stored, nil
}

func (s *submissionService) ListContacts(ctx context.Context) ([]model.ContactMessage, error) {
	return s.contacts.List(ctx)
}

func (s *submissionService) CreateQuote(ctx context.Context, q *model.QuoteRequest) (*model.QuoteRequest, error) {
	if q.Name == "" || q.Email == "" || q.PropertyType == "" || q.Service == "" {
		return nil, fmt.Errorf("%w: name, email, propertyType and service", ErrMissingFields)
	}
	stored, err := s.quotes.Create(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("create quote request: %w", err)
	}
	if s.notifier != nil {
		go s.notifier.NotifyQuote(stored)
	}
	return stored, nil
}

func (s *submissionService) ListQuotes(ctx context.Context) ([]model.QuoteRequest, error) {
	return s.quotes.List(ctx)
}
