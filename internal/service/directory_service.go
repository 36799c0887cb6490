package service

import (
	"context"

	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/repository"
)

// DirectoryService manages the customer/supplier address book.
type DirectoryService struct {
	contacts repository.ContactRepository
}

// ContactInput describes contact create/update payload.
type ContactInput struct {
	Name  string
	Phone *string
	Email *string
	Kind  domain.ContactKind
	Notes *string
}

// NewDirectoryService constructs the service.
func NewDirectoryService(contacts repository.ContactRepository) *DirectoryService {
	return &DirectoryService{contacts: contacts}
}

// CreateContact adds a contact to the account directory.
func (s *DirectoryService) CreateContact(ctx context.Context, accountID string, input ContactInput) (*domain.Contact, error) {
	contact := &domain.Contact{
		AccountID: accountID,
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Kind:      input.Kind,
		Notes:     input.Notes,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContact edits contact fields.
func (s *DirectoryService) UpdateContact(ctx context.Context, accountID, contactID string, input ContactInput) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, accountID, contactID)
	if err != nil {
		return nil, err
	}
	contact.Name = input.Name
	contact.Phone = input.Phone
	contact.Email = input.Email
	contact.Kind = input.Kind
	contact.Notes = input.Notes
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact.
func (s *DirectoryService) DeleteContact(ctx context.Context, accountID, contactID string) error {
	return s.contacts.Delete(ctx, accountID, contactID)
}

// GetContact loads one contact.
func (s *DirectoryService) GetContact(ctx context.Context, accountID, contactID string) (*domain.Contact, error) {
	return s.contacts.GetByID(ctx, accountID, contactID)
}

// ListContacts lists the directory with filters.
func (s *DirectoryService) ListContacts(ctx context.Context, accountID string, filter repository.ContactFilter) ([]domain.Contact, error) {
	return s.contacts.List(ctx, accountID, filter)
}
