package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// SearchCache abstracts the search-result cache (two-level in production).
type SearchCache interface {
	Get(ctx context.Context, key string) ([]domain.PropertySummary, bool)
	Set(ctx context.Context, key string, items []domain.PropertySummary)
}

// slugPattern: lowercase URL-safe segments separated by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PropertyService implements the property lifecycle: registration, the
// pending -> approved transition, reject-delete, search, and staff accounts.
type PropertyService struct {
	properties ports.PropertyRepository
	staff      ports.StaffRepository
	notices    ports.NotificationDispatcher
	cache      SearchCache
	logger     zerolog.Logger
}

func NewPropertyService(
	properties ports.PropertyRepository,
	staff ports.StaffRepository,
	notices ports.NotificationDispatcher,
	cache SearchCache,
	logger zerolog.Logger,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		staff:      staff,
		notices:    notices,
		cache:      cache,
		logger:     logger,
	}
}

// Register creates a property in pending state. The slug must be URL-safe and
// not yet taken; the password is stored as a bcrypt hash.
func (s *PropertyService) Register(ctx context.Context, input ports.RegisterPropertyInput) (string, error) {
	if input.Name == "" || input.ContactEmail == "" || input.Password == "" {
		return "", domain.ErrInvalidInput
	}
	if input.Slug == "" || !slugPattern.MatchString(input.Slug) {
		return "", domain.ErrInvalidInput
	}

	if _, err := s.properties.FindBySlug(ctx, input.Slug); err == nil {
		return "", domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrPropertyNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	property := &domain.Property{
		Slug:         input.Slug,
		Name:         input.Name,
		Address:      input.Address,
		Location:     input.Location,
		Description:  input.Description,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		PasswordHash: string(hash),
		LicenceRef:   input.LicenceRef,
		State:        domain.StatePending,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.properties.Create(ctx, property)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", input.Slug).Msg("failed to register property")
		return "", err
	}

	s.logger.Info().Str("property_id", id).Str("slug", input.Slug).Msg("property registered")
	return id, nil
}

// Approve transitions a pending property to approved and enqueues the
// approval notification. Approving an already-approved property is a no-op
// success (a second notification attempt is still made). The notification is
// asynchronous: its failure never rolls back the committed state change.
func (s *PropertyService) Approve(ctx context.Context, email string) error {
	property, err := s.properties.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if property.State != domain.StateApproved {
		if err := s.properties.SetState(ctx, property.ID, domain.StateApproved); err != nil {
			s.logger.Error().Err(err).Str("property_id", property.ID).Msg("failed to approve property")
			return err
		}
		s.logger.Info().Str("property_id", property.ID).Str("slug", property.Slug).Msg("property approved")
	} else {
		s.logger.Info().Str("property_id", property.ID).Msg("property already approved, re-sending notification")
	}

	s.notices.Enqueue(ports.ApprovalNotice{
		Email:        property.ContactEmail,
		PropertyName: property.Name,
		Slug:         property.Slug,
	})
	return nil
}

// Reject deletes the property and cascades removal of its room types,
// bookings and staff accounts.
func (s *PropertyService) Reject(ctx context.Context, propertyID string) error {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return err
	}

	if err := s.properties.Delete(ctx, property.ID); err != nil {
		s.logger.Error().Err(err).Str("property_id", property.ID).Msg("failed to delete property")
		return err
	}

	s.logger.Info().Str("property_id", property.ID).Str("slug", property.Slug).Msg("property rejected and deleted")
	return nil
}

func (s *PropertyService) ListPending(ctx context.Context) ([]domain.Property, error) {
	return s.properties.ListPending(ctx)
}

// Search returns approved properties whose location contains the given
// substring (case-insensitive). Results are served from the cache when fresh.
func (s *PropertyService) Search(ctx context.Context, location string) ([]domain.PropertySummary, error) {
	key := strings.ToLower(strings.TrimSpace(location))

	if items, ok := s.cache.Get(ctx, key); ok {
		return items, nil
	}

	items, err := s.properties.SearchApproved(ctx, key)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, items)
	return items, nil
}

// AddStaff creates a staff account scoped to the property. Email must be
// unique within the property.
func (s *PropertyService) AddStaff(ctx context.Context, input ports.AddStaffInput) (*domain.StaffAccount, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.properties.FindByID(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.StaffAccount{
		PropertyID:   input.PropertyID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.staff.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("property_id", input.PropertyID).Str("email", input.Email).Msg("staff account created")
	return created, nil
}

func (s *PropertyService) ListStaff(ctx context.Context, propertyID string) ([]domain.StaffAccount, error) {
	return s.staff.ListByProperty(ctx, propertyID)
}
