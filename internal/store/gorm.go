package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gdg-garage/registration-api/internal/models"
)

const DefaultTimeout = 5 * time.Second

// GormStore implements Store on top of any gorm dialector. The database must
// be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
type GormStore struct {
	db      *gorm.DB
	timeout time.Duration
	now     func() time.Time
	newID   func() string
}

type Option func(*GormStore)

// WithTimeout bounds every storage call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *GormStore) { s.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *GormStore) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *GormStore) { s.newID = newID }
}

func NewGormStore(db *gorm.DB, opts ...Option) *GormStore {
	s := &GormStore{
		db:      db,
		timeout: DefaultTimeout,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *GormStore) FindByPhoneOrEmail(ctx context.Context, phone, email string) (string, bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	keys := []struct {
		column string
		value  string
	}{
		{"phone_number", phone},
		{"email", email},
	}

	for _, key := range keys {
		if key.value == "" {
			continue
		}

		var ids []string
		err := s.db.WithContext(ctx).
			Model(&models.Registration{}).
			Where(key.column+" = ?", key.value).
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return "", false, storageErr("find by "+key.column, err)
		}
		if len(ids) > 0 {
			return ids[0], true, nil
		}
	}

	return "", false, nil
}

func (s *GormStore) Insert(ctx context.Context, fields models.RegistrationFields) (models.Registration, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	registration := models.Registration{
		ID:                 s.newID(),
		RegistrationFields: fields,
		RegistrationDate:   s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Registration{}, fmt.Errorf("insert %s: %w", registration.ID, ErrDuplicate)
		}
		return models.Registration{}, storageErr("insert", err)
	}

	return registration, nil
}

func (s *GormStore) GetByID(ctx context.Context, id string) (models.Registration, bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var registrations []models.Registration
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&registrations).Error
	if err != nil {
		return models.Registration{}, false, storageErr("get by id", err)
	}
	if len(registrations) == 0 {
		return models.Registration{}, false, nil
	}

	return registrations[0], true, nil
}

func (s *GormStore) ListFiltered(ctx context.Context, search string) ([]models.Registration, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Registration{})
	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			`full_name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR college LIKE ? ESCAPE '\' OR branch LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern,
		)
	}

	registrations := []models.Registration{}
	err := query.
		Order("registration_date DESC").
		Order("id ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, storageErr("list", err)
	}

	return registrations, nil
}

func (s *GormStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes search match literally inside a LIKE pattern.
func escapeLike(search string) string {
	return likeEscaper.Replace(search)
}
