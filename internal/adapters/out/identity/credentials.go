// Package identity stores login credentials and signs session tokens.
// Passwords are kept as bcrypt hashes next to, not inside, the user
// profile; tokens are HS256 JWTs carrying the user id and role.
package identity

import (
	"context"
	"errors"
	"strings"

	"localeats/internal/adapters/out/postgres/shared"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.IdentityProvider = (*GormIdentityProvider)(nil)

// errInvalidCredentials does not say which of email or password was wrong.
var errInvalidCredentials = errs.NewUnauthorizedError("invalid email or password")

type CredentialDTO struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
}

func (CredentialDTO) TableName() string {
	return "credentials"
}

// Migrate creates the credentials table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CredentialDTO{})
}

type GormIdentityProvider struct {
	db   *gorm.DB
	cost int
	opts shared.Options
}

// NewGormIdentityProvider uses bcrypt.DefaultCost unless cost is a valid
// bcrypt cost.
func NewGormIdentityProvider(db *gorm.DB, cost int, opts ...shared.Option) *GormIdentityProvider {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &GormIdentityProvider{db: db, cost: cost, opts: shared.NewOptions(opts...)}
}

// Bind returns a provider with the same settings that reads and writes
// through db, for example an open transaction.
func (p *GormIdentityProvider) Bind(db *gorm.DB) ports.IdentityProvider {
	bound := *p
	bound.db = db
	return &bound
}

// Register stores a hash of password under a new user id. An email that
// is already registered is a ConflictError.
func (p *GormIdentityProvider) Register(ctx context.Context, email, password string) (kernel.UUID, error) {
	email = normalizeEmail(email)
	if email == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		// Passwords longer than 72 bytes are rejected by bcrypt.
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("password", err)
	}

	id := kernel.NewUUID()
	ctx, cancel := p.opts.Context(ctx)
	defer cancel()

	result := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&CredentialDTO{UserID: id.Bytes(), Email: email, PasswordHash: string(hash)})
	if result.Error != nil {
		return kernel.UUID{}, shared.Wrap("register credentials", result.Error)
	}
	if result.RowsAffected == 0 {
		return kernel.UUID{}, errs.NewConflictError("email", email, "already registered")
	}
	return id, nil
}

// Authenticate returns the user id for a matching email and password.
func (p *GormIdentityProvider) Authenticate(ctx context.Context, email, password string) (kernel.UUID, error) {
	var dto CredentialDTO
	err := p.opts.Read(ctx, func(ctx context.Context) error {
		return p.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).Take(&dto).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Spend the same time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return kernel.UUID{}, errInvalidCredentials
	}
	if err != nil {
		return kernel.UUID{}, shared.Wrap("authenticate", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(dto.PasswordHash), []byte(password)); err != nil {
		return kernel.UUID{}, errInvalidCredentials
	}
	return kernel.UUIDFromBytes(dto.UserID[:])
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("localeats-dummy-password"), bcrypt.DefaultCost)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
