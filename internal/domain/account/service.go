package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/derive"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/validation"
	"dastarkhan/pkg/logger"
	"dastarkhan/pkg/phonetoken"
)

const entityName = "account"

// ServiceConfig holds account service configuration.
type ServiceConfig struct {
	// PhoneVerification leaves new accounts inactive until their phone
	// number is confirmed with a code.
	PhoneVerification bool
	BcryptCost        int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{BcryptCost: bcrypt.DefaultCost}
}

// SignUpInput is the registration payload.
type SignUpInput struct {
	PhoneNumber     string
	FirstName       string
	LastName        *string
	Password        string
	ConfirmPassword string
}

// Credentials is the login payload.
type Credentials struct {
	PhoneNumber string
	Password    string
}

// ProfileInput updates the caller's profile. Nil fields keep their value.
type ProfileInput struct {
	FirstName *string
	LastName  *string
	Avatar    *images.Upload
}

// Service provides account business logic.
type Service struct {
	repo     Repository
	tx       tx.Manager
	tokens   *TokenService
	phone    *phonetoken.Generator
	images   images.Store
	feedback FeedbackChecker
	sender   CodeSender
	config   ServiceConfig
	now      func() time.Time
}

// NewService creates a new account service. feedback and sender may be nil.
func NewService(
	repo Repository,
	txm tx.Manager,
	tokens *TokenService,
	phone *phonetoken.Generator,
	store images.Store,
	feedback FeedbackChecker,
	sender CodeSender,
	config ServiceConfig,
) *Service {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:     repo,
		tx:       txm,
		tokens:   tokens,
		phone:    phone,
		images:   store,
		feedback: feedback,
		sender:   sender,
		config:   config,
		now:      time.Now,
	}
}

// SignUp registers a customer. The returned token is nil when the account
// must confirm its phone number first.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Account, *Token, error) {
	if err := validation.Password(in.Password); err != nil {
		return nil, nil, err
	}
	if err := validation.PasswordsMatch(in.Password, in.ConfirmPassword); err != nil {
		return nil, nil, err
	}

	a := NewAccount(in.PhoneNumber, derive.Capitalize(in.FirstName))
	a.LastName = in.LastName
	if err := a.Validate(ctx); err != nil {
		return nil, nil, domain.NormalizeValidationErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.config.BcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	a.PasswordHash = string(hash)

	var code string
	if s.config.PhoneVerification {
		a.IsActive = false
		if code, err = s.attachPhoneToken(a); err != nil {
			return nil, nil, err
		}
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.repo.PhoneTaken(ctx, a.PhoneNumber)
		if err != nil {
			return fmt.Errorf("check phone: %w", err)
		}
		if taken {
			return apperror.NewDuplicate(entityName, "phone_number", a.PhoneNumber)
		}
		if err := s.repo.Create(ctx, a); err != nil {
			return fmt.Errorf("create %s: %w", entityName, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "account registered", "id", a.ID, "active", a.IsActive)

	if !a.IsActive {
		s.sendCode(ctx, a.PhoneNumber, code)
		return a, nil, nil
	}

	token, err := s.tokens.Issue(a, false)
	if err != nil {
		return nil, nil, fmt.Errorf("issue token: %w", err)
	}
	return a, token, nil
}

// Login authenticates by phone number and password.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *Account, error) {
	a, err := s.repo.GetByPhone(ctx, creds.PhoneNumber)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := a.CanLogin(); err != nil {
		return nil, nil, err
	}

	token, err := s.issue(ctx, a)
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "account logged in", "id", a.ID)
	return token, a, nil
}

// GetProfile returns the account by id.
func (s *Service) GetProfile(ctx context.Context, accountID id.ID) (*Account, error) {
	a, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, accountID)
	}
	return a, nil
}

// UpdateProfile changes names and avatar. The previous avatar is removed
// after commit unless it is the default one.
func (s *Service) UpdateProfile(ctx context.Context, accountID id.ID, in ProfileInput) (*Account, error) {
	if err := in.Avatar.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("avatar", err.Error())
	}

	a, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, accountID)
	}
	previousAvatar := a.Avatar

	if in.FirstName != nil {
		a.FirstName = derive.Capitalize(*in.FirstName)
	}
	if in.LastName != nil {
		if *in.LastName == "" {
			a.LastName = nil
		} else {
			last := *in.LastName
			a.LastName = &last
		}
	}
	if in.Avatar != nil {
		a.Avatar = images.Distinct(derive.AvatarPath(a.ID.String(), in.Avatar.Filename), previousAvatar)
	}
	if err := a.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	a.Touch()

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := cleanup.Put(ctx, a.Avatar, in.Avatar); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, a); err != nil {
			return fmt.Errorf("update %s: %w", entityName, err)
		}
		cleanup.Replace(previousAvatar, a.Avatar)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "profile updated", "id", a.ID)
	return a, nil
}

// ResetPassword stores a new password for the account.
func (s *Service) ResetPassword(ctx context.Context, accountID id.ID, password, confirm string) error {
	if err := validation.Password(password); err != nil {
		return err
	}
	if err := validation.PasswordsMatch(password, confirm); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, accountID)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, accountID)
		}
		a.PasswordHash = string(hash)
		a.Touch()
		return s.repo.Update(ctx, a)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "password reset", "id", accountID)
	return nil
}

// IssuePhoneToken sends a fresh verification code to an unconfirmed account.
func (s *Service) IssuePhoneToken(ctx context.Context, phone string) error {
	if err := s.requirePhoneVerification(); err != nil {
		return err
	}

	var code string
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByPhone(ctx, phone)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, phone)
		}
		if a.IsActive {
			return apperror.NewConflict("phone number is already verified")
		}
		if code, err = s.attachPhoneToken(a); err != nil {
			return err
		}
		a.Touch()
		return s.repo.Update(ctx, a)
	})
	if err != nil {
		return err
	}

	s.sendCode(ctx, phone, code)
	return nil
}

// VerifyPhoneToken activates the account when code matches and has not
// expired, and returns an access token.
func (s *Service) VerifyPhoneToken(ctx context.Context, phone, code string) (*Token, error) {
	if err := s.requirePhoneVerification(); err != nil {
		return nil, err
	}

	var verified *Account
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByPhone(ctx, phone)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, phone)
		}
		if a.PhoneToken == nil || a.PhoneSecret == nil || a.ExpiresAt == nil {
			return apperror.NewInvalidInput("token", "no verification code was issued")
		}

		ok, err := s.phone.Verify(code, *a.PhoneSecret, *a.ExpiresAt, s.now())
		if errors.Is(err, phonetoken.ErrExpired) {
			return apperror.NewInvalidInput("token", "verification code has expired")
		}
		if !ok || code != *a.PhoneToken {
			return apperror.NewInvalidInput("token", "invalid verification code")
		}

		a.IsActive = true
		a.ClearPhoneToken()
		a.Touch()
		if err := s.repo.Update(ctx, a); err != nil {
			return err
		}
		verified = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "phone verified", "id", verified.ID)
	return s.issue(ctx, verified)
}

func (s *Service) issue(ctx context.Context, a *Account) (*Token, error) {
	var hasFeedback bool
	if s.feedback != nil {
		var err error
		if hasFeedback, err = s.feedback.HasFeedback(ctx, a.ID); err != nil {
			logger.Warn(ctx, "feedback lookup failed", "id", a.ID, "error", err)
		}
	}
	token, err := s.tokens.Issue(a, hasFeedback)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *Service) attachPhoneToken(a *Account) (string, error) {
	t, err := s.phone.Issue(a.PhoneNumber, s.now())
	if err != nil {
		return "", apperror.NewInternal(err).WithDetail("stage", "phone_token")
	}
	a.PhoneToken = &t.Code
	a.PhoneSecret = &t.Secret
	a.ExpiresAt = &t.ExpiresAt
	return t.Code, nil
}

func (s *Service) sendCode(ctx context.Context, phone, code string) {
	if s.sender == nil {
		logger.Debug(ctx, "phone code issued without sender", "phone", phone)
		return
	}
	if err := s.sender.SendCode(ctx, phone, code); err != nil {
		logger.Warn(ctx, "phone code not delivered", "phone", phone, "error", err)
	}
}

func (s *Service) requirePhoneVerification() error {
	if !s.config.PhoneVerification || s.phone == nil {
		return apperror.NewForbidden("phone verification is disabled")
	}
	return nil
}
