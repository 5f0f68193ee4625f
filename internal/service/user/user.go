package user

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vrushti/clinic_backend/config"
	"github.com/vrushti/clinic_backend/internal/model"
	"github.com/vrushti/clinic_backend/internal/store"
	"github.com/vrushti/clinic_backend/pkg/email"
	"github.com/vrushti/clinic_backend/pkg/util/otp"
	"github.com/vrushti/clinic_backend/pkg/util/password"
	"github.com/vrushti/clinic_backend/pkg/util/phone"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

type ResetPasswordRequest struct {
	Email       string
	OTP         string
	NewPassword string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	Login(ctx context.Context, emailAddr, plainPassword string) (*model.User, error)
	// ForgotPassword emails a reset OTP. Unknown addresses succeed silently
	// so the endpoint cannot be used to probe for accounts.
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

// Mailer sends transactional email on behalf of the clinic.
type Mailer interface {
	Send(ctx context.Context, m email.Message) error
	ClinicName() string
}

// Options tunes registration and the reset flow.
type Options struct {
	MinPasswordLength int
	OTPTTL            time.Duration
	PasswordParams    *password.Params
}

func OptionsFromCentralConfig(cfg *config.Config) Options {
	opts := Options{
		MinPasswordLength: cfg.Authentication.MinPasswordLength,
		PasswordParams:    password.FromCentralConfig(cfg.Password).ToParams(),
	}
	if cfg.Authentication.OTPTTLMinutes > 0 {
		opts.OTPTTL = time.Duration(cfg.Authentication.OTPTTLMinutes) * time.Minute
	}
	return opts
}

type userService struct {
	store  *store.Store
	mailer Mailer
	phones *phone.Normalizer
	opts   Options
	log    *slog.Logger
}

func New(st *store.Store, mailer Mailer, phones *phone.Normalizer, opts Options, log *slog.Logger) Service {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = 8
	}
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 10 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &userService{store: st, mailer: mailer, phones: phones, opts: opts, log: log}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	addr := normalizeEmail(req.Email)
	if !validEmail(addr) {
		return nil, ErrInvalidEmail
	}
	if phone.CountDigits(req.Phone) < 10 {
		return nil, ErrInvalidPhone
	}
	if len(req.Password) < s.opts.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := password.HashWithParams(req.Password, s.opts.PasswordParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := model.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        addr,
		Phone:        s.canonicalPhone(req.Phone),
		PasswordHash: hash,
		Role:         model.RoleFromString(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.store.Users().InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

func (s *userService) Login(ctx context.Context, emailAddr, plainPassword string) (*model.User, error) {
	u, err := s.findByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Match(u.PasswordHash, plainPassword) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) ForgotPassword(ctx context.Context, emailAddr string) error {
	addr := normalizeEmail(emailAddr)
	u, err := s.findByEmail(ctx, addr)
	if err != nil {
		if err == ErrUserNotFound {
			s.log.InfoContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := otp.GenerateDefault()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	hashed := otp.Hash(code)
	expiry := time.Now().UTC().Add(s.opts.OTPTTL)

	_, err = s.store.Users().UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{
			"resetPasswordToken":  hashed,
			"resetPasswordExpiry": expiry,
			"updatedAt":           time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	msg := email.BuildPasswordResetEmail(email.PasswordResetEmailData{
		Name:       u.Name,
		Email:      u.Email,
		OTP:        code,
		TTLMinutes: int(s.opts.OTPTTL.Minutes()),
		ClinicName: s.mailer.ClinicName(),
	})
	msg.To = []string{u.Email}

	if err := s.mailer.Send(ctx, msg); err != nil {
		// A reset code nobody received is a liability; clear it so the
		// caller can retry from scratch.
		s.clearResetToken(ctx, u.ID)
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < s.opts.MinPasswordLength {
		return ErrPasswordTooShort
	}

	addr := normalizeEmail(req.Email)
	hashed := otp.Hash(req.OTP)

	var u model.User
	err := s.store.Users().FindOne(ctx, bson.M{
		"email":               addr,
		"resetPasswordToken":  hashed,
		"resetPasswordExpiry": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrOTPInvalid
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	hash, err := password.HashWithParams(req.NewPassword, s.opts.PasswordParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.store.Users().UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{
			"$set":   bson.M{"passwordHash": hash, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpiry": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *userService) findByEmail(ctx context.Context, addr string) (*model.User, error) {
	var u model.User
	err := s.store.Users().FindOne(ctx, bson.M{"email": addr}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// canonicalPhone stores the number in E.164 when it parses as a real phone
// number; unparseable but digit-sufficient numbers are kept as given.
func (s *userService) canonicalPhone(raw string) string {
	if s.phones == nil {
		return raw
	}
	if normalized, err := s.phones.Normalize(raw); err == nil {
		return normalized
	}
	return raw
}

func (s *userService) clearResetToken(ctx context.Context, id primitive.ObjectID) {
	_, err := s.store.Users().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpiry": ""}},
	)
	if err != nil {
		s.log.WarnContext(ctx, "failed to clear reset token", "error", err)
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func validEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}
