package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
	"github.com/cinemyst/onboarding-service/internal/pkg/metrics"
)

const defaultMaxPictureBytes = 5 << 20

var allowedPictureTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// OnboardingService keeps each user's wizard in the onboarding repository and
// hands the finished profile to the profile service.
type OnboardingService struct {
	repo            ports.OnboardingRepository
	profiles        ports.ProfileService
	validate        *validator.Validate
	maxPictureBytes int64
	log             zerolog.Logger
	now             func() time.Time
}

func NewOnboardingService(repo ports.OnboardingRepository, profiles ports.ProfileService, maxPictureBytes int64, log zerolog.Logger) *OnboardingService {
	if maxPictureBytes <= 0 {
		maxPictureBytes = defaultMaxPictureBytes
	}
	return &OnboardingService{
		repo:            repo,
		profiles:        profiles,
		validate:        newFieldValidator(),
		maxPictureBytes: maxPictureBytes,
		log:             log,
		now:             time.Now,
	}
}

// Start begins a new wizard for userID, discarding any wizard in progress.
func (s *OnboardingService) Start(ctx context.Context, userID string) (*domain.Coordinator, error) {
	c := domain.NewCoordinator(s.now().UTC())
	if err := s.repo.Save(ctx, userID, c); err != nil {
		return nil, fmt.Errorf("start onboarding: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("onboarding started")
	return c, nil
}

func (s *OnboardingService) Get(ctx context.Context, userID string) (*domain.Coordinator, error) {
	return s.repo.Load(ctx, userID)
}

func (s *OnboardingService) SubmitBirthday(ctx context.Context, userID string, in ports.BirthdayInput) (*domain.Coordinator, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	if in.DateOfBirth.After(s.now()) {
		return nil, &domain.FieldsError{Fields: []string{"date_of_birth"}}
	}
	return s.apply(ctx, userID, domain.StepBirthday, func(p domain.ProfileData) domain.ProfileData {
		return p.WithBirthday(in.DateOfBirth)
	})
}

func (s *OnboardingService) SelectRole(ctx context.Context, userID string, role domain.Role) (*domain.Coordinator, error) {
	if !role.Valid() {
		return nil, &domain.FieldsError{Fields: []string{"role"}}
	}
	return s.apply(ctx, userID, domain.StepRoleSelection, func(p domain.ProfileData) domain.ProfileData {
		return p.WithRole(role)
	})
}

func (s *OnboardingService) SubmitRoleDetails(ctx context.Context, userID string, in ports.RoleDetailsInput) (*domain.Coordinator, error) {
	c, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.CanSubmit(domain.StepRoleDetails); err != nil {
		return nil, err
	}

	var update func(domain.ProfileData) domain.ProfileData
	switch c.Profile.Role {
	case domain.RoleArtist:
		if in.Artist == nil {
			return nil, &domain.FieldsError{Fields: []string{"artist"}}
		}
		d := in.Artist.Normalized()
		if err := s.check(d); err != nil {
			return nil, err
		}
		update = func(p domain.ProfileData) domain.ProfileData { return p.WithArtistDetails(d) }
	case domain.RoleCastingProfessional:
		if in.Casting == nil {
			return nil, &domain.FieldsError{Fields: []string{"casting"}}
		}
		d := in.Casting.Normalized()
		if err := s.check(d); err != nil {
			return nil, err
		}
		update = func(p domain.ProfileData) domain.ProfileData { return p.WithCastingDetails(d) }
	default:
		return nil, domain.ErrRoleNotSelected
	}

	return s.save(ctx, userID, c, domain.StepRoleDetails, update)
}

func (s *OnboardingService) SubmitLocation(ctx context.Context, userID string, in domain.Location) (*domain.Coordinator, error) {
	in = in.Normalized()
	if err := s.check(in); err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, domain.StepLocation, func(p domain.ProfileData) domain.ProfileData {
		return p.WithLocation(in)
	})
}

func (s *OnboardingService) SubmitProfilePicture(ctx context.Context, userID string, pic domain.Picture) (*domain.Coordinator, error) {
	if err := s.checkPicture(pic); err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, domain.StepProfilePicture, func(p domain.ProfileData) domain.ProfileData {
		return p.WithPicture(&pic)
	})
}

// SkipProfilePicture clears any chosen picture; the picture screen is optional.
func (s *OnboardingService) SkipProfilePicture(ctx context.Context, userID string) (*domain.Coordinator, error) {
	return s.apply(ctx, userID, domain.StepProfilePicture, func(p domain.ProfileData) domain.ProfileData {
		return p.WithPicture(nil)
	})
}

// Complete submits the finished wizard. The profile is checked again against
// the role selected last, since the role may have been changed after its
// details were entered. The wizard is discarded only when the submission
// succeeds, so a failed attempt can be retried.
func (s *OnboardingService) Complete(ctx context.Context, userID string) (*ports.SubmitResult, error) {
	c, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !c.Step.Terminal() {
		return nil, fmt.Errorf("%w: cannot complete at %s", domain.ErrStepOutOfOrder, c.Step)
	}
	if !c.Profile.Role.Valid() {
		return nil, domain.ErrRoleNotSelected
	}
	if missing := c.Profile.MissingFields(); len(missing) > 0 {
		return nil, &domain.FieldsError{Fields: missing}
	}

	result, err := s.profiles.Submit(ctx, c.Profile)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to discard completed onboarding")
	}
	s.log.Info().Str("user_id", userID).Msg("onboarding completed")
	return result, nil
}

func (s *OnboardingService) apply(ctx context.Context, userID string, step domain.Step, update func(domain.ProfileData) domain.ProfileData) (*domain.Coordinator, error) {
	c, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, c, step, update)
}

func (s *OnboardingService) save(ctx context.Context, userID string, c *domain.Coordinator, step domain.Step, update func(domain.ProfileData) domain.ProfileData) (*domain.Coordinator, error) {
	if err := c.Submit(step, s.now().UTC(), update); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, userID, c); err != nil {
		return nil, fmt.Errorf("save onboarding: %w", err)
	}

	metrics.OnboardingStepsTotal.WithLabelValues(string(step)).Inc()
	s.log.Debug().Str("user_id", userID).Str("submitted", string(step)).Str("current", string(c.Step)).Msg("onboarding step saved")
	return c, nil
}

func (s *OnboardingService) checkPicture(pic domain.Picture) error {
	_, allowed := allowedPictureTypes[pic.ContentType]
	if len(pic.Data) == 0 || int64(len(pic.Data)) > s.maxPictureBytes || !allowed {
		return &domain.FieldsError{Fields: []string{"picture"}}
	}
	return nil
}

// check validates v and reports failing fields by their JSON names.
func (s *OnboardingService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	seen := make(map[string]struct{}, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	return &domain.FieldsError{Fields: fields}
}

func newFieldValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}
