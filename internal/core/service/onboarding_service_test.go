package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

// memOnboardingRepo round-trips drafts through JSON like the Redis store.
type memOnboardingRepo struct {
	drafts  map[string][]byte
	deleted []string
}

func newMemOnboardingRepo() *memOnboardingRepo {
	return &memOnboardingRepo{drafts: make(map[string][]byte)}
}

func (r *memOnboardingRepo) Save(_ context.Context, userID string, c *domain.Coordinator) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	r.drafts[userID] = raw
	return nil
}

func (r *memOnboardingRepo) Load(_ context.Context, userID string) (*domain.Coordinator, error) {
	raw, ok := r.drafts[userID]
	if !ok {
		return nil, domain.ErrOnboardingNotFound
	}
	var c domain.Coordinator
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *memOnboardingRepo) Delete(_ context.Context, userID string) error {
	delete(r.drafts, userID)
	r.deleted = append(r.deleted, userID)
	return nil
}

type stubProfiles struct {
	submitted []domain.ProfileData
	err       error
}

func (p *stubProfiles) Submit(_ context.Context, data domain.ProfileData) (*ports.SubmitResult, error) {
	p.submitted = append(p.submitted, data)
	if p.err != nil {
		return nil, p.err
	}
	return &ports.SubmitResult{UserID: testUserID, Written: []string{domain.TableProfiles}}, nil
}

func (p *stubProfiles) UploadPicture(context.Context, domain.Picture) (string, error) {
	return "", errors.New("not used")
}

func (p *stubProfiles) Get(context.Context) (*ports.ProfileView, error) {
	return nil, domain.ErrProfileNotFound
}

type onboardingFixture struct {
	svc      *OnboardingService
	repo     *memOnboardingRepo
	profiles *stubProfiles
}

func newOnboardingFixture(t *testing.T) *onboardingFixture {
	t.Helper()
	f := &onboardingFixture{repo: newMemOnboardingRepo(), profiles: &stubProfiles{}}
	f.svc = NewOnboardingService(f.repo, f.profiles, 1024, zerolog.Nop())
	_, err := f.svc.Start(context.Background(), testUserID)
	require.NoError(t, err)
	return f
}

var (
	validArtist = domain.ArtistDetails{
		EmploymentStatus: "Freelance",
		PrimaryRoles:     []string{"Actor"},
		CareerStage:      "Emerging",
		ExperienceYears:  "0-1",
	}
	validLocation = domain.Location{State: " Kerala ", PostalCode: "682001", City: "Kochi "}
	birthday      = ports.BirthdayInput{DateOfBirth: time.Date(1998, 1, 2, 0, 0, 0, 0, time.UTC)}
)

// walkToPicture submits every screen up to the picture step.
func walkToPicture(t *testing.T, f *onboardingFixture) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.SubmitBirthday(ctx, testUserID, birthday)
	require.NoError(t, err)
	_, err = f.svc.SelectRole(ctx, testUserID, domain.RoleArtist)
	require.NoError(t, err)
	_, err = f.svc.SubmitRoleDetails(ctx, testUserID, ports.RoleDetailsInput{Artist: &validArtist})
	require.NoError(t, err)
	c, err := f.svc.SubmitLocation(ctx, testUserID, validLocation)
	require.NoError(t, err)
	require.Equal(t, domain.StepProfilePicture, c.Step)
}

func TestOnboardingService_StartAndGet(t *testing.T) {
	f := newOnboardingFixture(t)

	c, err := f.svc.Get(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepBirthday, c.Step)

	_, err = f.svc.Get(context.Background(), "someone-else")
	assert.ErrorIs(t, err, domain.ErrOnboardingNotFound)
}

func TestOnboardingService_FullFlow(t *testing.T) {
	f := newOnboardingFixture(t)
	walkToPicture(t, f)

	c, err := f.svc.SkipProfilePicture(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfilePicture, c.Step)

	res, err := f.svc.Complete(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, testUserID, res.UserID)

	require.Len(t, f.profiles.submitted, 1)
	got := f.profiles.submitted[0]
	assert.Equal(t, domain.RoleArtist, got.Role)
	require.NotNil(t, got.DateOfBirth)
	assert.True(t, got.DateOfBirth.Equal(birthday.DateOfBirth))
	require.NotNil(t, got.LocationState)
	assert.Equal(t, "Kerala", *got.LocationState)
	assert.Equal(t, "Kochi", *got.LocationCity)
	assert.Nil(t, got.ProfilePicture)

	_, err = f.svc.Get(context.Background(), testUserID)
	assert.ErrorIs(t, err, domain.ErrOnboardingNotFound)
}

func TestOnboardingService_RejectsLaterSteps(t *testing.T) {
	f := newOnboardingFixture(t)

	_, err := f.svc.SubmitLocation(context.Background(), testUserID, validLocation)
	assert.ErrorIs(t, err, domain.ErrStepOutOfOrder)

	_, err = f.svc.SubmitRoleDetails(context.Background(), testUserID, ports.RoleDetailsInput{Artist: &validArtist})
	assert.ErrorIs(t, err, domain.ErrStepOutOfOrder)

	c, err := f.svc.Get(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepBirthday, c.Step)
}

func TestOnboardingService_ResubmitEarlierStepKeepsPosition(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()
	_, err := f.svc.SubmitBirthday(ctx, testUserID, birthday)
	require.NoError(t, err)
	_, err = f.svc.SelectRole(ctx, testUserID, domain.RoleArtist)
	require.NoError(t, err)

	c, err := f.svc.SelectRole(ctx, testUserID, domain.RoleCastingProfessional)
	require.NoError(t, err)
	assert.Equal(t, domain.StepRoleDetails, c.Step)
	assert.Equal(t, domain.RoleCastingProfessional, c.Profile.Role)

	_, err = f.svc.SubmitRoleDetails(ctx, testUserID, ports.RoleDetailsInput{Artist: &validArtist})
	var fe *domain.FieldsError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"casting"}, fe.Fields)
}

func TestOnboardingService_Validation(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitBirthday(ctx, testUserID, ports.BirthdayInput{DateOfBirth: time.Now().Add(48 * time.Hour)})
	assert.ErrorIs(t, err, domain.ErrRequiredFieldsMissing)

	_, err = f.svc.SubmitBirthday(ctx, testUserID, birthday)
	require.NoError(t, err)

	_, err = f.svc.SelectRole(ctx, testUserID, domain.Role("director"))
	assert.ErrorIs(t, err, domain.ErrRequiredFieldsMissing)

	_, err = f.svc.SelectRole(ctx, testUserID, domain.RoleArtist)
	require.NoError(t, err)

	_, err = f.svc.SubmitRoleDetails(ctx, testUserID, ports.RoleDetailsInput{Artist: &domain.ArtistDetails{EmploymentStatus: "Freelance"}})
	var fe *domain.FieldsError
	require.ErrorAs(t, err, &fe)
	assert.ElementsMatch(t, []string{"primary_roles", "career_stage", "experience_years"}, fe.Fields)

	_, err = f.svc.SubmitRoleDetails(ctx, testUserID, ports.RoleDetailsInput{Artist: &validArtist})
	require.NoError(t, err)

	_, err = f.svc.SubmitLocation(ctx, testUserID, domain.Location{State: "Kerala", PostalCode: "   ", City: "Kochi"})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"postal_code"}, fe.Fields)
}

func TestOnboardingService_RoleDetailsWithoutRole(t *testing.T) {
	f := newOnboardingFixture(t)
	c := domain.NewCoordinator(time.Now())
	c.Advance()
	c.Advance()
	require.NoError(t, f.repo.Save(context.Background(), testUserID, c))

	_, err := f.svc.SubmitRoleDetails(context.Background(), testUserID, ports.RoleDetailsInput{Artist: &validArtist})
	assert.ErrorIs(t, err, domain.ErrRoleNotSelected)
}

func TestOnboardingService_Picture(t *testing.T) {
	f := newOnboardingFixture(t)
	walkToPicture(t, f)
	ctx := context.Background()

	_, err := f.svc.SubmitProfilePicture(ctx, testUserID, domain.Picture{Data: []byte("gif"), ContentType: "application/pdf"})
	assert.ErrorIs(t, err, domain.ErrRequiredFieldsMissing)

	_, err = f.svc.SubmitProfilePicture(ctx, testUserID, domain.Picture{Data: make([]byte, 2048), ContentType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrRequiredFieldsMissing)

	c, err := f.svc.SubmitProfilePicture(ctx, testUserID, domain.Picture{Data: []byte("png"), ContentType: "image/png"})
	require.NoError(t, err)
	require.NotNil(t, c.Profile.ProfilePicture)
	assert.Equal(t, []byte("png"), c.Profile.ProfilePicture.Data)

	c, err = f.svc.SkipProfilePicture(ctx, testUserID)
	require.NoError(t, err)
	assert.Nil(t, c.Profile.ProfilePicture)
}

func TestOnboardingService_CompleteRequiresLastStep(t *testing.T) {
	f := newOnboardingFixture(t)

	_, err := f.svc.Complete(context.Background(), testUserID)
	assert.ErrorIs(t, err, domain.ErrStepOutOfOrder)
	assert.Empty(t, f.profiles.submitted)
}

func TestOnboardingService_CompleteFailureKeepsDraft(t *testing.T) {
	f := newOnboardingFixture(t)
	walkToPicture(t, f)
	f.profiles.err = domain.ErrDatabaseWriteFailed

	_, err := f.svc.Complete(context.Background(), testUserID)
	require.ErrorIs(t, err, domain.ErrDatabaseWriteFailed)
	assert.Empty(t, f.repo.deleted)

	c, err := f.svc.Get(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfilePicture, c.Step)
}

func TestOnboardingService_BlankRoleDetails(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()
	_, err := f.svc.SubmitBirthday(ctx, testUserID, birthday)
	require.NoError(t, err)
	_, err = f.svc.SelectRole(ctx, testUserID, domain.RoleArtist)
	require.NoError(t, err)

	_, err = f.svc.SubmitRoleDetails(ctx, testUserID, ports.RoleDetailsInput{Artist: &domain.ArtistDetails{
		EmploymentStatus: "   ",
		PrimaryRoles:     []string{"  "},
		CareerStage:      " ",
		ExperienceYears:  " ",
	}})
	var fe *domain.FieldsError
	require.ErrorAs(t, err, &fe)
	assert.ElementsMatch(t, []string{"employment_status", "primary_roles", "career_stage", "experience_years"}, fe.Fields)

	c, err := f.svc.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepRoleDetails, c.Step)
	assert.Nil(t, c.Profile.EmploymentStatus)
}

func TestOnboardingService_BlankCastingDetails(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()
	_, err := f.svc.SubmitBirthday(ctx, testUserID, birthday)
	require.NoError(t, err)
	_, err = f.svc.SelectRole(ctx, testUserID, domain.RoleCastingProfessional)
	require.NoError(t, err)

	_, err = f.svc.SubmitRoleDetails(ctx, testUserID, ports.RoleDetailsInput{Casting: &domain.CastingDetails{
		EmploymentStatus: "Full-time",
		SpecificRole:     "\t",
		CompanyName:      "Studio",
		CastingTypes:     []string{"", " "},
	}})
	var fe *domain.FieldsError
	require.ErrorAs(t, err, &fe)
	assert.ElementsMatch(t, []string{"specific_role", "casting_types"}, fe.Fields)
}

func TestOnboardingService_CompleteAfterRoleChange(t *testing.T) {
	f := newOnboardingFixture(t)
	walkToPicture(t, f)
	ctx := context.Background()

	c, err := f.svc.SelectRole(ctx, testUserID, domain.RoleCastingProfessional)
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfilePicture, c.Step)

	_, err = f.svc.Complete(ctx, testUserID)
	var fe *domain.FieldsError
	require.ErrorAs(t, err, &fe)
	assert.ElementsMatch(t, []string{"specific_role", "company_name", "casting_types"}, fe.Fields)
	assert.Empty(t, f.profiles.submitted)
	assert.Empty(t, f.repo.deleted)

	_, err = f.svc.SubmitRoleDetails(ctx, testUserID, ports.RoleDetailsInput{Casting: &domain.CastingDetails{
		EmploymentStatus: "Full-time",
		SpecificRole:     "Casting Director",
		CompanyName:      "Studio",
		CastingTypes:     []string{"Film"},
	}})
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, f.profiles.submitted, 1)
	got := f.profiles.submitted[0]
	assert.Equal(t, domain.RoleCastingProfessional, got.Role)
	require.NotNil(t, got.CompanyName)
	assert.Equal(t, "Studio", *got.CompanyName)
	assert.Equal(t, domain.StringSet{"Film"}, got.CastingTypes)
}
