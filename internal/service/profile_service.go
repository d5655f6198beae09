package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

// requiredCredits is the credit total of a degree.
const requiredCredits = 120

const minPasswordLength = 8

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

const fillAllPasswordFields = "Please fill in all password fields"

// SessionUserWriter rewrites the user of a live session.
type SessionUserWriter interface {
	UpdateUser(ctx context.Context, user models.User) error
}

// ProfileService serves the profile page and the password change form.
type ProfileService struct {
	catalog   catalog
	validator *validator.Validate
	logger    *zap.Logger
	cost      int

	mu          sync.Mutex
	defaultHash []byte
	hashes      map[string][]byte
}

// NewProfileService constructs the profile service. Every account starts with demoPassword.
func NewProfileService(c catalog, demoPassword string, validate *validator.Validate, logger *zap.Logger) (*ProfileService, error) {
	return newProfileService(c, demoPassword, bcrypt.DefaultCost, validate, logger)
}

func newProfileService(c catalog, demoPassword string, cost int, validate *validator.Validate, logger *zap.Logger) (*ProfileService, error) {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cost)
	if err != nil {
		return nil, err
	}
	return &ProfileService{
		catalog:     c,
		validator:   validate,
		logger:      logger,
		cost:        cost,
		defaultHash: hash,
		hashes:      make(map[string][]byte),
	}, nil
}

// Get returns the profile of user. Students also get their record and degree progress.
func (s *ProfileService) Get(user models.User) (*dto.Profile, error) {
	profile := &dto.Profile{User: user}
	if user.Role != models.RoleStudent {
		return profile, nil
	}
	snap := s.catalog.Snapshot()
	student, ok := findStudent(snap.Students, user.StudentID)
	if !ok {
		return nil, errStudentNotFound
	}
	profile.Student = &student
	profile.Progress = degreeProgress(student, snap.Courses)
	return profile, nil
}

func degreeProgress(student models.Student, courses []models.Course) *dto.DegreeProgress {
	p := &dto.DegreeProgress{RequiredCredits: requiredCredits}
	for _, c := range courses {
		if student.HasCompleted(c.ID) {
			p.CompletedCredits += c.Credits
		}
		if student.IsRegistered(c.ID) {
			p.CurrentCredits += c.Credits
		}
	}
	pct := float64(p.CompletedCredits+p.CurrentCredits) / requiredCredits * 100
	if pct > 100 {
		pct = 100
	}
	p.Percent = models.Round2(pct)
	return p
}

// Update edits the personal details of user. The session copy is written first and restored when
// the student record cannot be saved, so a failure leaves both unchanged.
func (s *ProfileService) Update(ctx context.Context, store SessionUserWriter, user models.User, req dto.ProfileRequest) (*dto.Profile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(s.validator, req, profileMessages); err != nil {
		return nil, err
	}

	previous := user
	user.Name = req.Name
	user.Email = req.Email
	if err := store.UpdateUser(ctx, user); err != nil {
		s.logger.Error("failed to refresh session user", zap.String("user_id", user.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unable to save session")
	}

	if user.Role == models.RoleStudent {
		err := s.catalog.Update(func(tx *repository.CatalogTx) error {
			student, ok := tx.Student(user.StudentID)
			if !ok {
				return errStudentNotFound
			}
			student.Name = req.Name
			student.Email = req.Email
			student.Phone = req.Phone
			student.Address = req.Address
			tx.PutStudent(student)
			return nil
		})
		if err != nil {
			if revertErr := store.UpdateUser(ctx, previous); revertErr != nil {
				s.logger.Error("failed to restore session user", zap.String("user_id", user.ID), zap.Error(revertErr))
			}
			return nil, err
		}
	}
	return s.Get(user)
}

// ChangePassword replaces the password of userID after checking the confirmation, length and current password.
func (s *ProfileService) ChangePassword(userID string, req dto.PasswordChangeRequest) error {
	if err := validate(s.validator, req, passwordMessages); err != nil {
		verr := appErrors.FromError(err)
		for _, msg := range verr.Fields {
			if msg == fillAllPasswordFields {
				return appErrors.Clone(verr, fillAllPasswordFields)
			}
		}
		return verr
	}
	if req.NewPassword != req.ConfirmPassword {
		return appErrors.Invalid(map[string]string{"confirmPassword": "New passwords do not match"})
	}
	if len(req.NewPassword) < minPasswordLength {
		return appErrors.Invalid(map[string]string{"newPassword": "Password must be at least 8 characters"})
	}
	if len(req.NewPassword) > maxPasswordBytes {
		return appErrors.Invalid(map[string]string{"newPassword": passwordTooLong})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.hashes[userID]
	if !ok {
		current = s.defaultHash
	}
	if err := bcrypt.CompareHashAndPassword(current, []byte(req.CurrentPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return appErrors.ErrInvalidCredentials
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unable to verify password")
	}
	next, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unable to hash password")
	}
	s.hashes[userID] = next
	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}
