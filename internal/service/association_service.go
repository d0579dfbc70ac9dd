package service

import (
	"errors"

	"github.com/adnane-lakhmaisse/OptiStock/internal/apperr"
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssociationService resolves the tenant for an authenticated email.
// Every catalog and ledger call is scoped by the association id it
// returns.
type AssociationService interface {
	// EnsureAssociation creates the association on first sight. No-op
	// when the email is empty or the association already exists; an
	// existing association's name is never updated.
	EnsureAssociation(email, name string) error
	GetByEmail(email string) (*model.Association, error)
}

type associationService struct {
	repo   repository.AssociationRepository
	logger *zap.Logger
}

func NewAssociationService(repo repository.AssociationRepository, logger *zap.Logger) AssociationService {
	return &associationService{repo: repo, logger: logger}
}

func (s *associationService) EnsureAssociation(email, name string) error {
	if email == "" {
		return nil
	}

	_, err := s.repo.FindByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("association lookup failed", zap.String("email", email), zap.Error(err))
		return apperr.ErrStoreFailure
	}
	if name == "" {
		return nil
	}

	association := &model.Association{Email: email, Name: name}
	if err := s.repo.Create(association); err != nil {
		s.logger.Error("association create failed", zap.String("email", email), zap.Error(err))
		return apperr.ErrStoreFailure
	}

	s.logger.Info("association created",
		zap.String("email", email),
		zap.String("name", name),
	)
	return nil
}

func (s *associationService) GetByEmail(email string) (*model.Association, error) {
	if email == "" {
		return nil, apperr.ErrNotFound
	}

	association, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		s.logger.Error("association lookup failed", zap.String("email", email), zap.Error(err))
		return nil, apperr.ErrStoreFailure
	}
	return association, nil
}
