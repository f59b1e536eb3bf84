package service

import (
	"context"
	"errors"
	"fmt"
	"pokerclock/internal/config"
	"pokerclock/internal/model"
	"pokerclock/internal/repository"
)

var (
	ErrInvalidStructure  = errors.New("invalid blind structure")
	ErrStructureNotFound = errors.New("blind structure not found")
	ErrNotOwner          = errors.New("unauthorized: not structure owner")
)

// StructureService handles blind structure CRUD operations
type StructureService struct {
	structureRepo repository.StructureRepo
}

// NewStructureService creates a new structure service
func NewStructureService(structureRepo repository.StructureRepo) *StructureService {
	return &StructureService{
		structureRepo: structureRepo,
	}
}

// Create validates and stores a structure owned by hostID
func (s *StructureService) Create(ctx context.Context, hostID string, st *model.BlindStructure) (string, error) {
	if err := config.ValidateStructure(st); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	st.HostID = hostID
	return s.structureRepo.Create(ctx, st)
}

// GetByID retrieves a structure by ID
func (s *StructureService) GetByID(ctx context.Context, id string) (*model.BlindStructure, error) {
	st, err := s.structureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStructureNotFound
	}
	return st, nil
}

// ListByHost retrieves all structures for a host
func (s *StructureService) ListByHost(ctx context.Context, hostID string) ([]*model.BlindStructure, error) {
	return s.structureRepo.ListByHost(ctx, hostID)
}

// Update replaces the title and levels of a structure owned by hostID
func (s *StructureService) Update(ctx context.Context, hostID string, st *model.BlindStructure) error {
	if err := config.ValidateStructure(st); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	existing, err := s.owned(ctx, hostID, st.ID)
	if err != nil {
		return err
	}
	st.HostID = existing.HostID
	st.CreatedAt = existing.CreatedAt
	return notFound(s.structureRepo.Update(ctx, st))
}

// Delete deletes a structure owned by hostID
func (s *StructureService) Delete(ctx context.Context, hostID, id string) error {
	if _, err := s.owned(ctx, hostID, id); err != nil {
		return err
	}
	return notFound(s.structureRepo.Delete(ctx, id))
}

// notFound reports a structure deleted since it was looked up as missing
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStructureNotFound
	}
	return err
}

func (s *StructureService) owned(ctx context.Context, hostID, id string) (*model.BlindStructure, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.HostID != hostID {
		return nil, ErrNotOwner
	}
	return st, nil
}
