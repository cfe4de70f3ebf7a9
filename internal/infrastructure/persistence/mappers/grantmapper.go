package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"courtside/internal/domain/grant"
	"courtside/internal/infrastructure/persistence/models"
)

// GrantMapper handles the conversion between domain entities and persistence models
type GrantMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.GrantModel) (*grant.Grant, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *grant.Grant) (*models.GrantModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.GrantModel) ([]*grant.Grant, error)
}

type grantMapper struct{}

// NewGrantMapper creates a new grant mapper
func NewGrantMapper() GrantMapper {
	return &grantMapper{}
}

// ToEntity converts a persistence model to a domain entity
func (m *grantMapper) ToEntity(model *models.GrantModel) (*grant.Grant, error) {
	if model == nil {
		return nil, nil
	}

	scope, err := grant.ReconstructScope(
		grant.ScopeType(model.ScopeType),
		model.CourseID,
		model.CardID,
		model.MonthNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct grant scope: %w", err)
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal grant metadata: %w", err)
	}

	entity, err := grant.ReconstructGrant(grant.ReconstructParams{
		ID:         model.ID,
		SID:        model.SID,
		AccountID:  model.AccountID,
		Scope:      scope,
		StartAt:    model.StartAt,
		EndAt:      model.EndAt,
		Status:     grant.Status(model.Status),
		SourceKind: grant.SourceKind(model.SourceKind),
		Metadata:   metadata,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		Version:    model.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct grant entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *grantMapper) ToModel(entity *grant.Grant) (*models.GrantModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadata, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grant metadata: %w", err)
	}

	scope := entity.Scope()
	model := &models.GrantModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		AccountID:   entity.AccountID(),
		ScopeType:   scope.Type().String(),
		CourseID:    scope.CourseID(),
		CardID:      scope.CardID(),
		MonthNumber: scope.MonthNumber(),
		SourceKind:  entity.SourceKind().String(),
		Status:      entity.Status().String(),
		StartAt:     entity.StartAt(),
		EndAt:       entity.EndAt(),
		Metadata:    metadata,
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
		Version:     entity.Version(),
	}

	return model, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *grantMapper) ToEntities(grantModels []*models.GrantModel) ([]*grant.Grant, error) {
	entities := make([]*grant.Grant, 0, len(grantModels))

	for i, model := range grantModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

func marshalMetadata(metadata map[string]any) (datatypes.JSON, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalMetadata(raw datatypes.JSON) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}
