package mappers

import (
	"fmt"

	"courtside/internal/domain/redemption"
	"courtside/internal/infrastructure/persistence/models"
)

// RedemptionCodeMapper handles the conversion between code entities and
// persistence models
type RedemptionCodeMapper interface {
	ToEntity(model *models.RedemptionCodeModel) (*redemption.Code, error)
	ToModel(entity *redemption.Code) (*models.RedemptionCodeModel, error)
	ToEntities(models []*models.RedemptionCodeModel) ([]*redemption.Code, error)
	ToModels(entities []*redemption.Code) ([]*models.RedemptionCodeModel, error)
}

type redemptionCodeMapper struct{}

// NewRedemptionCodeMapper creates a new redemption code mapper
func NewRedemptionCodeMapper() RedemptionCodeMapper {
	return &redemptionCodeMapper{}
}

func (m *redemptionCodeMapper) ToEntity(model *models.RedemptionCodeModel) (*redemption.Code, error) {
	if model == nil {
		return nil, nil
	}

	metadata, err := unmarshalMetadata(model.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal code metadata: %w", err)
	}

	entity, err := redemption.ReconstructCode(redemption.ReconstructParams{
		ID:             model.ID,
		Code:           model.Code,
		ScopeType:      redemption.ScopeType(model.ScopeType),
		CourseID:       model.CourseID,
		PackageID:      model.PackageID,
		CardID:         model.CardID,
		MaxRedemptions: model.MaxRedemptions,
		Redemptions:    model.Redemptions,
		DurationDays:   model.DurationDays,
		Metadata:       metadata,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct code entity: %w", err)
	}

	return entity, nil
}

func (m *redemptionCodeMapper) ToModel(entity *redemption.Code) (*models.RedemptionCodeModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadata, err := marshalMetadata(entity.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal code metadata: %w", err)
	}

	return &models.RedemptionCodeModel{
		ID:             entity.ID(),
		Code:           entity.Code(),
		ScopeType:      entity.ScopeType().String(),
		CourseID:       entity.CourseID(),
		PackageID:      entity.PackageID(),
		CardID:         entity.CardID(),
		MaxRedemptions: entity.MaxRedemptions(),
		Redemptions:    entity.Redemptions(),
		DurationDays:   entity.DurationDays(),
		Metadata:       metadata,
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *redemptionCodeMapper) ToEntities(codeModels []*models.RedemptionCodeModel) ([]*redemption.Code, error) {
	entities := make([]*redemption.Code, 0, len(codeModels))
	for i, model := range codeModels {
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

func (m *redemptionCodeMapper) ToModels(entities []*redemption.Code) ([]*models.RedemptionCodeModel, error) {
	codeModels := make([]*models.RedemptionCodeModel, 0, len(entities))
	for i, entity := range entities {
		model, err := m.ToModel(entity)
		if err != nil {
			return nil, fmt.Errorf("failed to map entity at index %d: %w", i, err)
		}
		if model != nil {
			codeModels = append(codeModels, model)
		}
	}
	return codeModels, nil
}
