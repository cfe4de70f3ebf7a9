package mappers

import (
	"fmt"

	"courtside/internal/domain/ban"
	"courtside/internal/infrastructure/persistence/models"
)

// BanMapper handles the conversion between ban entities and persistence models
type BanMapper interface {
	ToDeviceBanEntity(model *models.DeviceBanModel) (*ban.DeviceBan, error)
	ToDeviceBanModel(entity *ban.DeviceBan) *models.DeviceBanModel
	ToDeviceBanEntities(models []*models.DeviceBanModel) ([]*ban.DeviceBan, error)

	ToAccountBanEntity(model *models.AccountBanModel) (*ban.AccountBan, error)
	ToAccountBanModel(entity *ban.AccountBan) *models.AccountBanModel
	ToAccountBanEntities(models []*models.AccountBanModel) ([]*ban.AccountBan, error)
}

type banMapper struct{}

// NewBanMapper creates a new ban mapper
func NewBanMapper() BanMapper {
	return &banMapper{}
}

func (m *banMapper) ToDeviceBanEntity(model *models.DeviceBanModel) (*ban.DeviceBan, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := ban.ReconstructDeviceBan(
		model.ID,
		model.DeviceID,
		model.Active,
		model.BannedUntil,
		model.Reason,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct device ban: %w", err)
	}
	return entity, nil
}

func (m *banMapper) ToDeviceBanModel(entity *ban.DeviceBan) *models.DeviceBanModel {
	if entity == nil {
		return nil
	}
	return &models.DeviceBanModel{
		ID:          entity.ID(),
		DeviceID:    entity.DeviceID(),
		Active:      entity.Active(),
		BannedUntil: entity.BannedUntil(),
		Reason:      entity.Reason(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *banMapper) ToDeviceBanEntities(banModels []*models.DeviceBanModel) ([]*ban.DeviceBan, error) {
	entities := make([]*ban.DeviceBan, 0, len(banModels))
	for i, model := range banModels {
		entity, err := m.ToDeviceBanEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

func (m *banMapper) ToAccountBanEntity(model *models.AccountBanModel) (*ban.AccountBan, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := ban.ReconstructAccountBan(
		model.ID,
		model.AccountID,
		model.Active,
		model.BannedUntil,
		model.Reason,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct account ban: %w", err)
	}
	return entity, nil
}

func (m *banMapper) ToAccountBanModel(entity *ban.AccountBan) *models.AccountBanModel {
	if entity == nil {
		return nil
	}
	return &models.AccountBanModel{
		ID:          entity.ID(),
		AccountID:   entity.AccountID(),
		Active:      entity.Active(),
		BannedUntil: entity.BannedUntil(),
		Reason:      entity.Reason(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *banMapper) ToAccountBanEntities(banModels []*models.AccountBanModel) ([]*ban.AccountBan, error) {
	entities := make([]*ban.AccountBan, 0, len(banModels))
	for i, model := range banModels {
		entity, err := m.ToAccountBanEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
