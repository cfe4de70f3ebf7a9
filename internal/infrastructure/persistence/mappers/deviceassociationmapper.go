package mappers

import (
	"fmt"

	"courtside/internal/domain/device"
	"courtside/internal/infrastructure/persistence/models"
)

func ToAssociation(m *models.DeviceAssociationModel) (*device.Association, error) {
	if m == nil {
		return nil, nil
	}
	entity, err := device.ReconstructAssociation(m.ID, m.DeviceID, m.AccountID, m.LastSeenAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct association: %w", err)
	}
	return entity, nil
}

func ToAssociations(ms []*models.DeviceAssociationModel) ([]*device.Association, error) {
	out := make([]*device.Association, 0, len(ms))
	for i, m := range ms {
		entity, err := ToAssociation(m)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, m.ID, err)
		}
		if entity != nil {
			out = append(out, entity)
		}
	}
	return out, nil
}
