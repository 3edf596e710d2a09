package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delfood/owner-service/internal/domain"
	"github.com/delfood/owner-service/internal/events"
	"github.com/delfood/owner-service/internal/repository"
	apperrors "github.com/delfood/owner-service/pkg/util"
)

// MenuGroupService manages the menu-group catalog. Plain CRUD; the only
// rule is that a shop cannot carry two live groups with the same name.
type MenuGroupService struct {
	groups     repository.MenuGroupRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewMenuGroupService builds the service.
func NewMenuGroupService(groups repository.MenuGroupRepository, dispatcher events.Dispatcher, logger *zap.Logger) *MenuGroupService {
	return &MenuGroupService{groups: groups, dispatcher: dispatcher, logger: logger}
}

// Create adds a menu group to a shop.
func (s *MenuGroupService) Create(ctx context.Context, ownerID string, group *domain.MenuGroup) (*domain.MenuGroup, error) {
	if group.Name == "" {
		return nil, apperrors.NewValidationError("menu group name required", nil)
	}

	taken, err := s.groups.NameExists(ctx, group.ShopID, group.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("menu group name already used in shop",
			map[string]any{"name": group.Name})
	}

	group.Status = domain.MenuGroupStatusDefault
	if err := s.groups.Insert(ctx, group); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMenuGroupCreated,
			OwnerID:   ownerID,
			Timestamp: time.Now(),
			Payload: events.MenuGroupCreatedPayload{
				MenuGroupID: group.ID,
				ShopID:      group.ShopID,
				Name:        group.Name,
			},
		})
	}
	s.logger.Info("menu group created",
		zap.Int64("menu_group_id", group.ID), zap.Int64("shop_id", group.ShopID))
	return group, nil
}

// ListByShop returns the live menu groups of a shop.
func (s *MenuGroupService) ListByShop(ctx context.Context, shopID int64) ([]domain.MenuGroup, error) {
	return s.groups.FindByShopID(ctx, shopID)
}

// UpdateNameAndContent renames a menu group and replaces its description.
func (s *MenuGroupService) UpdateNameAndContent(ctx context.Context, id int64, name, content string) error {
	if name == "" {
		return apperrors.NewValidationError("menu group name required", nil)
	}
	return s.groups.UpdateNameAndContent(ctx, id, name, content)
}

// Delete soft-deletes a menu group; the row stays with status DELETED.
func (s *MenuGroupService) Delete(ctx context.Context, id int64) error {
	return s.groups.Delete(ctx, id)
}
