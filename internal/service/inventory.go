package service

import (
	"context"

	"toolrental/internal/domain"
	"toolrental/internal/logger"
	"toolrental/internal/repository"
)

type inventoryService struct {
	toolRepo repository.ToolRepository
}

func NewInventoryService(toolRepo repository.ToolRepository) InventoryService {
	return &inventoryService{toolRepo: toolRepo}
}

func (s *inventoryService) AddTool(ctx context.Context, code, brand string, category domain.ToolCategory) (*domain.ToolSpec, error) {
	tool, err := domain.NewToolSpec(code, brand, category)
	if err != nil {
		return nil, err
	}
	if err := s.toolRepo.Create(ctx, &tool); err != nil {
		return nil, err
	}
	logger.Info("Tool added to inventory", "code", tool.Code, "type", tool.Type, "brand", tool.Brand)
	return &tool, nil
}

func (s *inventoryService) RemoveTool(ctx context.Context, code string) error {
	if err := s.toolRepo.Delete(ctx, code); err != nil {
		return err
	}
	logger.Info("Tool removed from inventory", "code", code)
	return nil
}

func (s *inventoryService) GetTool(ctx context.Context, code string) (*domain.ToolSpec, error) {
	return s.toolRepo.GetByCode(ctx, code)
}

func (s *inventoryService) ListTools(ctx context.Context) ([]domain.ToolSpec, error) {
	tools, err := s.toolRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tools == nil {
		tools = []domain.ToolSpec{}
	}
	return tools, nil
}
