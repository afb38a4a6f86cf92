package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/prepa/internal/client/client"
	"github.com/dmitrijs2005/prepa/internal/client/models"
)

type AlertService interface {
	List(ctx context.Context) ([]models.Alert, error)
	Create(ctx context.Context, in models.AlertInput) (*models.Alert, error)
	Delete(ctx context.Context, id int64) error
}

type alertService struct {
	client client.Client
}

func NewAlertService(client client.Client) AlertService {
	return &alertService{client: client}
}

func (s *alertService) List(ctx context.Context) ([]models.Alert, error) {
	alerts, err := s.client.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("alert listing error: %w", err)
	}
	return alerts, nil
}

// Create raises a new alert. Status and level default to new and low.
func (s *alertService) Create(ctx context.Context, in models.AlertInput) (*models.Alert, error) {
	if in.Status == "" {
		in.Status = models.AlertStatusNew
	}
	if in.Level == "" {
		in.Level = models.AlertLevelLow
	}
	if err := validateAlert(in); err != nil {
		return nil, err
	}

	a, err := s.client.CreateAlert(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("alert creation error: %w", err)
	}
	return a, nil
}

func (s *alertService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return &ValidationError{Fields: []FieldError{{Field: "id", Message: "must be positive"}}}
	}
	if err := s.client.DeleteAlert(ctx, id); err != nil {
		return fmt.Errorf("alert deletion error: %w", err)
	}
	return nil
}
