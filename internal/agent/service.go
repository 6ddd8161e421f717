package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=agent
type Repository interface {
	CreateAgent(ctx context.Context, a *Agent) error
	GetAgent(ctx context.Context, id uuid.UUID) (*Agent, error)
	ListAgents(ctx context.Context, filter ListFilter) ([]*Agent, error)
	UpdateAgent(ctx context.Context, a *Agent) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Kenyan mobile numbers: 07XX/01XX local form or +2547XX/+2541XX.
var phonePattern = regexp.MustCompile(`^(\+254|0)(7|1)\d{8}$`)

type CreateParams struct {
	Name      string
	Phone     string
	Location  string
	County    string
	CreatedBy uuid.UUID
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}

	if !phonePattern.MatchString(strings.ReplaceAll(p.Phone, " ", "")) {
		return fmt.Errorf("invalid phone number %q", p.Phone)
	}

	if strings.TrimSpace(p.County) == "" {
		return fmt.Errorf("county is required")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Agent, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	a := &Agent{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(params.Name),
		Phone:     strings.ReplaceAll(params.Phone, " ", ""),
		Location:  strings.TrimSpace(params.Location),
		County:    strings.TrimSpace(params.County),
		Active:    true,
		CreatedBy: params.CreatedBy,
	}
	if err := s.repo.CreateAgent(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

type ListFilter struct {
	County     *string
	ActiveOnly bool
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Agent, error) {
	return s.repo.GetAgent(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Agent, error) {
	return s.repo.ListAgents(ctx, filter)
}

func (s *Service) Update(ctx context.Context, a *Agent) error {
	if !phonePattern.MatchString(strings.ReplaceAll(a.Phone, " ", "")) {
		return fmt.Errorf("invalid phone number %q", a.Phone)
	}

	return s.repo.UpdateAgent(ctx, a)
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, true)
}
