package provider

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=provider
type Repository interface {
	CreateProvider(ctx context.Context, p *Provider) error
	GetProvider(ctx context.Context, id uuid.UUID) (*Provider, error)
	ListProviders(ctx context.Context) ([]*Provider, error)
	UpdateProvider(ctx context.Context, p *Provider) error
	DeleteProvider(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name     string
	NIT      *string
	Phone    string
	Contact  string
	Email    string
	Address  string
	Category string
	Active   *bool
}

func (p *Params) normalize() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrNameRequired
	}

	if p.NIT != nil {
		nit := strings.TrimSpace(*p.NIT)
		if nit == "" {
			p.NIT = nil
		} else {
			p.NIT = &nit
		}
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Provider, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	p := &Provider{
		Name:     params.Name,
		NIT:      params.NIT,
		Phone:    params.Phone,
		Contact:  params.Contact,
		Email:    params.Email,
		Address:  params.Address,
		Category: params.Category,
		Active:   true,
	}

	if params.Active != nil {
		p.Active = *params.Active
	}

	if err := s.repo.CreateProvider(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return s.repo.GetProvider(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Provider, error) {
	return s.repo.ListProviders(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Provider, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = params.Name
	p.NIT = params.NIT
	p.Phone = params.Phone
	p.Contact = params.Contact
	p.Email = params.Email
	p.Address = params.Address
	p.Category = params.Category

	if params.Active != nil {
		p.Active = *params.Active
	}

	if err := s.repo.UpdateProvider(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProvider(ctx, id)
}
