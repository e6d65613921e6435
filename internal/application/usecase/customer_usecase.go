package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/textsearch"
	"github.com/jhoicas/boutique-api/pkg/whatsapp"
)

// CustomerUseCase alta y consulta de clientas.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	loc  *time.Location
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, loc *time.Location) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, loc: loc, now: time.Now}
}

// Create registra una clienta. Nombre y teléfono son obligatorios; el teléfono se guarda solo con dígitos.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	phone := whatsapp.Digits(in.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("clienta: nombre y teléfono requeridos: %w", domain.ErrInvalidInput)
	}
	birthday, err := dto.ParseDate("birthday", in.Birthday, uc.loc)
	if err != nil {
		return nil, err
	}
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(in.Email),
		Instagram: strings.TrimPrefix(strings.TrimSpace(in.Instagram), "@"),
		Birthday:  birthday,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("clienta: crear: %w", err)
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// List lista clientas filtrando por nombre, teléfono, email o instagram.
func (uc *CustomerUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("clienta: listar: %w", err)
	}
	found := textsearch.Filter(list, search, func(c *entity.Customer) []string {
		return []string{c.Name, c.Phone, c.Email, c.Instagram}
	})
	items, meta := dto.Paginate(found, page)
	out := make([]dto.CustomerResponse, len(items))
	for i, c := range items {
		out[i] = toCustomerResponse(c)
	}
	return &dto.CustomerListResponse{Items: out, Page: meta}, nil
}

// WhatsAppLink enlace wa.me con el saludo por defecto.
func (uc *CustomerUseCase) WhatsAppLink(ctx context.Context, id string) (*dto.WhatsAppLinkResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("clienta: buscar: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("clienta %s: %w", id, domain.ErrNotFound)
	}
	msg := whatsapp.Greeting(c.Name)
	link, err := whatsapp.Link(c.Phone, msg)
	if err != nil {
		return nil, fmt.Errorf("clienta %s: %v: %w", id, err, domain.ErrInvalidInput)
	}
	return &dto.WhatsAppLinkResponse{CustomerID: c.ID, URL: link, Message: msg}, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Instagram: c.Instagram,
		Birthday:  c.Birthday,
		CreatedAt: c.CreatedAt,
	}
}
