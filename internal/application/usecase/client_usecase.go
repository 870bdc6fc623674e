package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/access"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/validation"
)

// ClientUseCase casos de uso de la cartera de clientes. Cada cliente pertenece al vendedor
// que lo registró; solo él puede verlo, modificarlo o eliminarlo.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente a nombre de callerID.
func (uc *ClientUseCase) Create(ctx context.Context, callerID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("cliente %s: %w", in.Email, domain.ErrAlreadyExists)
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		LastName:  strings.TrimSpace(in.LastName),
		Company:   strings.TrimSpace(in.Company),
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		SellerID:  callerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return dto.ToClientResponse(client), nil
}

// GetByID devuelve el cliente si callerID es su vendedor.
func (uc *ClientUseCase) GetByID(ctx context.Context, callerID, id string) (*dto.ClientResponse, error) {
	client, err := uc.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	return dto.ToClientResponse(client), nil
}

// ListBySeller devuelve los clientes de callerID en orden de registro.
func (uc *ClientUseCase) ListBySeller(ctx context.Context, callerID string) ([]dto.ClientResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.ClientFilter{SellerID: callerID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *dto.ToClientResponse(c))
	}
	return out, nil
}

// Update modifica los datos de contacto. El vendedor no cambia.
func (uc *ClientUseCase) Update(ctx context.Context, callerID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	client, err := uc.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != client.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != client.ID {
				return nil, fmt.Errorf("cliente %s: %w", email, domain.ErrAlreadyExists)
			}
		}
		client.Email = email
	}
	if in.Name != nil {
		client.Name = strings.TrimSpace(*in.Name)
	}
	if in.LastName != nil {
		client.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Company != nil {
		client.Company = strings.TrimSpace(*in.Company)
	}
	if in.Phone != nil {
		client.Phone = strings.TrimSpace(*in.Phone)
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return dto.ToClientResponse(client), nil
}

// Delete elimina el cliente. Sus pedidos se conservan.
func (uc *ClientUseCase) Delete(ctx context.Context, callerID, id string) error {
	if _, err := uc.loadOwned(ctx, callerID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// loadOwned carga el cliente (ErrNotFound) y aplica la regla de propiedad (ErrForbidden).
func (uc *ClientUseCase) loadOwned(ctx context.Context, callerID, id string) (*entity.Client, error) {
	if err := access.RequireCaller(callerID); err != nil {
		return nil, err
	}
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	if err := access.CheckOwnership(callerID, client.SellerID); err != nil {
		return nil, err
	}
	return client, nil
}
