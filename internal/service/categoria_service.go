package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/apierror"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaService defines business operations for product categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

func NewCategoriaService(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) CategoriaService {
	return &categoriaService{repo: repo, productoRepo: productoRepo}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{ID: c.ID.String(), Nombre: c.Nombre}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return dto.CategoriaResponse{}, apierror.Validacion("El nombre de la categoría es obligatorio.")
	}

	if _, err := s.repo.FindByNombre(ctx, nombre); err == nil {
		return dto.CategoriaResponse{}, apierror.Conflicto("Ya existe una categoría con ese nombre.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoriaResponse{}, err
	}

	c := &model.Categoria{Nombre: nombre}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoriaResponse{}, apierror.NoEncontrado("Categoría no encontrada.")
		}
		return dto.CategoriaResponse{}, err
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre == "" {
			return dto.CategoriaResponse{}, apierror.Validacion("El nombre de la categoría no puede estar vacío.")
		}
		// Uniqueness check excludes the row being renamed.
		if nombre != c.Nombre {
			existing, err := s.repo.FindByNombre(ctx, nombre)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CategoriaResponse{}, err
			}
			if err == nil && existing.ID != id {
				return dto.CategoriaResponse{}, apierror.Conflicto("Ya existe otra categoría con ese nombre.")
			}
		}
		c.Nombre = nombre
		if err := s.repo.Update(ctx, c); err != nil {
			return dto.CategoriaResponse{}, err
		}
	}
	return mapCategoria(*c), nil
}

// Eliminar deletes a category. Dependent products are never orphaned or
// cascaded: they are bulk-reassigned to the lazily created "Sin Categoría"
// sentinel inside the same transaction as the delete.
func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("Categoría no encontrada.")
		}
		return err
	}

	dependientes, err := s.productoRepo.CountByCategoria(ctx, id)
	if err != nil {
		return err
	}

	return runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		if dependientes > 0 {
			sentinel, err := s.repo.FirstOrCreateTx(tx, model.NombreSinCategoria)
			if err != nil {
				return err
			}
			if err := s.productoRepo.ReassignCategoriaTx(tx, c.ID, sentinel.ID); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, c.ID)
	})
}
