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

// ProductoService defines the business logic contract for catalog products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	ListarMovimientos(ctx context.Context, limit int) ([]dto.MovimientoStockResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	movRepo       repository.MovimientoStockRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	movRepo repository.MovimientoStockRepository,
) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo, movRepo: movRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Validacion("El nombre del producto es obligatorio.")
	}
	if req.Precio.IsNegative() {
		return nil, apierror.Validacion("El precio debe ser mayor o igual a 0.")
	}
	if req.Stock < 0 {
		return nil, apierror.Validacion("El stock debe ser mayor o igual a 0.")
	}

	categoriaID, err := s.resolverCategoria(ctx, req.CategoriaID)
	if err != nil {
		return nil, err
	}

	p := &model.Producto{
		Nombre:      nombre,
		Precio:      req.Precio,
		Stock:       req.Stock,
		ImagenURL:   limpiarOpcional(req.ImagenURL),
		CategoriaID: categoriaID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if p.Stock > 0 {
		_ = s.movRepo.Create(ctx, &model.MovimientoStock{
			ProductoID:    p.ID,
			Tipo:          "ajuste",
			Cantidad:      p.Stock,
			StockAnterior: 0,
			StockNuevo:    p.Stock,
			Motivo:        "Alta de producto",
		})
	}

	creado, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		creado = p
	}
	resp := productoToResponse(creado)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Producto no encontrado.")
		}
		return nil, err
	}

	stockAnterior := p.Stock

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre == "" {
			return nil, apierror.Validacion("El nombre del producto no puede estar vacío.")
		}
		p.Nombre = nombre
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.Validacion("El precio debe ser mayor o igual a 0.")
		}
		p.Precio = *req.Precio
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apierror.Validacion("El stock debe ser mayor o igual a 0.")
		}
		p.Stock = *req.Stock
	}
	if req.ImagenURL != nil {
		p.ImagenURL = limpiarOpcional(req.ImagenURL)
	}
	if req.CategoriaID != nil {
		if *req.CategoriaID == "" {
			p.CategoriaID = nil
		} else {
			categoriaID, err := s.resolverCategoria(ctx, req.CategoriaID)
			if err != nil {
				return nil, err
			}
			p.CategoriaID = categoriaID
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Admin stock edits go through the same audit trail as checkouts.
	if p.Stock != stockAnterior {
		_ = s.movRepo.Create(ctx, &model.MovimientoStock{
			ProductoID:    p.ID,
			Tipo:          "ajuste",
			Cantidad:      p.Stock - stockAnterior,
			StockAnterior: stockAnterior,
			StockNuevo:    p.Stock,
			Motivo:        "Ajuste de administrador",
		})
	}

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		actualizado = p
	}
	resp := productoToResponse(actualizado)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("Producto no encontrado.")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *productoService) ListarMovimientos(ctx context.Context, limit int) ([]dto.MovimientoStockResponse, error) {
	movs, err := s.movRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, m := range movs {
		item := dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			FechaCreacion: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.Producto != nil {
			item.ProductoNombre = m.Producto.Nombre
		}
		if m.ReferenciaID != nil {
			ref := m.ReferenciaID.String()
			item.ReferenciaID = &ref
		}
		out = append(out, item)
	}
	return out, nil
}

// resolverCategoria validates an optional category id reference.
func (s *productoService) resolverCategoria(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apierror.Validacion("categoria_id inválido.")
	}
	if _, err := s.categoriaRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Categoría no encontrada.")
		}
		return nil, err
	}
	return &id, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Precio:    p.Precio,
		Stock:     p.Stock,
		ImagenURL: p.ImagenURL,
	}
	if p.CategoriaID != nil {
		id := p.CategoriaID.String()
		resp.CategoriaID = &id
	}
	if p.Categoria != nil {
		resp.CategoriaNombre = &p.Categoria.Nombre
	}
	return resp
}
