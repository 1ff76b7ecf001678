package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/apierror"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/infra"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Notificador sends best-effort order notifications. A nil Notificador
// disables them (e.g. SMTP not configured, unit tests).
type Notificador interface {
	NotificarEstadoPedido(correo string, pedidoID string, estado string, motivo string) error
}

type PedidoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoCreadoResponse, error)
	ConfirmarPago(ctx context.Context, req dto.ConfirmarPagoRequest) (*dto.ConfirmacionPagoResponse, error)
	ActualizarEstado(ctx context.Context, req dto.ActualizarEstadoRequest) (*dto.EstadoPedidoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResumenResponse, error)
	ListarTodos(ctx context.Context) ([]dto.PedidoResponse, error)
	ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error)
	GenerarRecibo(ctx context.Context, pedidoID uuid.UUID, solicitante *model.Usuario) ([]byte, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
	movRepo      repository.MovimientoStockRepository
	notificador  Notificador
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	notificador Notificador,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		productoRepo: productoRepo,
		movRepo:      movRepo,
		notificador:  notificador,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Checkout contract:
//  1. Validate cart, address and quantities — no mutation on failure.
//  2. Resolve EVERY product and check EVERY line's stock before touching rows.
//  3. One transaction: lock product rows in deterministic id order, re-check
//     under the lock, decrement with a stock >= cantidad guard, record stock
//     movements, insert the Pedido with the frozen cart snapshot.
//
// The declared total is stored as received: the price the customer saw is the
// source of truth at order time. The snapshot carries unit name and price so
// the record stays meaningful after catalog edits.

func (s *pedidoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoCreadoResponse, error) {
	if len(req.Carrito) == 0 {
		return nil, apierror.Validacion("El carrito está vacío.")
	}
	direccion := strings.TrimSpace(req.DireccionEntrega)
	if direccion == "" {
		return nil, apierror.Validacion("Se requiere una dirección de entrega.")
	}

	// Pre-flight: resolve and validate every line before any mutation.
	type linea struct {
		productoID uuid.UUID
		cantidad   int
	}
	lineas := make([]linea, 0, len(req.Carrito))
	for _, item := range req.Carrito {
		if item.Cantidad < 1 {
			return nil, apierror.Validacion("La cantidad debe ser al menos 1.")
		}
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Validacion("Producto sin ID válido en el carrito.")
		}
		lineas = append(lineas, linea{productoID: pid, cantidad: item.Cantidad})
	}

	for _, l := range lineas {
		p, err := s.productoRepo.FindByID(ctx, l.productoID)
		if err != nil {
			return nil, apierror.NoEncontrado("Producto con ID %s no encontrado.", l.productoID)
		}
		if p.Stock < l.cantidad {
			return nil, apierror.StockInsuficiente(p.Nombre, p.Stock, l.cantidad)
		}
	}

	// Deterministic lock order prevents deadlocks between concurrent carts.
	unicos := make(map[uuid.UUID]struct{}, len(lineas))
	orden := make([]uuid.UUID, 0, len(lineas))
	for _, l := range lineas {
		if _, ok := unicos[l.productoID]; !ok {
			unicos[l.productoID] = struct{}{}
			orden = append(orden, l.productoID)
		}
	}
	sort.Slice(orden, func(i, j int) bool { return orden[i].String() < orden[j].String() })

	var pedido model.Pedido
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Lock and re-validate under the lock; the pre-flight check can be
		// stale by the time the transaction starts.
		locked := make(map[uuid.UUID]*model.Producto, len(orden))
		for _, id := range orden {
			p, err := s.productoRepo.FindByIDForUpdateTx(tx, id)
			if err != nil {
				return apierror.NoEncontrado("Producto con ID %s no encontrado.", id)
			}
			locked[id] = p
		}

		restante := make(map[uuid.UUID]int, len(locked))
		for id, p := range locked {
			restante[id] = p.Stock
		}
		for _, l := range lineas {
			if restante[l.productoID] < l.cantidad {
				p := locked[l.productoID]
				return apierror.StockInsuficiente(p.Nombre, restante[l.productoID], l.cantidad)
			}
			restante[l.productoID] -= l.cantidad
		}

		snapshot := make([]model.ItemCarrito, 0, len(lineas))
		for _, l := range lineas {
			p := locked[l.productoID]
			if err := s.productoRepo.DescontarStockTx(tx, l.productoID, l.cantidad); err != nil {
				if errors.Is(err, repository.ErrStockInsuficiente) {
					return apierror.StockInsuficiente(p.Nombre, p.Stock, l.cantidad)
				}
				return err
			}
			snapshot = append(snapshot, model.ItemCarrito{
				ProductoID: p.ID,
				Nombre:     p.Nombre,
				Precio:     p.Precio,
				Cantidad:   l.cantidad,
			})
		}

		data, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}

		uid := usuarioID
		pedido = model.Pedido{
			UsuarioID:        &uid,
			Total:            req.Total,
			ProductosJSON:    string(data),
			Estado:           model.EstadoPendiente,
			FechaCreacion:    time.Now(),
			DireccionEntrega: direccion,
		}
		if err := s.repo.CreateTx(ctx, tx, &pedido); err != nil {
			return err
		}

		// Stock movement audit — one row per decremented line.
		stockAntes := make(map[uuid.UUID]int, len(locked))
		for id, p := range locked {
			stockAntes[id] = p.Stock
		}
		for _, l := range lineas {
			ref := pedido.ID
			mov := &model.MovimientoStock{
				ProductoID:    l.productoID,
				Tipo:          "pedido",
				Cantidad:      -l.cantidad,
				StockAnterior: stockAntes[l.productoID],
				StockNuevo:    stockAntes[l.productoID] - l.cantidad,
				Motivo:        fmt.Sprintf("Pedido %s", pedido.ID),
				ReferenciaID:  &ref,
			}
			if err := s.movRepo.CreateTx(tx, mov); err != nil {
				return err
			}
			stockAntes[l.productoID] -= l.cantidad
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.PedidoCreadoResponse{
		ID:            pedido.ID.String(),
		Total:         pedido.Total,
		Estado:        pedido.Estado,
		FechaCreacion: pedido.FechaCreacion.Format(time.RFC3339),
	}, nil
}

// ── ConfirmarPago ─────────────────────────────────────────────────────────────

func (s *pedidoService) ConfirmarPago(ctx context.Context, req dto.ConfirmarPagoRequest) (*dto.ConfirmacionPagoResponse, error) {
	referencia := strings.TrimSpace(req.ReferenciaPago)
	if len(referencia) < 4 || len(referencia) > 6 {
		return nil, apierror.Validacion("La referencia de pago debe tener entre 4 y 6 dígitos.")
	}
	for _, r := range referencia {
		if r < '0' || r > '9' {
			return nil, apierror.Validacion("La referencia de pago debe contener solo números.")
		}
	}

	id, err := uuid.Parse(req.PedidoID)
	if err != nil {
		return nil, apierror.Validacion("pedido_id inválido.")
	}
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("Pedido no encontrado.")
	}

	// Re-submission overwrites the previous reference; there is no cross-order
	// dedupe of reused references.
	now := time.Now()
	pedido.ReferenciaPago = &referencia
	pedido.Estado = model.EstadoPagoRevision
	pedido.FechaConfirmacion = &now
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}

	return &dto.ConfirmacionPagoResponse{
		Mensaje:        "Referencia de pago guardada correctamente.",
		PedidoID:       pedido.ID.String(),
		Estado:         pedido.Estado,
		ReferenciaPago: referencia,
	}, nil
}

// ── ActualizarEstado ──────────────────────────────────────────────────────────
// Transitions are deliberately unrestricted between the five states: the admin
// drives the lifecycle by hand and may need to move an order backwards.

func (s *pedidoService) ActualizarEstado(ctx context.Context, req dto.ActualizarEstadoRequest) (*dto.EstadoPedidoResponse, error) {
	if !model.EsEstadoValido(req.NuevoEstado) {
		return nil, apierror.Validacion("Estado inválido. Estados válidos: %s",
			strings.Join(model.EstadosValidos, ", "))
	}

	motivo := strings.TrimSpace(req.MotivoRechazo)
	if req.NuevoEstado == model.EstadoPagoRechazado && motivo == "" {
		return nil, apierror.Validacion(`Se requiere un motivo de rechazo cuando el estado es "Pago Rechazado".`)
	}

	id, err := uuid.Parse(req.PedidoID)
	if err != nil {
		return nil, apierror.Validacion("pedido_id inválido.")
	}
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("Pedido no encontrado.")
	}

	pedido.Estado = req.NuevoEstado
	if req.NuevoEstado == model.EstadoPagoRechazado {
		pedido.MotivoRechazo = &motivo
	} else {
		pedido.MotivoRechazo = nil
	}
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}

	s.notificarEstado(pedido)

	return &dto.EstadoPedidoResponse{
		Mensaje:  "Estado del pedido actualizado correctamente.",
		PedidoID: pedido.ID.String(),
		Estado:   pedido.Estado,
	}, nil
}

// notificarEstado emails the customer about the new state. Best effort and
// fire-and-forget: notification failures never affect the admin operation.
func (s *pedidoService) notificarEstado(pedido *model.Pedido) {
	if s.notificador == nil || pedido.Usuario == nil {
		return
	}
	correo := pedido.Usuario.Correo
	pedidoID := pedido.ID.String()
	estado := pedido.Estado
	motivo := ""
	if pedido.MotivoRechazo != nil {
		motivo = *pedido.MotivoRechazo
	}
	go func() {
		if err := s.notificador.NotificarEstadoPedido(correo, pedidoID, estado, motivo); err != nil {
			log.Warn().Err(err).Str("pedido_id", pedidoID).Msg("fallo al enviar notificación de estado")
		}
	}()
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *pedidoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResumenResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("Pedido no encontrado.")
	}
	return &dto.PedidoResumenResponse{
		ID:     pedido.ID.String(),
		Total:  pedido.Total,
		Estado: pedido.Estado,
	}, nil
}

func (s *pedidoService) ListarTodos(ctx context.Context) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		resp := pedidoToResponse(&pedidos[i])
		resp.DireccionEntrega = pedidos[i].DireccionEntrega
		if pedidos[i].Usuario != nil {
			resp.NombreUsuario = pedidos[i].Usuario.NombreUsuario
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *pedidoService) ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, pedidoToResponse(&pedidos[i]))
	}
	return out, nil
}

func (s *pedidoService) GenerarRecibo(ctx context.Context, pedidoID uuid.UUID, solicitante *model.Usuario) ([]byte, error) {
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, apierror.NoEncontrado("Pedido no encontrado.")
	}
	esDueno := pedido.UsuarioID != nil && solicitante != nil && *pedido.UsuarioID == solicitante.ID
	if solicitante == nil || (!solicitante.IsAdmin && !esDueno) {
		return nil, apierror.NoAutorizado()
	}
	return infra.GenerarReciboPDF(pedido, parsearSnapshot(pedido.ProductosJSON))
}

// parsearSnapshot decodes the stored cart blob. A corrupt blob degrades to an
// empty item list rather than failing the whole listing.
func parsearSnapshot(raw string) []model.ItemCarrito {
	var items []model.ItemCarrito
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	items := parsearSnapshot(p.ProductosJSON)
	productos := make([]dto.ItemCarritoResponse, 0, len(items))
	for _, it := range items {
		productos = append(productos, dto.ItemCarritoResponse{
			ProductoID: it.ProductoID.String(),
			Nombre:     it.Nombre,
			Precio:     it.Precio,
			Cantidad:   it.Cantidad,
		})
	}
	var confirmacion *string
	if p.FechaConfirmacion != nil {
		f := p.FechaConfirmacion.Format(time.RFC3339)
		confirmacion = &f
	}
	return dto.PedidoResponse{
		ID:                p.ID.String(),
		Total:             p.Total,
		Estado:            p.Estado,
		Productos:         productos,
		ReferenciaPago:    p.ReferenciaPago,
		MotivoRechazo:     p.MotivoRechazo,
		FechaCreacion:     p.FechaCreacion.Format(time.RFC3339),
		FechaConfirmacion: confirmacion,
	}
}
