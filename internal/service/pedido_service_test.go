package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/apierror"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pedidoFixture struct {
	svc       PedidoService
	pedidos   *stubPedidoRepo
	productos *stubProductoRepo
	movs      *stubMovimientoRepo
}

func newPedidoFixture() *pedidoFixture {
	pedidos := newStubPedidoRepo()
	productos := newStubProductoRepo()
	movs := newStubMovimientoRepo()
	return &pedidoFixture{
		svc:       NewPedidoService(pedidos, productos, movs, nil),
		pedidos:   pedidos,
		productos: productos,
		movs:      movs,
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCrearPedidoDescuentaStock(t *testing.T) {
	f := newPedidoFixture()
	productoID := f.productos.agregar(model.Producto{Nombre: "Arroz 1kg", Precio: d("1.50"), Stock: 50})
	usuarioID := uuid.New()

	resp, err := f.svc.Crear(context.Background(), usuarioID, dto.CrearPedidoRequest{
		Carrito: []dto.ItemCarritoRequest{
			{ProductoID: productoID.String(), Cantidad: 2},
		},
		Total:            d("3.00"),
		DireccionEntrega: "Av. Bolívar, casa 12",
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPendiente, resp.Estado)
	assert.True(t, resp.Total.Equal(d("3.00")))

	// stock decremented
	p, err := f.productos.FindByID(context.Background(), productoID)
	require.NoError(t, err)
	assert.Equal(t, 48, p.Stock)

	// snapshot frozen with name and unit price
	pedido, err := f.pedidos.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	var items []model.ItemCarrito
	require.NoError(t, json.Unmarshal([]byte(pedido.ProductosJSON), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Arroz 1kg", items[0].Nombre)
	assert.True(t, items[0].Precio.Equal(d("1.50")))
	assert.Equal(t, 2, items[0].Cantidad)

	// audit trail
	require.Len(t, f.movs.movimientos, 1)
	mov := f.movs.movimientos[0]
	assert.Equal(t, "pedido", mov.Tipo)
	assert.Equal(t, -2, mov.Cantidad)
	assert.Equal(t, 50, mov.StockAnterior)
	assert.Equal(t, 48, mov.StockNuevo)
}

func TestCrearPedidoStockInsuficiente(t *testing.T) {
	f := newPedidoFixture()
	productoID := f.productos.agregar(model.Producto{Nombre: "Pan Integral", Precio: d("1.80"), Stock: 1})

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearPedidoRequest{
		Carrito:          []dto.ItemCarritoRequest{{ProductoID: productoID.String(), Cantidad: 5}},
		Total:            d("9.00"),
		DireccionEntrega: "Calle 5",
	})
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindStockInsuficiente))
	assert.Contains(t, err.Error(), "Pan Integral")

	// nothing mutated
	p, _ := f.productos.FindByID(context.Background(), productoID)
	assert.Equal(t, 1, p.Stock)
	assert.Empty(t, f.pedidos.pedidos)
	assert.Empty(t, f.movs.movimientos)
}

// Duplicate lines of the same product pass the per-line pre-flight check but
// must fail the aggregate re-check inside the transaction.
func TestCrearPedidoLineasDuplicadasSumanContraElStock(t *testing.T) {
	f := newPedidoFixture()
	productoID := f.productos.agregar(model.Producto{Nombre: "Tomates 1kg", Precio: d("2.80"), Stock: 5})

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearPedidoRequest{
		Carrito: []dto.ItemCarritoRequest{
			{ProductoID: productoID.String(), Cantidad: 3},
			{ProductoID: productoID.String(), Cantidad: 4},
		},
		Total:            d("19.60"),
		DireccionEntrega: "Calle 5",
	})
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindStockInsuficiente))

	p, _ := f.productos.FindByID(context.Background(), productoID)
	assert.Equal(t, 5, p.Stock, "a failed checkout must not leave partial decrements")
}

func TestCrearPedidoValidaciones(t *testing.T) {
	f := newPedidoFixture()
	productoID := f.productos.agregar(model.Producto{Nombre: "Leche Entera 1L", Precio: d("2.50"), Stock: 10})
	ctx := context.Background()

	_, err := f.svc.Crear(ctx, uuid.New(), dto.CrearPedidoRequest{
		Carrito: nil, Total: d("1.00"), DireccionEntrega: "Calle 5",
	})
	assert.True(t, apierror.Is(err, apierror.KindValidacion), "empty cart")

	_, err = f.svc.Crear(ctx, uuid.New(), dto.CrearPedidoRequest{
		Carrito:          []dto.ItemCarritoRequest{{ProductoID: productoID.String(), Cantidad: 1}},
		Total:            d("2.50"),
		DireccionEntrega: "   ",
	})
	assert.True(t, apierror.Is(err, apierror.KindValidacion), "blank address")

	_, err = f.svc.Crear(ctx, uuid.New(), dto.CrearPedidoRequest{
		Carrito:          []dto.ItemCarritoRequest{{ProductoID: productoID.String(), Cantidad: 0}},
		Total:            d("2.50"),
		DireccionEntrega: "Calle 5",
	})
	assert.True(t, apierror.Is(err, apierror.KindValidacion), "cantidad < 1")

	_, err = f.svc.Crear(ctx, uuid.New(), dto.CrearPedidoRequest{
		Carrito:          []dto.ItemCarritoRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
		Total:            d("2.50"),
		DireccionEntrega: "Calle 5",
	})
	assert.True(t, apierror.Is(err, apierror.KindNoEncontrado), "unknown product")
}

func TestConfirmarPago(t *testing.T) {
	f := newPedidoFixture()
	pedido := &model.Pedido{Total: d("5.00"), ProductosJSON: "[]", Estado: model.EstadoPendiente,
		FechaCreacion: time.Now(), DireccionEntrega: "Calle 5"}
	require.NoError(t, f.pedidos.CreateTx(context.Background(), nil, pedido))

	// too short
	_, err := f.svc.ConfirmarPago(context.Background(), dto.ConfirmarPagoRequest{
		PedidoID: pedido.ID.String(), ReferenciaPago: "12",
	})
	assert.True(t, apierror.Is(err, apierror.KindValidacion))

	// non-numeric
	_, err = f.svc.ConfirmarPago(context.Background(), dto.ConfirmarPagoRequest{
		PedidoID: pedido.ID.String(), ReferenciaPago: "12a4",
	})
	assert.True(t, apierror.Is(err, apierror.KindValidacion))

	// valid
	resp, err := f.svc.ConfirmarPago(context.Background(), dto.ConfirmarPagoRequest{
		PedidoID: pedido.ID.String(), ReferenciaPago: " 1234 ",
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPagoRevision, resp.Estado)
	assert.Equal(t, "1234", resp.ReferenciaPago)

	guardado, _ := f.pedidos.FindByID(context.Background(), pedido.ID)
	require.NotNil(t, guardado.ReferenciaPago)
	assert.Equal(t, "1234", *guardado.ReferenciaPago)
	assert.NotNil(t, guardado.FechaConfirmacion)

	// re-submission overwrites the previous reference
	_, err = f.svc.ConfirmarPago(context.Background(), dto.ConfirmarPagoRequest{
		PedidoID: pedido.ID.String(), ReferenciaPago: "567890",
	})
	require.NoError(t, err)
	guardado, _ = f.pedidos.FindByID(context.Background(), pedido.ID)
	assert.Equal(t, "567890", *guardado.ReferenciaPago)
}

func TestConfirmarPagoPedidoInexistente(t *testing.T) {
	f := newPedidoFixture()
	_, err := f.svc.ConfirmarPago(context.Background(), dto.ConfirmarPagoRequest{
		PedidoID: uuid.NewString(), ReferenciaPago: "1234",
	})
	assert.True(t, apierror.Is(err, apierror.KindNoEncontrado))
}

func TestActualizarEstado(t *testing.T) {
	f := newPedidoFixture()
	pedido := &model.Pedido{Total: d("5.00"), ProductosJSON: "[]", Estado: model.EstadoPagoRevision,
		FechaCreacion: time.Now(), DireccionEntrega: "Calle 5"}
	require.NoError(t, f.pedidos.CreateTx(context.Background(), nil, pedido))

	// unknown state
	_, err := f.svc.ActualizarEstado(context.Background(), dto.ActualizarEstadoRequest{
		PedidoID: pedido.ID.String(), NuevoEstado: "Cancelado",
	})
	assert.True(t, apierror.Is(err, apierror.KindValidacion))

	// rejection requires a reason
	_, err = f.svc.ActualizarEstado(context.Background(), dto.ActualizarEstadoRequest{
		PedidoID: pedido.ID.String(), NuevoEstado: model.EstadoPagoRechazado,
	})
	assert.True(t, apierror.Is(err, apierror.KindValidacion))

	resp, err := f.svc.ActualizarEstado(context.Background(), dto.ActualizarEstadoRequest{
		PedidoID: pedido.ID.String(), NuevoEstado: model.EstadoPagoRechazado,
		MotivoRechazo: "Referencia no encontrada en el banco",
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPagoRechazado, resp.Estado)

	guardado, _ := f.pedidos.FindByID(context.Background(), pedido.ID)
	require.NotNil(t, guardado.MotivoRechazo)
	assert.Equal(t, "Referencia no encontrada en el banco", *guardado.MotivoRechazo)

	// moving to any other state clears the reason
	_, err = f.svc.ActualizarEstado(context.Background(), dto.ActualizarEstadoRequest{
		PedidoID: pedido.ID.String(), NuevoEstado: model.EstadoEnviado,
	})
	require.NoError(t, err)
	guardado, _ = f.pedidos.FindByID(context.Background(), pedido.ID)
	assert.Equal(t, model.EstadoEnviado, guardado.Estado)
	assert.Nil(t, guardado.MotivoRechazo)
}

func TestActualizarEstadoNotificaAlCliente(t *testing.T) {
	pedidos := newStubPedidoRepo()
	productos := newStubProductoRepo()
	movs := newStubMovimientoRepo()
	notificador := newStubNotificador()
	svc := NewPedidoService(pedidos, productos, movs, notificador)

	usuarioID := uuid.New()
	pedido := &model.Pedido{UsuarioID: &usuarioID, Total: d("5.00"), ProductosJSON: "[]",
		Estado: model.EstadoPagoRevision, FechaCreacion: time.Now(), DireccionEntrega: "Calle 5",
		Usuario: &model.Usuario{ID: usuarioID, Correo: "cliente@example.com"}}
	require.NoError(t, pedidos.CreateTx(context.Background(), nil, pedido))

	_, err := svc.ActualizarEstado(context.Background(), dto.ActualizarEstadoRequest{
		PedidoID: pedido.ID.String(), NuevoEstado: model.EstadoEnviado,
	})
	require.NoError(t, err)

	select {
	case n := <-notificador.enviado:
		assert.Equal(t, "cliente@example.com", n.correo)
		assert.Equal(t, model.EstadoEnviado, n.estado)
		assert.Empty(t, n.motivo)
	case <-time.After(time.Second):
		t.Fatal("notification was never dispatched")
	}
}

func TestObtenerPorID(t *testing.T) {
	f := newPedidoFixture()
	pedido := &model.Pedido{Total: d("7.20"), ProductosJSON: "[]", Estado: model.EstadoPendiente,
		FechaCreacion: time.Now(), DireccionEntrega: "Calle 5"}
	require.NoError(t, f.pedidos.CreateTx(context.Background(), nil, pedido))

	resp, err := f.svc.ObtenerPorID(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, pedido.ID.String(), resp.ID)
	assert.True(t, resp.Total.Equal(d("7.20")))
	assert.Equal(t, model.EstadoPendiente, resp.Estado)

	_, err = f.svc.ObtenerPorID(context.Background(), uuid.New())
	assert.True(t, apierror.Is(err, apierror.KindNoEncontrado))
}

func TestListarPorUsuarioNuevosPrimero(t *testing.T) {
	f := newPedidoFixture()
	usuarioID := uuid.New()
	viejo := &model.Pedido{UsuarioID: &usuarioID, Total: d("1.00"), ProductosJSON: "[]",
		Estado: model.EstadoEntregado, FechaCreacion: time.Now().Add(-48 * time.Hour), DireccionEntrega: "x"}
	nuevo := &model.Pedido{UsuarioID: &usuarioID, Total: d("2.00"), ProductosJSON: "[]",
		Estado: model.EstadoPendiente, FechaCreacion: time.Now(), DireccionEntrega: "x"}
	require.NoError(t, f.pedidos.CreateTx(context.Background(), nil, viejo))
	require.NoError(t, f.pedidos.CreateTx(context.Background(), nil, nuevo))

	resp, err := f.svc.ListarPorUsuario(context.Background(), usuarioID)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, nuevo.ID.String(), resp[0].ID)
	assert.Equal(t, viejo.ID.String(), resp[1].ID)
}

func TestGenerarReciboAutorizacion(t *testing.T) {
	f := newPedidoFixture()
	duenoID := uuid.New()
	snapshot, _ := json.Marshal([]model.ItemCarrito{
		{ProductoID: uuid.New(), Nombre: "Arroz 1kg", Precio: d("1.50"), Cantidad: 2},
	})
	pedido := &model.Pedido{UsuarioID: &duenoID, Total: d("3.00"), ProductosJSON: string(snapshot),
		Estado: model.EstadoPendiente, FechaCreacion: time.Now(), DireccionEntrega: "Calle 5"}
	require.NoError(t, f.pedidos.CreateTx(context.Background(), nil, pedido))

	dueno := &model.Usuario{ID: duenoID, Correo: "dueno@example.com"}
	extrano := &model.Usuario{ID: uuid.New(), Correo: "otro@example.com"}
	admin := &model.Usuario{ID: uuid.New(), Correo: "admin@example.com", IsAdmin: true}

	pdf, err := f.svc.GenerarRecibo(context.Background(), pedido.ID, dueno)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")

	_, err = f.svc.GenerarRecibo(context.Background(), pedido.ID, extrano)
	assert.True(t, apierror.Is(err, apierror.KindNoAutorizado))

	_, err = f.svc.GenerarRecibo(context.Background(), pedido.ID, admin)
	assert.NoError(t, err)
}
