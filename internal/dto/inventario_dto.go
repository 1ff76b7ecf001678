package dto

// MovimientoStockResponse is one audit entry of the stock movement log.
type MovimientoStockResponse struct {
	ID             string  `json:"id"`
	ProductoID     string  `json:"producto_id"`
	ProductoNombre string  `json:"producto_nombre,omitempty"`
	Tipo           string  `json:"tipo"`
	Cantidad       int     `json:"cantidad"`
	StockAnterior  int     `json:"stock_anterior"`
	StockNuevo     int     `json:"stock_nuevo"`
	Motivo         string  `json:"motivo"`
	ReferenciaID   *string `json:"referencia_id"`
	FechaCreacion  string  `json:"fecha_creacion"`
}
