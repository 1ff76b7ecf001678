package infra

import (
	"errors"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var categoriasIniciales = []string{
	"Lácteos",
	"Panadería",
	"Limpieza",
	"Granos y Pastas",
	"Frutas y Verduras",
	"Carnes",
	model.NombreSinCategoria,
}

type productoSemilla struct {
	nombre    string
	precio    string
	stock     int
	imagenURL string
	categoria string
}

var productosIniciales = []productoSemilla{
	{"Leche Entera 1L", "2.50", 50, "https://images.unsplash.com/photo-1563636619-e9143da7973b?w=400", "Lácteos"},
	{"Huevos Cartón x12", "3.20", 30, "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?w=400", "Lácteos"},
	{"Pan Integral", "1.80", 40, "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400", "Panadería"},
	{"Detergente 1.5L", "4.50", 25, "https://images.unsplash.com/photo-1610557892470-55d9e80c0bce?w=400", "Limpieza"},
	{"Arroz 1kg", "1.50", 60, "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=400", "Granos y Pastas"},
	{"Aceite de Oliva 500ml", "5.90", 35, "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=400", "Granos y Pastas"},
	{"Yogur Natural x4", "2.30", 45, "https://images.unsplash.com/photo-1488477181946-6428a0291777?w=400", "Lácteos"},
	{"Pasta Espagueti 500g", "1.20", 55, "https://images.unsplash.com/photo-1551462147-8585ac5aae54?w=400", "Granos y Pastas"},
	{"Tomates 1kg", "2.80", 30, "https://images.unsplash.com/photo-1546470427-e26264be0d42?w=400", "Frutas y Verduras"},
	{"Pollo Pechuga 1kg", "6.50", 20, "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=400", "Carnes"},
}

// Seed populates the database with the initial configuration, the base
// category list and a demo catalog when there are no products yet. It is
// idempotent and safe to run on every startup.
func Seed(db *gorm.DB) error {
	// Singleton de configuración con tasa por defecto.
	var cfg model.Configuracion
	if err := db.First(&cfg, "id = ?", model.ConfiguracionID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		cfg = model.Configuracion{
			ID:      model.ConfiguracionID,
			TasaBCV: decimal.RequireFromString("36.00"),
		}
		if err := db.Create(&cfg).Error; err != nil {
			return err
		}
		log.Info().Msg("configuración inicializada con tasa BCV por defecto (36.00)")
	}

	// Categorías base.
	categoriaPorNombre := make(map[string]uuid.UUID, len(categoriasIniciales))
	for _, nombre := range categoriasIniciales {
		var c model.Categoria
		err := db.Where("nombre = ?", nombre).
			FirstOrCreate(&c, model.Categoria{Nombre: nombre}).Error
		if err != nil {
			return err
		}
		categoriaPorNombre[nombre] = c.ID
	}

	// Catálogo de ejemplo, sólo con la tabla de productos vacía.
	var count int64
	if err := db.Model(&model.Producto{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Int64("productos", count).Msg("catálogo existente, seed de productos omitido")
		return nil
	}

	for _, semilla := range productosIniciales {
		categoriaID, ok := categoriaPorNombre[semilla.categoria]
		if !ok {
			categoriaID = categoriaPorNombre[model.NombreSinCategoria]
		}
		imagen := semilla.imagenURL
		p := model.Producto{
			Nombre:      semilla.nombre,
			Precio:      decimal.RequireFromString(semilla.precio),
			Stock:       semilla.stock,
			ImagenURL:   &imagen,
			CategoriaID: &categoriaID,
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	log.Info().Int("productos", len(productosIniciales)).Msg("catálogo de ejemplo creado")
	return nil
}
