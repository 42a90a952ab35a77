package infra

import (
	"fmt"

	"heladopos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate so a fresh deployment needs no manual schema step.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// disposable database.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Sucursal{},
		&model.Sabor{},
		&model.SaborStock{},
		&model.Insumo{},
		&model.InsumoStock{},
		&model.Producto{},
		&model.ComboItem{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Cierre{},
		&model.MovimientoStock{},
		&model.HistorialPrecio{},
		&model.Usuario{},
	)
}
