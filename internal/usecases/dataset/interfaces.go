package dataset

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// RecordSource é qualquer origem capaz de produzir a série diária completa
type RecordSource interface {
	Name() string
	Load(ctx context.Context) ([]domain.SalesRecord, error)
}

// Provider expõe o snapshot atual para os casos de uso de leitura
type Provider interface {
	// Current retorna o snapshot vigente; ErrEmptyDataset se nada foi carregado ainda
	Current() (*domain.Dataset, error)

	// Refresh recarrega a origem e troca o snapshot de forma atômica
	Refresh(ctx context.Context) (*domain.Dataset, error)

	// Status descreve a última recarga
	Status() Status
}
