package domain

import "github.com/pkg/errors"

var (
	ErrInvalidWindow = errors.New("período inválido")
	ErrInvalidMetric = errors.New("métrica inválida")
	ErrInvalidRecord = errors.New("registro de vendas inválido")
)
