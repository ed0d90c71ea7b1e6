package domain

import (
	"time"

	"github.com/pkg/errors"
)

const (
	PresetLast7Days  = "last_7_days"
	PresetLast30Days = "last_30_days"
	PresetFull       = "full"
)

// DateWindow é um intervalo inclusivo de dias [Start, End]
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateWindow normaliza as datas para dias de calendário
func NewDateWindow(start, end time.Time) DateWindow {
	return DateWindow{Start: Day(start), End: Day(end)}
}

// FullSpan retorna a janela do primeiro ao último registro.
// Para uma sequência vazia retorna a janela zero.
func FullSpan(records []SalesRecord) DateWindow {
	if len(records) == 0 {
		return DateWindow{}
	}

	return NewDateWindow(records[0].Date, records[len(records)-1].Date)
}

// Contains verifica se o dia de t está dentro da janela
func (w DateWindow) Contains(t time.Time) bool {
	day := Day(t)
	return !day.Before(Day(w.Start)) && !day.After(Day(w.End))
}

// Days retorna a quantidade de dias de calendário cobertos pela janela
func (w DateWindow) Days() int {
	return int(Day(w.End).Sub(Day(w.Start)).Hours()/24) + 1
}

// Validate aplica as restrições do seletor de período: início <= fim e
// no máximo maxDays dias (maxDays <= 0 desativa o limite).
func (w DateWindow) Validate(maxDays int) error {
	if Day(w.Start).After(Day(w.End)) {
		return errors.Wrapf(ErrInvalidWindow, "início %s após o fim %s",
			w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
	}

	if maxDays > 0 && w.Days() > maxDays {
		return errors.Wrapf(ErrInvalidWindow, "período de %d dias excede o máximo de %d", w.Days(), maxDays)
	}

	return nil
}

// PresetWindow resolve um atalho de período ancorado no último registro
func PresetWindow(records []SalesRecord, preset string) (DateWindow, error) {
	full := FullSpan(records)

	switch preset {
	case "", PresetFull:
		return full, nil
	case PresetLast7Days:
		return NewDateWindow(full.End.AddDate(0, 0, -6), full.End), nil
	case PresetLast30Days:
		return NewDateWindow(full.End.AddDate(0, 0, -29), full.End), nil
	}

	return DateWindow{}, errors.Wrapf(ErrInvalidWindow, "atalho de período desconhecido %q", preset)
}
