package utils

import (
	"fmt"
	"time"
)

var layoutsData = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDataHora aceita os formatos enviados pelos formulários e pelo front.
func ParseDataHora(s string) (time.Time, error) {
	for _, l := range layoutsData {
		if t, err := time.ParseInLocation(l, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", s)
}

// InicioDoDia zera o horário mantendo a localização.
func InicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FimDoDia devolve 23:59:59.999999999 do mesmo dia.
func FimDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
