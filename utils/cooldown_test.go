package utils

import (
	"testing"
	"time"
)

func TestCooldownRemaining(t *testing.T) {
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{name: "recien enviado", elapsed: 0, want: 3 * time.Minute},
		{name: "a mitad de la ventana", elapsed: 90 * time.Second, want: 90 * time.Second},
		{name: "ventana exacta", elapsed: 180 * time.Second, want: 0},
		{name: "ventana vencida", elapsed: 10 * time.Minute, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CooldownRemaining(base, base.Add(tt.elapsed))
			if got != tt.want {
				t.Errorf("CooldownRemaining(+%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}
