package models

import "testing"

func TestStatusNext(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		next   Status
		ok     bool
	}{
		{name: "pendiente avanza a en_proceso", status: Pendiente, next: EnProceso, ok: true},
		{name: "en_proceso avanza a resuelto", status: EnProceso, next: Resuelto, ok: true},
		{name: "resuelto es terminal", status: Resuelto, ok: false},
		{name: "estado desconocido", status: Status("cancelado"), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.status.Next()
			if ok != tt.ok {
				t.Fatalf("Next() ok = %v, want %v", ok, tt.ok)
			}
			if ok && next != tt.next {
				t.Errorf("Next() = %q, want %q", next, tt.next)
			}
		})
	}
}

func TestStatusChainIsMonotonic(t *testing.T) {
	// Following Next from pendiente must walk the full chain exactly once
	// and never revisit a state.
	seen := map[Status]bool{}
	s := Pendiente
	order := []Status{s}
	for {
		if seen[s] {
			t.Fatalf("transition chain revisited %q", s)
		}
		seen[s] = true
		next, ok := s.Next()
		if !ok {
			break
		}
		s = next
		order = append(order, s)
	}

	want := []Status{Pendiente, EnProceso, Resuelto}
	if len(order) != len(want) {
		t.Fatalf("chain = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("chain = %v, want %v", order, want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("Valid() = false for known category %q", c)
		}
	}
	for _, c := range []Category{"", "basura", "ALUMBRADO"} {
		if c.Valid() {
			t.Errorf("Valid() = true for unknown category %q", c)
		}
	}
}

func TestIncidentHasCoordinates(t *testing.T) {
	lat, lng := -13.0769, -76.3858

	inc := Incident{Location: Location{Direccion: "Av. Mariscal Benavides 398"}}
	if inc.HasCoordinates() {
		t.Error("HasCoordinates() = true without coordinates")
	}

	inc.Location.Lat = &lat
	if inc.HasCoordinates() {
		t.Error("HasCoordinates() = true with only latitude")
	}

	inc.Location.Lng = &lng
	if !inc.HasCoordinates() {
		t.Error("HasCoordinates() = false with both coordinates")
	}
}
