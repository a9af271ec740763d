package models

import (
	"testing"
)

func validZone() Zone {
	return Zone{
		Name:      "Library Steps",
		Severity:  SeverityHigh,
		Status:    ZoneActive,
		Radius:    120,
		Latitude:  8.89,
		Longitude: 38.81,
	}
}

func TestZone_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Zone)
		wantErr bool
	}{
		{"valid zone", func(z *Zone) {}, false},
		{"missing name", func(z *Zone) { z.Name = "" }, true},
		{"radius too small", func(z *Zone) { z.Radius = 9 }, true},
		{"radius too large", func(z *Zone) { z.Radius = 1001 }, true},
		{"radius at lower bound", func(z *Zone) { z.Radius = 10 }, false},
		{"radius at upper bound", func(z *Zone) { z.Radius = 1000 }, false},
		{"latitude out of range", func(z *Zone) { z.Latitude = 91 }, true},
		{"longitude out of range", func(z *Zone) { z.Longitude = -181 }, true},
		{"unknown severity", func(z *Zone) { z.Severity = "critical" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := validZone()
			tt.mutate(&z)
			err := z.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Zone.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseZoneSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want ZoneSeverity
	}{
		{"low", SeverityLow},
		{"medium", SeverityMedium},
		{"high", SeverityHigh},
		{"bogus", SeverityLow},
		{"", SeverityLow},
	}

	for _, tt := range tests {
		if got := ParseZoneSeverity(tt.in); got != tt.want {
			t.Errorf("ParseZoneSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
