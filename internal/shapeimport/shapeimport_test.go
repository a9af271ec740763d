package shapeimport

import (
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// writeTestShapefile builds a two-polygon shapefile with NAME
// attributes, one on campus and one with no usable name.
func writeTestShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campus.shp")

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("creating shapefile: %v", err)
	}

	fields := []shp.Field{shp.StringField("NAME", 30)}
	w.SetFields(fields)

	library := shp.Polygon(*shp.NewPolyLine([][]shp.Point{{
		{X: 38.80, Y: 8.88},
		{X: 38.82, Y: 8.88},
		{X: 38.82, Y: 8.90},
		{X: 38.80, Y: 8.90},
	}}))
	w.Write(&library)
	w.WriteAttribute(0, 0, "Library Steps")

	unnamed := shp.Polygon(*shp.NewPolyLine([][]shp.Point{{
		{X: 38.70, Y: 8.80},
		{X: 38.72, Y: 8.80},
		{X: 38.72, Y: 8.82},
	}}))
	w.Write(&unnamed)
	w.WriteAttribute(1, 0, "")

	w.Close()
	return path
}

func TestReadZones(t *testing.T) {
	path := writeTestShapefile(t)

	records, err := ReadZones(path, Options{
		Severity: models.SeverityHigh,
		Status:   models.ZoneUnderReview,
		Radius:   150,
	})
	if err != nil {
		t.Fatalf("ReadZones() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ReadZones() returned %d records, want 2", len(records))
	}

	first := records[0]
	if first.Err != nil {
		t.Errorf("first record should validate, got %v", first.Err)
	}
	if first.Payload.Name != "Library Steps" {
		t.Errorf("name = %q, want Library Steps", first.Payload.Name)
	}
	if first.Payload.Severity != models.SeverityHigh || first.Payload.Status != models.ZoneUnderReview {
		t.Errorf("options not applied: %+v", first.Payload)
	}
	// Bounding-box centroid of the library polygon.
	if got := first.Payload.Latitude; got < 8.88 || got > 8.90 {
		t.Errorf("latitude = %f, want centroid within [8.88, 8.90]", got)
	}
	if got := first.Payload.Longitude; got < 38.80 || got > 38.82 {
		t.Errorf("longitude = %f, want centroid within [38.80, 38.82]", got)
	}

	second := records[1]
	if second.Payload.Name != "Imported area 2" {
		t.Errorf("fallback name = %q, want Imported area 2", second.Payload.Name)
	}
}

func TestReadZones_InvalidOptionsFlagRecords(t *testing.T) {
	path := writeTestShapefile(t)

	// Radius below the platform minimum fails per-record validation
	// without aborting the read.
	records, err := ReadZones(path, Options{
		Severity: models.SeverityLow,
		Status:   models.ZoneActive,
		Radius:   5,
	})
	if err != nil {
		t.Fatalf("ReadZones() error: %v", err)
	}
	for i, rec := range records {
		if rec.Err == nil {
			t.Errorf("record %d should fail radius validation", i)
		}
	}
}

func TestReadZones_MissingFile(t *testing.T) {
	_, err := ReadZones(filepath.Join(t.TempDir(), "nope.shp"), Options{})
	if err == nil {
		t.Error("expected an error for a missing shapefile")
	}
}
