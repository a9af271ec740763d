// Package shapeimport turns ESRI shapefiles of campus risk areas into
// danger-zone payloads. Facilities teams tend to hand over shapefiles;
// this is the bridge from those to the platform API.
package shapeimport

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
)

// Options applies uniform zone settings across an imported file
type Options struct {
	Severity models.ZoneSeverity
	Status   models.ZoneStatus
	Radius   float64
}

// Record is one shapefile entry converted to a zone payload. Err is
// set when the record fails the same validation the create form runs.
type Record struct {
	Payload api.ZonePayload
	Err     error
}

// ReadZones converts every shape in the file to a zone payload. The
// zone location is the shape's bounding-box centroid; the name comes
// from a NAME or ZONE attribute, falling back to the record number.
func ReadZones(shapefilePath string, opts Options) ([]Record, error) {
	reader, err := shp.Open(shapefilePath)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer reader.Close()

	nameField := findNameField(reader.Fields())

	var records []Record
	for reader.Next() {
		n, shape := reader.Shape()

		name := ""
		if nameField >= 0 {
			name = strings.TrimSpace(reader.ReadAttribute(n, nameField))
		}
		if name == "" {
			name = fmt.Sprintf("Imported area %d", n+1)
		}

		bbox := shape.BBox()
		payload := api.ZonePayload{
			Name:        name,
			Severity:    opts.Severity,
			Status:      opts.Status,
			Description: fmt.Sprintf("Imported from %s", shapefilePath),
			Radius:      opts.Radius,
			Latitude:    (bbox.MinY + bbox.MaxY) / 2,
			Longitude:   (bbox.MinX + bbox.MaxX) / 2,
		}

		records = append(records, Record{
			Payload: payload,
			Err:     validate(payload),
		})
	}

	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reading shapefile: %w", err)
	}
	return records, nil
}

// validate runs the same checks the create form applies
func validate(p api.ZonePayload) error {
	z := models.Zone{
		Name:      p.Name,
		Severity:  p.Severity,
		Status:    p.Status,
		Radius:    p.Radius,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
	return z.Validate()
}

// findNameField locates a NAME or ZONE attribute in the DBF schema
func findNameField(fields []shp.Field) int {
	preferred := []string{"NAME", "ZONE"}
	for _, want := range preferred {
		for i, f := range fields {
			if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), want) {
				return i
			}
		}
	}
	return -1
}
