// zone-import bulk-creates danger zones from an ESRI shapefile, one
// POST per shape. Facilities teams supply the shapefile; severity,
// status and radius are applied uniformly across the file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/config"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/models"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/session"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/shapeimport"
	"github.com/ATRam3/campus-safe-admin-sub000/pkg/logger"
)

func main() {
	shapefilePath := flag.String("shapefile", "", "Path to the .shp file to import (required)")
	severity := flag.String("severity", "medium", "Severity applied to every imported zone (low, medium, high)")
	status := flag.String("status", "under_review", "Status applied to every imported zone (active, inactive, under_review)")
	radius := flag.Float64("radius", 50, "Radius in meters applied to every imported zone")
	dryRun := flag.Bool("dry-run", false, "Convert and validate without creating anything")
	flag.Parse()

	if *shapefilePath == "" {
		fmt.Println("Error: --shapefile is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		fmt.Printf("Error setting up logger: %v\n", err)
		os.Exit(1)
	}

	records, err := shapeimport.ReadZones(*shapefilePath, shapeimport.Options{
		Severity: models.ParseZoneSeverity(*severity),
		Status:   models.ZoneStatus(*status),
		Radius:   *radius,
	})
	if err != nil {
		fmt.Printf("Error reading shapefile: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("Shapefile contains no shapes, nothing to import.")
		return
	}

	// Imports reuse the console's persisted session for auth.
	sessions, err := session.NewStore(cfg.SessionPath())
	if err != nil {
		fmt.Printf("Error opening session store: %v\n", err)
		os.Exit(1)
	}
	if !*dryRun && !sessions.LoggedIn() {
		fmt.Println("Error: no session found. Sign in with campus-safe-admin first.")
		os.Exit(1)
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, sessions, log)

	created, skipped, failed := 0, 0, 0
	for i, record := range records {
		if record.Err != nil {
			fmt.Printf("  [%d/%d] SKIP %s: %v\n", i+1, len(records), record.Payload.Name, record.Err)
			skipped++
			continue
		}
		if *dryRun {
			fmt.Printf("  [%d/%d] OK   %s (%.5f, %.5f) severity=%s radius=%.0fm\n",
				i+1, len(records), record.Payload.Name,
				record.Payload.Latitude, record.Payload.Longitude,
				record.Payload.Severity, record.Payload.Radius)
			created++
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		zone, err := client.CreateZone(ctx, record.Payload)
		cancel()
		if err != nil {
			fmt.Printf("  [%d/%d] FAIL %s: %v\n", i+1, len(records), record.Payload.Name, err)
			log.WithError(err).WithField("zone", record.Payload.Name).Error("zone import failed")
			failed++
			continue
		}
		fmt.Printf("  [%d/%d] OK   %s (id %s)\n", i+1, len(records), zone.Name, zone.ID)
		created++
	}

	verb := "Created"
	if *dryRun {
		verb = "Validated"
	}
	fmt.Printf("%s %d zone(s), skipped %d, failed %d.\n", verb, created, skipped, failed)
	if failed > 0 || skipped > 0 {
		os.Exit(1)
	}
}
