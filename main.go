package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/cwarden/tripline/internal/config"
	"github.com/cwarden/tripline/internal/feed"
	"github.com/cwarden/tripline/internal/itinerary"
	"github.com/cwarden/tripline/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
)

func main() {
	// Parse command line flags
	var (
		configFile  = flag.String("config", "", "Path to config file")
		itinFile    = flag.String("itinerary", "", "Local itinerary CSV (overrides the sheet URL)")
		lodgingFile = flag.String("lodging", "", "Local lodging CSV (overrides the sheet URL)")
		zoneName    = flag.String("zone", "", "Display timezone (must be in the configured zone table)")
		listDays    = flag.Bool("list", false, "Print the itinerary and exit")
		version     = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("Tripline 0.1.0")
		return
	}

	// Load configuration
	path := *configFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *zoneName != "" {
		if _, ok := cfg.Zones[*zoneName]; !ok {
			log.Fatalf("Unknown zone %q; configured zones: %v", *zoneName, zoneList(cfg))
		}
		cfg.DisplayZone = *zoneName
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	zones := itinerary.Zones(cfg.Zones)
	cols := feedColumns(cfg)

	// Pick the itinerary source: local files win over the sheet.
	var source feed.Source
	switch {
	case *itinFile != "" || cfg.Files.Itinerary != "":
		itinPath := *itinFile
		if itinPath == "" {
			itinPath = cfg.Files.Itinerary
		}
		lodgingPath := *lodgingFile
		if lodgingPath == "" {
			lodgingPath = cfg.Files.Lodging
		}
		source = feed.NewFileSource(itinPath, lodgingPath, cols, zones)
	case cfg.Sheet.ItineraryURL != "":
		source = feed.NewSheetSource(cfg.Sheet.ItineraryURL, cfg.Sheet.LodgingURL, cols, zones, logger)
	default:
		log.Fatal("No itinerary source configured; set sheet.itinerary_url or files.itinerary")
	}

	// List mode
	if *listDays {
		listItinerary(cfg, zones, source)
		return
	}

	// Start TUI
	model := ui.NewModel(cfg, source, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, runErr := p.Run()

	// Stop any file watcher before reporting; recurring work must not
	// outlive the program.
	if w, ok := source.(feed.Watchable); ok {
		w.Close()
	}
	if runErr != nil {
		log.Fatalf("Error running program: %v", runErr)
	}
}

func zoneList(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Zones))
	for name := range cfg.Zones {
		names = append(names, name)
	}
	return names
}

func feedColumns(cfg *config.Config) feed.Columns {
	return feed.Columns{
		StartDate:   cfg.Columns.StartDate,
		StartTime:   cfg.Columns.StartTime,
		EndDate:     cfg.Columns.EndDate,
		EndTime:     cfg.Columns.EndTime,
		Title:       cfg.Columns.Title,
		Zone:        cfg.Columns.Zone,
		Note:        cfg.Columns.Note,
		LodgingDate: cfg.Columns.LodgingDate,
		LodgingName: cfg.Columns.LodgingName,
	}
}

func listItinerary(cfg *config.Config, zones itinerary.Zones, source feed.Source) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	events, err := source.Events(ctx)
	if err != nil {
		log.Fatalf("Error fetching itinerary: %v", err)
	}
	lodging, err := source.Lodging(ctx)
	if err != nil {
		log.Printf("Warning: lodging fetch failed: %v", err)
	}

	buckets, err := zones.BuildBuckets(events, cfg.DisplayZone)
	if err != nil {
		log.Fatalf("Error bucketing events: %v", err)
	}

	if len(buckets.Dates) == 0 {
		fmt.Println("No events found.")
		return
	}

	header := color.New(color.FgYellow, color.Bold)
	hotel := color.New(color.FgCyan)

	fmt.Printf("Itinerary in %s:\n", cfg.DisplayZone)
	for _, date := range buckets.Dates {
		header.Printf("\n%s  %s\n", date, itinerary.FormatDisplayDate(date))
		for _, l := range lodging {
			if l.Date == date {
				hotel.Printf("  stay: %s\n", l.Name)
			}
		}
		for _, seg := range buckets.ByDate[date] {
			if itinerary.ToMinutes(seg.End) <= itinerary.ToMinutes(seg.Start) {
				continue
			}
			fmt.Printf("  %s - %s  %s\n", seg.Start, seg.End, seg.Title)
			if seg.Note != "" {
				fmt.Printf("      %s\n", seg.Note)
			}
		}
	}
}
