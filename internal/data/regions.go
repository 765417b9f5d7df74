package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inventory-twin/internal/model"
)

// Region is one Petroleum Administration for Defense District as named by EIA.
type Region struct {
	ID   string `json:"id"`   // EIA duoarea code, e.g. "R20"
	Name string `json:"name"` // area-name, e.g. "PADD 2"
	Desc string `json:"description"`
}

// RegionList is a catalogue of regions.
type RegionList struct {
	Product   string   `json:"product"`
	UpdatedAt string   `json:"updated_at"` // ISO 8601 timestamp
	Regions   []Region `json:"regions"`
}

// DefaultRegions returns the five PADDs plus the U.S. total.
func DefaultRegions() *RegionList {
	return &RegionList{
		Product: DefaultProduct,
		Regions: []Region{
			{ID: "NUS", Name: "U.S.", Desc: "United States total"},
			{ID: "R10", Name: "PADD 1", Desc: "East Coast"},
			{ID: "R20", Name: "PADD 2", Desc: "Midwest"},
			{ID: "R30", Name: "PADD 3", Desc: "Gulf Coast"},
			{ID: "R40", Name: "PADD 4", Desc: "Rocky Mountain"},
			{ID: "R50", Name: "PADD 5", Desc: "West Coast"},
		},
	}
}

// Find looks a region up by ID or name, case-insensitively.
func (l *RegionList) Find(key string) (Region, bool) {
	if l == nil {
		return Region{}, false
	}
	key = strings.TrimSpace(key)
	for _, r := range l.Regions {
		if strings.EqualFold(r.ID, key) || strings.EqualFold(r.Name, key) {
			return r, true
		}
	}
	return Region{}, false
}

// RegionsFromRecords builds a catalogue of the areas present in records, in
// first-seen order. Known areas keep their catalogue ID and description;
// others take the record's duoarea code.
func RegionsFromRecords(records []model.EIARecord, product string, updated time.Time) *RegionList {
	codes := map[string]string{}
	for _, rec := range records {
		name := strings.TrimSpace(rec.AreaName)
		if _, ok := codes[name]; !ok {
			codes[name] = strings.TrimSpace(rec.Duoarea)
		}
	}

	known := DefaultRegions()
	list := &RegionList{Product: product, UpdatedAt: updated.UTC().Format(time.RFC3339)}
	for _, name := range Regions(records) {
		if r, ok := known.Find(name); ok {
			list.Regions = append(list.Regions, r)
			continue
		}
		list.Regions = append(list.Regions, Region{ID: codes[name], Name: name})
	}
	return list
}

// LoadRegions loads a region catalogue from a JSON file.
func LoadRegions(filePath string) (*RegionList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file: %w", err)
	}

	var list RegionList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse regions file: %w", err)
	}

	return &list, nil
}

// SaveRegions saves a region catalogue to a JSON file.
func SaveRegions(list *RegionList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal regions: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write regions file: %w", err)
	}

	return nil
}

// GetDefaultRegionsPath returns the default path for the regions file.
func GetDefaultRegionsPath() string {
	if path := os.Getenv("REGIONS_FILE"); path != "" {
		return path
	}
	return "./data/regions.json"
}
