// Package firms fetches active fire detections from the NASA FIRMS
// area API for a bounding box.
package firms

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"
)

const (
	// Area API: /api/area/csv/{KEY}/{SOURCE}/{west,south,east,north}/{days}
	firmsBase = "https://firms.modaps.eosdis.nasa.gov/api/area/csv"
	source    = "VIIRS_SNPP_NRT"
)

var client = &http.Client{Timeout: 15 * time.Second}

// Hotspot is one VIIRS fire detection.
type Hotspot struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	AcqDate    string  `json:"acq_date"`
	Brightness string  `json:"brightness"`
}

// FetchHotspots queries the last 1-5 days of detections inside bbox
// [west, south, east, north]. Missing key or any fetch failure yields
// an empty list, never an error: hotspots are advisory context.
func FetchHotspots(bbox []float64, days int, apiKey string) []Hotspot {
	if apiKey == "" {
		log.Println("NASA FIRMS key not configured")
		return nil
	}
	if len(bbox) != 4 {
		return nil
	}
	if days < 1 {
		days = 1
	}
	if days > 5 {
		days = 5
	}

	url := fmt.Sprintf("%s/%s/%s/%g,%g,%g,%g/%d",
		firmsBase, apiKey, source, bbox[0], bbox[1], bbox[2], bbox[3], days)

	resp, err := client.Get(url)
	if err != nil {
		log.Printf("FIRMS fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("FIRMS fetch returned status %d", resp.StatusCode)
		return nil
	}
	return parseCSV(resp.Body)
}

func parseCSV(r io.Reader) []Hotspot {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	var rows []Hotspot
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		lat, latErr := strconv.ParseFloat(field(record, idx, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(field(record, idx, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		rows = append(rows, Hotspot{
			Lat:        lat,
			Lon:        lon,
			AcqDate:    field(record, idx, "acq_date"),
			Brightness: field(record, idx, "bright_ti4"),
		})
	}
	return rows
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
