// Package geocode resolves region names to bounding boxes through
// the Google Maps Geocoding API.
package geocode

import (
	"context"
	"fmt"
	"os"
	"sync"

	"googlemaps.github.io/maps"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
	clientErr  error
)

// initMapsClient initializes and returns the singleton Maps client.
func initMapsClient() (*maps.Client, error) {
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			clientErr = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, clientErr = maps.NewClient(maps.WithAPIKey(apiKey))
	})
	return mapsClient, clientErr
}

// RegionToBBox geocodes a region name and returns its bounding box as
// [west, south, east, north] in WGS84. The geometry bounds are used
// when the geocoder provides them, the viewport otherwise.
func RegionToBBox(ctx context.Context, regionName string) ([]float64, error) {
	client, err := initMapsClient()
	if err != nil {
		return nil, err
	}

	results, err := client.Geocode(ctx, &maps.GeocodingRequest{Address: regionName})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", regionName, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocode results for %q", regionName)
	}

	bounds := results[0].Geometry.Bounds
	if bounds.NorthEast == bounds.SouthWest {
		bounds = results[0].Geometry.Viewport
	}
	if bounds.NorthEast == bounds.SouthWest {
		return nil, fmt.Errorf("geocode result for %q has no extent", regionName)
	}

	return []float64{
		bounds.SouthWest.Lng,
		bounds.SouthWest.Lat,
		bounds.NorthEast.Lng,
		bounds.NorthEast.Lat,
	}, nil
}
