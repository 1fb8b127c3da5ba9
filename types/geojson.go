package types

// GeoJSONGeometry is a Polygon geometry.
type GeoJSONGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// GeoJSONFeature wraps one patch for map clients.
type GeoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   GeoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// GeoJSONFeatureCollection is the /geojson response shape.
type GeoJSONFeatureCollection struct {
	Type       string           `json:"type"`
	Features   []GeoJSONFeature `json:"features"`
	Properties map[string]any   `json:"properties"`
}

// ToFeature converts a patch to a GeoJSON Feature with its scoring
// attributes as properties.
func (p PatchInfo) ToFeature() GeoJSONFeature {
	props := map[string]any{
		"id":            p.ID,
		"severity":      p.Severity,
		"area_hectares": p.AreaHectares,
		"confidence":    p.Confidence,
		"ndvi_drop":     p.NdviDrop,
		"centroid":      p.Centroid,
	}
	if p.Impact != nil {
		props["impact"] = *p.Impact
	}
	return GeoJSONFeature{
		Type: "Feature",
		Geometry: GeoJSONGeometry{
			Type:        "Polygon",
			Coordinates: p.Coordinates,
		},
		Properties: props,
	}
}
