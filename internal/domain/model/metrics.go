// Package model contains domain models passed between layers.
package model

// Point is one (category label, value) pair of a metric series.
type Point struct {
	Label string
	Value float64
}

// Series is a named metric mapping, e.g. "air_quality" -> {"PM2.5": 12, "CO2": 400}.
// Points keep the order in which the labels appeared in the source payload.
type Series struct {
	Name   string
	Points []Point
}

// Labels returns the category labels in source order.
func (s Series) Labels() []string {
	out := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Label)
	}
	return out
}

// Values returns the values in source order, aligned with Labels.
func (s Series) Values() []float64 {
	out := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Value)
	}
	return out
}

// MetricsResponse is a single snapshot returned by the metrics endpoint.
type MetricsResponse struct {
	// City echoes the optional top-level "city" member.
	City string
	// Series holds every object-valued member in document order.
	Series []Series
}

// Lookup returns the series with the given name.
func (r MetricsResponse) Lookup(name string) (Series, bool) {
	for _, s := range r.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Names lists the series names in document order.
func (r MetricsResponse) Names() []string {
	out := make([]string, 0, len(r.Series))
	for _, s := range r.Series {
		out = append(out, s.Name)
	}
	return out
}
