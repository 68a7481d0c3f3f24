package metricsapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/okian/envcharts/internal/domain/model"
)

const cityKey = "city"

var errInvalidJSON = errors.New("body is not a single valid JSON value")

// Decode parses a metrics payload. Object members become series, keeping the
// document order of both series and labels. A repeated key keeps its first
// position and takes the last value. A top-level "city" string is kept; other
// scalar members are ignored.
func Decode(data []byte) (model.MetricsResponse, error) {
	// jsonparser walks lazily and accepts trailing bytes and commas.
	if !json.Valid(data) {
		return model.MetricsResponse{}, fmt.Errorf("%w: %w", ErrDecode, errInvalidJSON)
	}

	var resp model.MetricsResponse
	index := make(map[string]int)
	err := jsonparser.ObjectEach(data, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		name := string(key)
		switch typ {
		case jsonparser.Object:
			s, err := decodeSeries(name, value)
			if err != nil {
				return err
			}
			if i, ok := index[name]; ok {
				resp.Series[i] = s
				return nil
			}
			index[name] = len(resp.Series)
			resp.Series = append(resp.Series, s)
		case jsonparser.String:
			if name == cityKey {
				city, err := jsonparser.ParseString(value)
				if err != nil {
					return fmt.Errorf("%s: %w", cityKey, err)
				}
				resp.City = city
			}
		}
		return nil
	})
	if err != nil {
		return model.MetricsResponse{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return resp, nil
}

func decodeSeries(name string, data []byte) (model.Series, error) {
	s := model.Series{Name: name, Points: []model.Point{}}
	index := make(map[string]int)
	err := jsonparser.ObjectEach(data, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		if typ != jsonparser.Number {
			return fmt.Errorf("series %q label %q: %s is not a number", name, key, typ)
		}
		v, err := jsonparser.ParseFloat(value)
		if err != nil {
			return fmt.Errorf("series %q label %q: %w", name, key, err)
		}
		label := string(key)
		if i, ok := index[label]; ok {
			s.Points[i].Value = v
			return nil
		}
		index[label] = len(s.Points)
		s.Points = append(s.Points, model.Point{Label: label, Value: v})
		return nil
	})
	return s, err
}
