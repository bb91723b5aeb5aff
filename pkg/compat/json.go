package compat

import (
	"encoding/json"
	"fmt"
)

// Document is the serialized form of a [Matrix].
type Document struct {
	Components    map[string][]string          `json:"components"`
	Compatibility map[string]map[string][]Pair `json:"compatibility"`
}

// MarshalJSON encodes a pair as a two-element array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Version, p.With})
}

// UnmarshalJSON decodes a two-element array of strings.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("compatibility pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("compatibility pair: want 2 versions, got %d", len(raw))
	}
	p.Version, p.With = raw[0], raw[1]
	return nil
}

// Document returns a copy of the matrix contents in serializable form.
func (m *Matrix) Document() Document {
	doc := Document{
		Components:    make(map[string][]string, len(m.versions)),
		Compatibility: make(map[string]map[string][]Pair, len(m.pairs)),
	}
	for name, versions := range m.versions {
		doc.Components[name] = append([]string{}, versions...)
	}
	for name, targets := range m.pairs {
		out := make(map[string][]Pair, len(targets))
		for other, pairs := range targets {
			out[other] = append([]Pair{}, pairs...)
		}
		doc.Compatibility[name] = out
	}
	return doc
}

// ToJSON encodes the matrix as indented JSON with top-level "components"
// and "compatibility" keys.
func (m *Matrix) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m.Document(), "", "  ")
}

// FromJSON restores a matrix encoded by [Matrix.ToJSON].
//
// Pairs are re-registered one by one, so the restored matrix is symmetric
// even when the input was edited by hand. Malformed input yields an empty
// matrix; the decode error is logged, never returned.
func FromJSON(data []byte, opts ...Option) *Matrix {
	m := New(opts...)

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		m.logger.Error("failed to parse compatibility matrix", "err", err)
		return m
	}
	m.Load(doc)
	m.logger.Debug("restored compatibility matrix", "components", len(m.Components()))
	return m
}

// Load merges doc into the matrix.
func (m *Matrix) Load(doc Document) {
	for name, versions := range doc.Components {
		m.addVersion(name, "")
		for _, v := range versions {
			m.addVersion(name, v)
		}
	}
	for name, targets := range doc.Compatibility {
		if _, ok := m.pairs[name]; !ok {
			m.pairs[name] = make(map[string][]Pair)
		}
		for other, pairs := range targets {
			for _, p := range pairs {
				m.RegisterCompatibility(name, p.Version, other, p.With)
			}
		}
	}
}
