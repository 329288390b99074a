package database

import (
	"github.com/Ketchio-dev/note-web-sub000/core/domain"
)

// Schema is the property set of one database parent page, with lookups the
// engines need: filters and sorts resolve properties by id, formulas by
// display name.
type Schema struct {
	properties []domain.Property
	byID       map[string]int
	byName     map[string]int
}

func NewSchema(properties []domain.Property) *Schema {
	s := &Schema{
		properties: properties,
		byID:       make(map[string]int, len(properties)),
		byName:     make(map[string]int, len(properties)),
	}
	for i, p := range properties {
		s.byID[p.ID] = i
		// first property wins on duplicate names, same as the name-based
		// formula resolution
		if _, ok := s.byName[p.Name]; !ok {
			s.byName[p.Name] = i
		}
	}
	return s
}

// Properties returns the columns in array order, which is column order.
func (s *Schema) Properties() []domain.Property {
	return s.properties
}

func (s *Schema) PropertyByID(id string) *domain.Property {
	if s == nil {
		return nil
	}
	if i, ok := s.byID[id]; ok {
		return &s.properties[i]
	}
	return nil
}

func (s *Schema) PropertyByName(name string) *domain.Property {
	if s == nil {
		return nil
	}
	if i, ok := s.byName[name]; ok {
		return &s.properties[i]
	}
	return nil
}

// PropertyMap flattens a page into name-keyed values for formula evaluation.
// Formulas reference siblings by display name, so a rename silently breaks
// them; that matches the shipped behavior.
func (s *Schema) PropertyMap(page domain.Page) map[string]domain.Value {
	res := make(map[string]domain.Value, len(s.properties))
	for _, p := range s.properties {
		if v := page.Value(p.ID); v.Ok() {
			res[p.Name] = v
		}
	}
	return res
}

func (s *Schema) Validate() error {
	for _, p := range s.properties {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
