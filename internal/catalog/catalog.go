// Package catalog maps manufacturer and model names to the numeric ids the
// site expects in query parameters. The tables are static; ids come from the
// site's own taxonomy and change rarely.
package catalog

import (
	"sort"
	"strings"
)

// Manufacturer is one entry in the manufacturer table.
type Manufacturer struct {
	ID     string
	Name   string // English name
	Hebrew string
}

var manufacturers = []Manufacturer{
	{ID: "1", Name: "Audi", Hebrew: "אאודי"},
	{ID: "2", Name: "Opel", Hebrew: "אופל"},
	{ID: "3", Name: "Infiniti", Hebrew: "אינפיניטי"},
	{ID: "4", Name: "Isuzu", Hebrew: "איסוזו"},
	{ID: "5", Name: "Alfa Romeo", Hebrew: "אלפא רומיאו"},
	{ID: "11", Name: "Honda", Hebrew: "הונדה"},
	{ID: "13", Name: "Toyota", Hebrew: "טויוטה"},
	{ID: "15", Name: "Chrysler", Hebrew: "כרייזלר"},
	{ID: "16", Name: "Daihatsu", Hebrew: "דייהטסו"},
	{ID: "18", Name: "Jaguar", Hebrew: "יגואר"},
	{ID: "19", Name: "Hyundai", Hebrew: "יונדאי"},
	{ID: "21", Name: "Kia", Hebrew: "קיה"},
	{ID: "22", Name: "Lexus", Hebrew: "לקסוס"},
	{ID: "23", Name: "Land Rover", Hebrew: "לנד רובר"},
	{ID: "24", Name: "Lincoln", Hebrew: "לינקולן"},
	{ID: "25", Name: "Mazda", Hebrew: "מאזדה"},
	{ID: "26", Name: "MINI", Hebrew: "מיני"},
	{ID: "31", Name: "Porsche", Hebrew: "פורשה"},
	{ID: "32", Name: "Nissan", Hebrew: "ניסן"},
	{ID: "33", Name: "Fiat", Hebrew: "פיאט"},
	{ID: "34", Name: "Peugeot", Hebrew: "פיג'ו"},
	{ID: "35", Name: "Ford", Hebrew: "פורד"},
	{ID: "36", Name: "Renault", Hebrew: "רנו"},
	{ID: "37", Name: "Seat", Hebrew: "סיאט"},
	{ID: "38", Name: "Smart", Hebrew: "סמארט"},
	{ID: "39", Name: "Subaru", Hebrew: "סובארו"},
	{ID: "40", Name: "Saab", Hebrew: "סאאב"},
	{ID: "41", Name: "Suzuki", Hebrew: "סוזוקי"},
	{ID: "42", Name: "Skoda", Hebrew: "סקודה"},
	{ID: "43", Name: "Tesla", Hebrew: "טסלה"},
	{ID: "44", Name: "Dacia", Hebrew: "דאצ'יה"},
	{ID: "45", Name: "Cadillac", Hebrew: "קדילק"},
	{ID: "46", Name: "Volkswagen", Hebrew: "פולקסווגן"},
	{ID: "47", Name: "Volvo", Hebrew: "וולוו"},
	{ID: "48", Name: "BMW", Hebrew: "BMW"},
	{ID: "49", Name: "Mercedes", Hebrew: "מרצדס"},
	{ID: "50", Name: "Mitsubishi", Hebrew: "מיצובישי"},
}

// Model is one entry in the per-manufacturer model table.
type Model struct {
	ID     string
	Name   string
	Hebrew string
}

// Model ids keyed by manufacturer id. Partial table; filters may always
// carry raw model ids for manufacturers not listed here.
var models = map[string][]Model{
	"1":  {{ID: "10004", Name: "A3", Hebrew: "A3"}, {ID: "10005", Name: "A4", Hebrew: "A4"}, {ID: "10006", Name: "A6", Hebrew: "A6"}},
	"13": {{ID: "10226", Name: "Corolla", Hebrew: "קורולה"}, {ID: "10227", Name: "Yaris", Hebrew: "יאריס"}, {ID: "10231", Name: "RAV4", Hebrew: "ראב 4"}},
	"19": {{ID: "10338", Name: "i10", Hebrew: "i10"}, {ID: "10339", Name: "i20", Hebrew: "i20"}, {ID: "10341", Name: "i30", Hebrew: "i30"}, {ID: "10344", Name: "Tucson", Hebrew: "טוסון"}},
	"21": {{ID: "10412", Name: "Picanto", Hebrew: "פיקנטו"}, {ID: "10414", Name: "Rio", Hebrew: "ריו"}, {ID: "10416", Name: "Sportage", Hebrew: "ספורטאז'"}},
	"25": {{ID: "10493", Name: "2", Hebrew: "2"}, {ID: "10494", Name: "3", Hebrew: "3"}, {ID: "10496", Name: "6", Hebrew: "6"}},
	"37": {{ID: "10507", Name: "Ibiza", Hebrew: "איביזה"}, {ID: "10508", Name: "Leon", Hebrew: "לאון"}, {ID: "10509", Name: "Arona", Hebrew: "ארונה"}},
	"42": {{ID: "10541", Name: "Fabia", Hebrew: "פאביה"}, {ID: "10542", Name: "Octavia", Hebrew: "אוקטביה"}, {ID: "10544", Name: "Superb", Hebrew: "סופרב"}},
	"46": {{ID: "10581", Name: "Golf", Hebrew: "גולף"}, {ID: "10582", Name: "Polo", Hebrew: "פולו"}, {ID: "10584", Name: "Passat", Hebrew: "פאסאט"}},
}

// Manufacturers returns the manufacturer table ordered by English name.
func Manufacturers() []Manufacturer {
	out := make([]Manufacturer, len(manufacturers))
	copy(out, manufacturers)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ManufacturerName returns the English name for a manufacturer id, or the id
// itself when unknown.
func ManufacturerName(id string) string {
	for _, m := range manufacturers {
		if m.ID == id {
			return m.Name
		}
	}
	return id
}

// FindManufacturer resolves a manufacturer by id or by name (English or
// Hebrew, case-insensitive). Returns the id and whether it was found.
func FindManufacturer(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, m := range manufacturers {
		if m.ID == s {
			return m.ID, true
		}
	}
	for _, m := range manufacturers {
		if strings.EqualFold(m.Name, s) || m.Hebrew == s {
			return m.ID, true
		}
	}
	return "", false
}

// Models returns the known models for a manufacturer id. The table is not
// exhaustive; an empty result does not mean the manufacturer has no models.
func Models(manufacturerID string) []Model {
	out := make([]Model, len(models[manufacturerID]))
	copy(out, models[manufacturerID])
	return out
}

// FindModel resolves a model by id or by name within one manufacturer.
func FindModel(manufacturerID, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, m := range models[manufacturerID] {
		if m.ID == s {
			return m.ID, true
		}
	}
	for _, m := range models[manufacturerID] {
		if strings.EqualFold(m.Name, s) || m.Hebrew == s {
			return m.ID, true
		}
	}
	return "", false
}
