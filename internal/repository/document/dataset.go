package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
)

// HouseholdRecord is the stored form of a household. model.Household hides
// the password from JSON, so the document keeps its own shape.
type HouseholdRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Password       string    `json:"password"`
	PasswordScheme string    `json:"password_scheme"`
	Roles          []string  `json:"roles"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func recordFromModel(h *model.Household) HouseholdRecord {
	return HouseholdRecord{
		ID:             h.ID,
		Name:           h.Name,
		Password:       h.Password,
		PasswordScheme: h.PasswordScheme,
		Roles:          append([]string(nil), h.Roles...),
		Active:         h.Active,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

func (r HouseholdRecord) toModel() *model.Household {
	return &model.Household{
		ID:             r.ID,
		Name:           r.Name,
		Password:       r.Password,
		PasswordScheme: r.PasswordScheme,
		Roles:          append([]string(nil), r.Roles...),
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Dataset is the fully migrated, typed document.
type Dataset struct {
	SchemaVersion int               `json:"schema_version"`
	Households    []HouseholdRecord `json:"households"`
	Pantries      []model.Pantry    `json:"pantries"`
	Recipes       []model.Recipe    `json:"recipes"`
	Roles         []model.Role      `json:"roles"`
	Tokens        []model.Token     `json:"tokens"`
}

// NewDataset returns an empty dataset at the current schema version.
func NewDataset() *Dataset {
	return &Dataset{
		SchemaVersion: SchemaVersion,
		Households:    []HouseholdRecord{},
		Pantries:      []model.Pantry{},
		Recipes:       []model.Recipe{},
		Roles:         []model.Role{},
		Tokens:        []model.Token{},
	}
}

// Decode parses raw, runs pending migrations and returns the typed dataset
// along with the schema version found on input. Empty input yields an
// empty dataset.
func Decode(raw []byte) (*Dataset, int, error) {
	if len(raw) == 0 {
		return NewDataset(), SchemaVersion, nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse dataset: %w", err)
	}
	if doc == nil {
		return NewDataset(), SchemaVersion, nil
	}

	from, err := Migrate(doc)
	if err != nil {
		return nil, from, err
	}

	migrated, err := json.Marshal(doc)
	if err != nil {
		return nil, from, fmt.Errorf("re-encode dataset: %w", err)
	}

	ds := NewDataset()
	if err := json.Unmarshal(migrated, ds); err != nil {
		return nil, from, fmt.Errorf("decode dataset: %w", err)
	}
	ds.normalize()
	return ds, from, nil
}

// Encode serialises the dataset with stable ordering.
func Encode(ds *Dataset) ([]byte, error) {
	ds.SchemaVersion = SchemaVersion
	ds.normalize()
	sortRecords(ds.Households)
	sort.SliceStable(ds.Pantries, func(i, j int) bool { return ds.Pantries[i].HouseholdID < ds.Pantries[j].HouseholdID })
	sort.SliceStable(ds.Recipes, func(i, j int) bool { return ds.Recipes[i].Name < ds.Recipes[j].Name })
	sort.SliceStable(ds.Roles, func(i, j int) bool { return ds.Roles[i].Name < ds.Roles[j].Name })
	return json.MarshalIndent(ds, "", "  ")
}

func sortRecords(records []HouseholdRecord) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Name < records[j].Name })
}

func (ds *Dataset) normalize() {
	if ds.Households == nil {
		ds.Households = []HouseholdRecord{}
	}
	if ds.Pantries == nil {
		ds.Pantries = []model.Pantry{}
	}
	if ds.Recipes == nil {
		ds.Recipes = []model.Recipe{}
	}
	if ds.Roles == nil {
		ds.Roles = []model.Role{}
	}
	if ds.Tokens == nil {
		ds.Tokens = []model.Token{}
	}
	for i := range ds.Pantries {
		p := &ds.Pantries[i]
		if p.Lots == nil {
			p.Lots = []model.Lot{}
		}
		if p.ShoppingList == nil {
			p.ShoppingList = []string{}
		}
	}
	for i := range ds.Recipes {
		if ds.Recipes[i].Ingredients == nil {
			ds.Recipes[i].Ingredients = map[string]float64{}
		}
	}
}

func (ds *Dataset) householdIndex(match func(HouseholdRecord) bool) int {
	for i, h := range ds.Households {
		if match(h) {
			return i
		}
	}
	return -1
}

func (ds *Dataset) pantryIndex(householdID string) int {
	for i, p := range ds.Pantries {
		if p.HouseholdID == householdID {
			return i
		}
	}
	return -1
}

func (ds *Dataset) recipeIndex(name string) int {
	for i, r := range ds.Recipes {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func (ds *Dataset) roleIndex(name string) int {
	for i, r := range ds.Roles {
		if r.Name == name {
			return i
		}
	}
	return -1
}
