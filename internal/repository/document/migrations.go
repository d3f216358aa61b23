package document

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// SchemaVersion is the dataset version this build reads and writes.
const SchemaVersion = 3

const legacyDateLayout = "2006-01-02"

// Migration upgrades a raw dataset document by one version in place.
type Migration struct {
	Up          func(doc map[string]interface{}) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Typed household list from the legacy name-keyed map",
		Up:          migrateLegacyMap,
	},
	{
		Version:     2,
		Description: "Shared recipe catalog from per-household recipes",
		Up:          hoistRecipes,
	},
	{
		Version:     3,
		Description: "Household ids, roles, lot ids and pantry versions",
		Up:          assignIdentity,
	},
}

// Migrate applies every pending migration to doc and returns the version
// doc had before. A document without schema_version is the legacy layout.
func Migrate(doc map[string]interface{}) (int, error) {
	from, err := detectVersion(doc)
	if err != nil {
		return 0, err
	}
	if from > SchemaVersion {
		return from, fmt.Errorf("dataset schema version %d is newer than supported %d", from, SchemaVersion)
	}

	for _, migration := range migrations {
		if migration.Version <= from {
			continue
		}
		if err := migration.Up(doc); err != nil {
			return from, fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}
		doc["schema_version"] = migration.Version

		log.Info().
			Int("version", migration.Version).
			Str("description", migration.Description).
			Msg("Applied dataset migration")
	}
	return from, nil
}

func detectVersion(doc map[string]interface{}) (int, error) {
	raw, ok := doc["schema_version"]
	if !ok {
		return 0, nil
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid schema_version %v: %w", raw, err)
	}
	return v, nil
}

// migrateLegacyMap turns {"<household>": {passwort, vorrat, rezepte, einkauf}}
// into {"households": [...]} sorted by name.
func migrateLegacyMap(doc map[string]interface{}) error {
	names := make([]string, 0, len(doc))
	for name := range doc {
		if name != "schema_version" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	households := make([]interface{}, 0, len(names))
	for _, name := range names {
		entry := object(doc[name])
		delete(doc, name)
		if entry == nil || strings.TrimSpace(name) == "" {
			log.Warn().Str("household", name).Msg("Skipping malformed legacy household")
			continue
		}

		stats := object(entry["statistik"])
		households = append(households, map[string]interface{}{
			"name":            name,
			"password":        cast.ToString(entry["passwort"]),
			"password_scheme": model.SchemeLegacySHA256,
			"lots":            legacyLots(name, entry["vorrat"]),
			"recipes":         legacyRecipes(entry["rezepte"]),
			"shopping_list":   stringList(entry["einkauf"]),
			"stats": map[string]interface{}{
				"consumed":  cast.ToInt(stats["verbraucht"]),
				"discarded": cast.ToInt(stats["weggeworfen"]),
			},
		})
	}
	doc["households"] = households
	return nil
}

func legacyLots(household string, raw interface{}) []interface{} {
	lots := make([]interface{}, 0)
	for _, item := range list(raw) {
		entry := object(item)
		name := strings.TrimSpace(cast.ToString(entry["artikel"]))
		qty, err := cast.ToFloat64E(entry["menge"])
		if entry == nil || name == "" || err != nil || qty <= 0 {
			log.Warn().Str("household", household).Interface("item", item).Msg("Skipping malformed legacy lot")
			continue
		}

		location, ok := model.ParseLocation(cast.ToString(entry["ort"]))
		if !ok {
			log.Warn().Str("household", household).Str("location", cast.ToString(entry["ort"])).Msg("Unknown legacy location, using other")
		}

		lot := map[string]interface{}{
			"name":     name,
			"quantity": qty,
			"unit":     cast.ToString(entry["einheit"]),
			"location": string(location),
		}
		if mhd := strings.TrimSpace(cast.ToString(entry["mhd"])); mhd != "" {
			if exp, err := time.Parse(legacyDateLayout, mhd); err == nil {
				lot["expiry"] = exp.UTC().Format(time.RFC3339)
			}
		}
		lots = append(lots, lot)
	}
	return lots
}

func legacyRecipes(raw interface{}) map[string]interface{} {
	recipes := make(map[string]interface{})
	for name, ingredientsRaw := range object(raw) {
		ingredients := make(map[string]interface{})
		for ingredient, qtyRaw := range object(ingredientsRaw) {
			qty, err := cast.ToFloat64E(qtyRaw)
			if err != nil || qty <= 0 {
				continue
			}
			ingredients[ingredient] = qty
		}
		recipes[name] = map[string]interface{}{"ingredients": ingredients}
	}
	return recipes
}

// hoistRecipes moves recipes into one catalog. Households are visited in
// name order and the first definition wins; a different definition under
// the same name is kept as "<name> (<household>)".
func hoistRecipes(doc map[string]interface{}) error {
	catalog := make(map[string]map[string]interface{})
	for _, item := range list(doc["recipes"]) {
		recipe := object(item)
		if name := cast.ToString(recipe["name"]); name != "" {
			catalog[name] = recipe
		}
	}

	for _, item := range list(doc["households"]) {
		household := object(item)
		if household == nil {
			continue
		}
		owner := cast.ToString(household["name"])
		recipes := object(household["recipes"])
		delete(household, "recipes")

		names := make([]string, 0, len(recipes))
		for name := range recipes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ingredients := object(object(recipes[name])["ingredients"])
			target := name
			if existing, ok := catalog[name]; ok {
				if reflect.DeepEqual(object(existing["ingredients"]), ingredients) {
					continue
				}
				target = fmt.Sprintf("%s (%s)", name, owner)
				if _, taken := catalog[target]; taken {
					continue
				}
			}
			catalog[target] = map[string]interface{}{
				"name":        target,
				"ingredients": ingredients,
			}
		}
	}

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]interface{}, 0, len(names))
	for _, name := range names {
		out = append(out, catalog[name])
	}
	doc["recipes"] = out
	return nil
}

// assignIdentity splits each household into a household record and a
// pantry, giving households and lots stable ids.
func assignIdentity(doc map[string]interface{}) error {
	now := time.Now().UTC().Format(time.RFC3339)

	households := make([]interface{}, 0)
	pantries := make([]interface{}, 0)
	for _, item := range list(doc["households"]) {
		household := object(item)
		if household == nil {
			continue
		}
		id := cast.ToString(household["id"])
		if id == "" {
			id = uuid.NewString()
		}

		lots := make([]interface{}, 0)
		for _, l := range list(household["lots"]) {
			lot := object(l)
			if lot == nil {
				continue
			}
			if cast.ToString(lot["id"]) == "" {
				lot["id"] = uuid.NewString()
			}
			if _, ok := lot["added_at"]; !ok {
				lot["added_at"] = now
			}
			lots = append(lots, lot)
		}

		households = append(households, map[string]interface{}{
			"id":              id,
			"name":            household["name"],
			"password":        household["password"],
			"password_scheme": household["password_scheme"],
			"roles":           []interface{}{model.RoleMember},
			"active":          true,
			"created_at":      now,
			"updated_at":      now,
		})
		pantries = append(pantries, map[string]interface{}{
			"household_id":  id,
			"lots":          lots,
			"shopping_list": stringList(household["shopping_list"]),
			"stats":         household["stats"],
			"version":       1,
			"updated_at":    now,
		})
	}

	doc["households"] = households
	doc["pantries"] = pantries
	if _, ok := doc["roles"]; !ok {
		doc["roles"] = []interface{}{}
	}
	if _, ok := doc["tokens"]; !ok {
		doc["tokens"] = []interface{}{}
	}
	return nil
}

func object(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func list(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

// stringList accepts both freshly migrated []string and decoded []interface{}.
func stringList(v interface{}) []string {
	var items []interface{}
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case []interface{}:
		items = t
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(cast.ToString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
