package catalog

import (
	"strconv"
	"strings"

	"overwatch-tracker/internal/constants"
)

type Field string

const (
	FieldRole     Field = "role"
	FieldHero     Field = "hero"
	FieldGamemode Field = "gamemode"
	FieldMap      Field = "map"
	FieldRank     Field = "rank"
	FieldModifier Field = "modifier"
	FieldResult   Field = "result"
)

// SuggestContext carries values already typed into other options of the same
// command. Unknown values are ignored.
type SuggestContext struct {
	Role     string
	Gamemode string
}

// Suggest returns values of field containing query (case-insensitive) in
// catalog order, capped at constants.AutocompleteLimit.
func (c *Catalog) Suggest(field Field, query string, sc SuggestContext) []string {
	var pool []string
	switch field {
	case FieldRole:
		pool = c.Roles()
	case FieldHero:
		if pool = c.Heroes(sc.Role); pool == nil {
			pool = c.AllHeroes()
		}
	case FieldGamemode:
		pool = c.Gamemodes()
	case FieldMap:
		if pool = c.Maps(sc.Gamemode); pool == nil {
			pool = c.AllMaps()
		}
	case FieldRank:
		pool = c.RankTiers()
	case FieldModifier:
		for _, m := range c.Modifiers() {
			pool = append(pool, strconv.Itoa(m))
		}
	case FieldResult:
		for _, r := range c.results {
			pool = append(pool, string(r))
		}
	}
	return filter(pool, query, constants.AutocompleteLimit)
}

func filter(pool []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, min(len(pool), limit))
	for _, v := range pool {
		if len(out) == limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(v), q) {
			out = append(out, v)
		}
	}
	return out
}
