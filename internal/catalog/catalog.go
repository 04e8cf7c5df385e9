// Package catalog holds the fixed reference vocabulary: roles and their
// heroes, gamemodes and their maps, rank tiers, modifiers and results.
// A Catalog is built once at startup and never mutated.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"overwatch-tracker/internal/domain"
)

const (
	MinModifier = 1
	MaxModifier = 5
)

// Group is a named, ordered set of values (a role's heroes, a gamemode's maps).
type Group struct {
	Name    string
	Members []string
}

type Catalog struct {
	roles     []Group
	gamemodes []Group
	rankTiers []string
	results   []domain.Result
}

// New validates and copies the given vocabulary.
func New(roles, gamemodes []Group, rankTiers []string) (*Catalog, error) {
	if err := checkGroups("role", roles); err != nil {
		return nil, err
	}
	if err := checkGroups("gamemode", gamemodes); err != nil {
		return nil, err
	}
	if len(rankTiers) == 0 {
		return nil, fmt.Errorf("catalog: no rank tiers")
	}
	if dup := firstDuplicate(rankTiers); dup != "" {
		return nil, fmt.Errorf("catalog: duplicate rank tier %q", dup)
	}

	return &Catalog{
		roles:     copyGroups(roles),
		gamemodes: copyGroups(gamemodes),
		rankTiers: append([]string(nil), rankTiers...),
		results:   []domain.Result{domain.Win, domain.Loss},
	}, nil
}

// Default returns the Overwatch reference catalog.
func Default() *Catalog {
	c, err := New(defaultRoles, defaultGamemodes, defaultRankTiers)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Roles() []string { return groupNames(c.roles) }

func (c *Catalog) Gamemodes() []string { return groupNames(c.gamemodes) }

func (c *Catalog) RankTiers() []string { return append([]string(nil), c.rankTiers...) }

func (c *Catalog) Results() []domain.Result { return append([]domain.Result(nil), c.results...) }

func (c *Catalog) Modifiers() []int {
	out := make([]int, 0, MaxModifier-MinModifier+1)
	for m := MinModifier; m <= MaxModifier; m++ {
		out = append(out, m)
	}
	return out
}

// Heroes returns the heroes of role, or nil for an unknown role.
func (c *Catalog) Heroes(role string) []string {
	if g := findGroup(c.roles, role); g != nil {
		return append([]string(nil), g.Members...)
	}
	return nil
}

// Maps returns the maps of gamemode, or nil for an unknown gamemode.
func (c *Catalog) Maps(gamemode string) []string {
	if g := findGroup(c.gamemodes, gamemode); g != nil {
		return append([]string(nil), g.Members...)
	}
	return nil
}

// AllHeroes returns every hero in role order.
func (c *Catalog) AllHeroes() []string { return flatten(c.roles) }

// AllMaps returns every map in gamemode order.
func (c *Catalog) AllMaps() []string { return flatten(c.gamemodes) }

// Role resolves name case-insensitively to its canonical spelling.
func (c *Catalog) Role(name string) (string, bool) {
	if g := findGroup(c.roles, name); g != nil {
		return g.Name, true
	}
	return "", false
}

func (c *Catalog) Gamemode(name string) (string, bool) {
	if g := findGroup(c.gamemodes, name); g != nil {
		return g.Name, true
	}
	return "", false
}

// HeroInRole resolves hero within role's pool.
func (c *Catalog) HeroInRole(role, hero string) (string, bool) {
	g := findGroup(c.roles, role)
	if g == nil {
		return "", false
	}
	i := indexFold(g.Members, hero)
	if i < 0 {
		return "", false
	}
	return g.Members[i], true
}

func (c *Catalog) MapInGamemode(gamemode, name string) (string, bool) {
	g := findGroup(c.gamemodes, gamemode)
	if g == nil {
		return "", false
	}
	i := indexFold(g.Members, name)
	if i < 0 {
		return "", false
	}
	return g.Members[i], true
}

// GamemodeForMap finds the gamemode a map belongs to.
func (c *Catalog) GamemodeForMap(name string) (gamemode, canonical string, ok bool) {
	for _, g := range c.gamemodes {
		if i := indexFold(g.Members, name); i >= 0 {
			return g.Name, g.Members[i], true
		}
	}
	return "", "", false
}

func (c *Catalog) RankTier(name string) (string, bool) {
	i := indexFold(c.rankTiers, name)
	if i < 0 {
		return "", false
	}
	return c.rankTiers[i], true
}

func (c *Catalog) ValidModifier(m int) bool {
	return m >= MinModifier && m <= MaxModifier
}

func (c *Catalog) ParseResult(s string) (domain.Result, bool) {
	for _, r := range c.results {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// ParseModifier converts a selection to a modifier in range.
func (c *Catalog) ParseModifier(s string) (int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !c.ValidModifier(m) {
		return 0, domain.Invalid("modifier", s, fmt.Sprintf("must be between %d and %d", MinModifier, MaxModifier))
	}
	return m, nil
}

// ParseRank parses free text such as "Gold 3", "gold3" or "Grandmaster 1".
func (c *Catalog) ParseRank(text string) (domain.Rank, error) {
	raw := strings.TrimSpace(text)
	fields := strings.Fields(raw)

	var tierText, modText string
	switch len(fields) {
	case 1:
		word := fields[0]
		tierText = strings.TrimRightFunc(word, unicode.IsDigit)
		modText = word[len(tierText):]
	case 2:
		tierText, modText = fields[0], fields[1]
	default:
		return domain.Rank{}, domain.Invalid("rank", raw, `expected "<tier> <modifier>"`)
	}

	tier, ok := c.RankTier(tierText)
	if !ok {
		return domain.Rank{}, domain.Invalid("rank tier", tierText, "unknown rank tier")
	}
	mod, err := c.ParseModifier(modText)
	if err != nil {
		return domain.Rank{}, err
	}
	return domain.Rank{Tier: tier, Modifier: mod}, nil
}

// Index helpers are used to encode selections compactly.

func (c *Catalog) RoleIndex(name string) int { return groupIndex(c.roles, name) }

func (c *Catalog) GamemodeIndex(name string) int { return groupIndex(c.gamemodes, name) }

func (c *Catalog) HeroIndex(role, hero string) int {
	if g := findGroup(c.roles, role); g != nil {
		return indexFold(g.Members, hero)
	}
	return -1
}

func (c *Catalog) MapIndex(gamemode, name string) int {
	if g := findGroup(c.gamemodes, gamemode); g != nil {
		return indexFold(g.Members, name)
	}
	return -1
}

func (c *Catalog) RankTierIndex(name string) int { return indexFold(c.rankTiers, name) }

func (c *Catalog) RoleAt(i int) (string, bool) { return groupNameAt(c.roles, i) }

func (c *Catalog) GamemodeAt(i int) (string, bool) { return groupNameAt(c.gamemodes, i) }

func (c *Catalog) HeroAt(role string, i int) (string, bool) {
	return memberAt(findGroup(c.roles, role), i)
}

func (c *Catalog) MapAt(gamemode string, i int) (string, bool) {
	return memberAt(findGroup(c.gamemodes, gamemode), i)
}

func (c *Catalog) RankTierAt(i int) (string, bool) {
	if i < 0 || i >= len(c.rankTiers) {
		return "", false
	}
	return c.rankTiers[i], true
}

func checkGroups(kind string, groups []Group) error {
	if len(groups) == 0 {
		return fmt.Errorf("catalog: no %ss", kind)
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		if g.Name == "" || len(g.Members) == 0 {
			return fmt.Errorf("catalog: %s %d is empty", kind, i)
		}
		if dup := firstDuplicate(g.Members); dup != "" {
			return fmt.Errorf("catalog: %s %q lists %q twice", kind, g.Name, dup)
		}
		names[i] = g.Name
	}
	if dup := firstDuplicate(names); dup != "" {
		return fmt.Errorf("catalog: duplicate %s %q", kind, dup)
	}
	return nil
}

func firstDuplicate(values []string) string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			return v
		}
		seen[k] = struct{}{}
	}
	return ""
}

func copyGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Name: g.Name, Members: append([]string(nil), g.Members...)}
	}
	return out
}

func groupNames(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Name
	}
	return out
}

func flatten(groups []Group) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Members...)
	}
	return out
}

func findGroup(groups []Group, name string) *Group {
	if i := groupIndex(groups, name); i >= 0 {
		return &groups[i]
	}
	return nil
}

func groupIndex(groups []Group, name string) int {
	name = strings.TrimSpace(name)
	for i := range groups {
		if strings.EqualFold(groups[i].Name, name) {
			return i
		}
	}
	return -1
}

func groupNameAt(groups []Group, i int) (string, bool) {
	if i < 0 || i >= len(groups) {
		return "", false
	}
	return groups[i].Name, true
}

func memberAt(g *Group, i int) (string, bool) {
	if g == nil || i < 0 || i >= len(g.Members) {
		return "", false
	}
	return g.Members[i], true
}

func indexFold(values []string, v string) int {
	v = strings.TrimSpace(v)
	for i, s := range values {
		if strings.EqualFold(s, v) {
			return i
		}
	}
	return -1
}
