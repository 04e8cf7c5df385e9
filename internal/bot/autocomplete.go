package bot

import (
	"context"
	"strings"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/wizard"

	"github.com/bwmarrin/discordgo"
)

// Discord rejects choice names and values longer than this.
const maxChoiceLen = 100

var optionFields = map[string]catalog.Field{
	optRole:     catalog.FieldRole,
	optHeroes:   catalog.FieldHero,
	optGamemode: catalog.FieldGamemode,
	optMap:      catalog.FieldMap,
	optRank:     catalog.FieldRank,
}

func (b *Bot) onAutocomplete(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	choices := b.suggest(data.Options)
	b.reply(ctx, r, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// suggest completes the focused option, narrowed by the role and gamemode
// already typed into the same invocation.
func (b *Bot) suggest(opts []*discordgo.ApplicationCommandInteractionDataOption) []*discordgo.ApplicationCommandOptionChoice {
	m := optionMap(opts)
	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, o := range opts {
		if o.Focused {
			focused = o
			break
		}
	}
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	if focused == nil {
		return choices
	}
	field, ok := optionFields[focused.Name]
	if !ok {
		return choices
	}

	sc := catalog.SuggestContext{Role: stringOpt(m, optRole), Gamemode: stringOpt(m, optGamemode)}
	query := stringOpt(m, focused.Name)

	// heroes is a comma separated list; only its last entry is completed.
	prefix := ""
	if field == catalog.FieldHero {
		if idx := strings.LastIndex(query, ","); idx >= 0 {
			typed := wizard.SplitHeroes(query[:idx])
			for n, h := range typed {
				typed[n] = b.canonicalHero(sc.Role, h)
			}
			if len(typed) > 0 {
				prefix = strings.Join(typed, ", ") + ", "
			}
			query = query[idx+1:]
		}
	}

	for _, v := range b.catalog.Suggest(field, query, sc) {
		value := prefix + v
		if len(value) > maxChoiceLen {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: value, Value: value})
	}
	return choices
}

// canonicalHero restores catalog spelling of an already typed hero, looking
// in role first. Unknown names are kept as typed.
func (b *Bot) canonicalHero(role, hero string) string {
	if h, ok := b.catalog.HeroInRole(role, hero); ok {
		return h
	}
	for _, r := range b.catalog.Roles() {
		if h, ok := b.catalog.HeroInRole(r, hero); ok {
			return h
		}
	}
	return hero
}
