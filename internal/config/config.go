package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rfogale/sleeve-arena/internal/game"
)

type rawConfig struct {
	CardList []game.CardDefinition `json:"card_list"`
	Rules    *game.Rules           `json:"rules"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the card catalog, the game rules and the server
// address to bind to.
type LoadedConfig struct {
	Cards         []game.CardDefinition
	Rules         game.Rules
	ServerAddress string
}

// LoadConfig reads the configuration file at path. It requires the key
// `card_list` (snake_case) and validates the catalog cross-entry: unique
// ids, stats blocks matching each card kind, and well-formed special
// effects.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide a 'card_list' array)", path)
	}

	idSet := make(map[string]struct{}, len(rc.CardList))
	for _, c := range rc.CardList {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'id'", path)
		}
		if _, exists := idSet[c.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card id '%s'", path, c.ID)
		}
		idSet[c.ID] = struct{}{}
		switch c.Kind {
		case game.KindSleeve:
			if c.BackgroundStats == nil && c.ForegroundStats == nil {
				return nil, fmt.Errorf("config file %s: sleeve '%s' needs background_stats or foreground_stats", path, c.ID)
			}
			if c.Stats != nil {
				return nil, fmt.Errorf("config file %s: sleeve '%s' must not carry a plain 'stats' block", path, c.ID)
			}
		case game.KindAnimal, game.KindEquipment:
			if c.Stats == nil {
				return nil, fmt.Errorf("config file %s: %s '%s' missing 'stats'", path, c.Kind, c.ID)
			}
			if c.BackgroundStats != nil || c.ForegroundStats != nil {
				return nil, fmt.Errorf("config file %s: %s '%s' must not carry sleeve stat blocks", path, c.Kind, c.ID)
			}
		default:
			return nil, fmt.Errorf("config file %s: card '%s' has unknown kind '%s'", path, c.ID, c.Kind)
		}
		if err := validateEffects(c); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	rules := game.DefaultRules()
	if rc.Rules != nil {
		rules = *rc.Rules
	}
	if rules.ScoringMode != game.ScoringModeRounds && rules.ScoringMode != game.ScoringModePoints {
		return nil, fmt.Errorf("config file %s: rules.scoring_mode must be '%s' or '%s'", path, game.ScoringModeRounds, game.ScoringModePoints)
	}
	if rules.MaxRounds < 1 {
		return nil, fmt.Errorf("config file %s: rules.max_rounds must be >= 1", path)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Cards:         rc.CardList,
		Rules:         rules,
		ServerAddress: addr,
	}, nil
}

func validateEffects(c game.CardDefinition) error {
	for _, st := range []*game.CardStats{c.BackgroundStats, c.ForegroundStats, c.Stats} {
		if st == nil || st.SpecialEffect == nil {
			continue
		}
		eff := st.SpecialEffect
		switch eff.Trigger {
		case game.TriggerOnPlay, game.TriggerIfSurvives, game.TriggerIfDestroyed,
			game.TriggerIfDefeats, game.TriggerIfDoesntDefeat:
		default:
			return fmt.Errorf("card '%s': unknown effect trigger '%s'", c.ID, eff.Trigger)
		}
		switch eff.Action {
		case game.ActionAddPersistentModifier:
			if eff.Stat != game.StatDamage && eff.Stat != game.StatHealth {
				return fmt.Errorf("card '%s': add_persistent_modifier needs stat damage|health", c.ID)
			}
		case game.ActionModifyInitiative:
			if eff.Amount == 0 {
				return fmt.Errorf("card '%s': modify_initiative needs a nonzero amount", c.ID)
			}
		case game.ActionDrawCards:
			if eff.CardKind != game.KindAnimal && eff.CardKind != game.KindEquipment {
				return fmt.Errorf("card '%s': draw_cards needs card_kind animal|equipment", c.ID)
			}
			if eff.Count < 1 {
				return fmt.Errorf("card '%s': draw_cards needs count >= 1", c.ID)
			}
		default:
			return fmt.Errorf("card '%s': unknown effect action '%s'", c.ID, eff.Action)
		}
	}
	return nil
}
