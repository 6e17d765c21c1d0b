package game

// CardKind distinguishes the three layers a composed card is built from.
type CardKind string

const (
	KindSleeve    CardKind = "sleeve"
	KindAnimal    CardKind = "animal"
	KindEquipment CardKind = "equipment"
)

// StatName identifies the stats a modifier or persistent effect may target.
type StatName string

const (
	StatDamage StatName = "damage"
	StatHealth StatName = "health"
)

// TriggerKind classifies when a special effect's condition is checked.
// on_play fires unconditionally before combat; the rest are evaluated
// against the combat outcome.
type TriggerKind string

const (
	TriggerOnPlay         TriggerKind = "on_play"
	TriggerIfSurvives     TriggerKind = "if_survives"
	TriggerIfDestroyed    TriggerKind = "if_destroyed"
	TriggerIfDefeats      TriggerKind = "if_defeats"
	TriggerIfDoesntDefeat TriggerKind = "if_doesnt_defeat"
)

// EffectAction is what a triggered special effect does.
type EffectAction string

const (
	ActionAddPersistentModifier EffectAction = "add_persistent_modifier"
	ActionModifyInitiative      EffectAction = "modify_initiative"
	ActionDrawCards             EffectAction = "draw_cards"
)

// Modifier is a flat additive bonus to a single stat. A resolved card keeps
// at most one (the topmost layer's modifier wins).
type Modifier struct {
	Stat   StatName `json:"stat"`
	Amount int      `json:"amount"`
}

// SpecialEffect describes a card's single effect slot. The action-specific
// fields (Stat/Amount for modifiers, CardKind/Count for draws) are only
// meaningful for the matching action.
type SpecialEffect struct {
	Trigger  TriggerKind  `json:"trigger"`
	Action   EffectAction `json:"action"`
	Stat     StatName     `json:"stat,omitempty"`
	Amount   int          `json:"amount,omitempty"`
	CardKind CardKind     `json:"card_kind,omitempty"`
	Count    int          `json:"count,omitempty"`
}

// CardStats is a sparse attribute bag. Absent fields (nil) and
// present-but-zero fields carry different merge semantics: a nil damage says
// "this layer has no opinion", while *damage==0 is an explicit zero. The
// distinction matters for the layer fold in the engine package.
type CardStats struct {
	Damage        *int           `json:"damage,omitempty"`
	Health        *int           `json:"health,omitempty"`
	Initiative    *int           `json:"initiative,omitempty"`
	Modifier      *Modifier      `json:"modifier,omitempty"`
	SpecialEffect *SpecialEffect `json:"special_effect,omitempty"`
}

// ResolvedStats is the dense output of merging a card stack. Damage and
// health are clamped to >= 0; initiative may legitimately be negative.
type ResolvedStats struct {
	Damage        int            `json:"damage"`
	Health        int            `json:"health"`
	Initiative    int            `json:"initiative"`
	Modifier      *Modifier      `json:"modifier"`
	SpecialEffect *SpecialEffect `json:"special_effect"`
}

// PersistentModifier is a permanent additive stat bonus earned from a past
// round's effect. SourceRound records where it came from for auditing; the
// modifier itself never expires.
type PersistentModifier struct {
	Stat        StatName `json:"stat"`
	Amount      int      `json:"amount"`
	SourceRound int      `json:"source_round"`
}

// IntPtr is a convenience for building sparse CardStats literals.
func IntPtr(v int) *int { return &v }
