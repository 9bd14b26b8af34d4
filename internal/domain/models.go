package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Collection names in the document store.
const (
	CollectionPlayer    = "player"
	CollectionMilestone = "milestone"
	CollectionReward    = "reward"
)

// Stored player field names, shared by struct tags and mutation updates.
const (
	FieldEmail               = "email"
	FieldCoins               = "av_coins"
	FieldRevenue             = "revenue_usd"
	FieldCompletedMilestones = "completed_milestones"
	FieldUnlockedWorlds      = "unlocked_worlds"
	FieldMilestoneID         = "milestone_id"
)

// Completion awards: every first completion grants the base amount plus a
// speed bonus.
const (
	BaseCompletionCoins = 100
	FastBonusCoins      = 50
	NormalBonusCoins    = 30
	SlowBonusCoins      = 15
)

// World unlock gate.
const (
	FirstWorldID          = "world_1"
	WorldRevenueThreshold = 1000.0
)

// MaxMilestoneOrder sorts milestones without an explicit order last.
const MaxMilestoneOrder = 999

var ErrPlayerNotFound = errors.New("player not found")

type Player struct {
	ID                  string    `json:"id,omitempty"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Coins               int       `json:"av_coins"`
	Revenue             float64   `json:"revenue_usd"`
	CompletedMilestones StringSet `json:"completed_milestones"`
	UnlockedWorlds      StringSet `json:"unlocked_worlds"`
}

// NewPlayer returns a fresh player record: zero coins, zero revenue, empty
// sets. The document store assigns the id on insert.
func NewPlayer(name, email string) *Player {
	return &Player{
		Name:                name,
		Email:               email,
		CompletedMilestones: NewStringSet(),
		UnlockedWorlds:      NewStringSet(),
	}
}

type Milestone struct {
	MilestoneID string `json:"milestone_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// SortOrder is the catalog ordering key. Order is a positive integer, so a
// missing or zero value means "no explicit order" and sorts last.
func (m Milestone) SortOrder() int {
	if m.Order < 1 {
		return MaxMilestoneOrder
	}
	return m.Order
}

// Reward is an append-only audit record. It is written exactly once per
// first-time milestone completion and never read back by the API.
type Reward struct {
	PlayerID    string    `json:"player_id"`
	MilestoneID string    `json:"milestone_id,omitempty"`
	Reason      string    `json:"reason"`
	Coins       int       `json:"coins"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompletionResult is the outcome of one completion transition.
type CompletionResult struct {
	CoinsAwarded  int
	Revenue       float64
	UnlockedWorld string // empty when nothing new unlocked
}

// NormalizeSpeed lowercases the reported completion speed, defaulting to
// "normal" when absent. The normalized form is what reward reasons record.
func NormalizeSpeed(speed string) string {
	if speed == "" {
		return "normal"
	}
	return strings.ToLower(speed)
}

// SpeedBonus maps a completion speed to its coin bonus. Matching is
// case-insensitive; unrecognized speeds earn the normal bonus.
func SpeedBonus(speed string) int {
	switch NormalizeSpeed(speed) {
	case "fast":
		return FastBonusCoins
	case "slow":
		return SlowBonusCoins
	default:
		return NormalBonusCoins
	}
}

// RewardReason describes a completion for the audit log.
func RewardReason(milestoneID, speed string) string {
	return fmt.Sprintf("Completed %s (%s)", milestoneID, speed)
}
