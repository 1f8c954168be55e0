package handler

import (
	"github.com/strikecore/server/internal/config"
	"github.com/strikecore/server/internal/core/event"
	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/scripting"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

// RewardGrants is implemented by the economy engine. Handlers and the combat
// system credit action rewards through it so every money mutation funnels
// through one clamp.
type RewardGrants interface {
	KillReward(killer *world.Combatant)
	PlantReward(planter *world.Combatant)
	DefuseReward(defuser *world.Combatant)
}

// Deps holds shared dependencies injected into intent handlers and systems.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	World     *world.State
	Weapons   *data.WeaponTable
	Map       *data.MapInfo
	Scripting *scripting.Engine
	Bus       *event.Bus
	Economy   RewardGrants
	Caster    world.Caster
}
