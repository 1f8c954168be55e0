package system

import (
	"github.com/strikecore/server/internal/config"
	"github.com/strikecore/server/internal/core/event"
	"github.com/strikecore/server/internal/scripting"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

// Economy credits action rewards immediately and settles team bonuses at
// round end. The round-end formula lives in the Lua rewards script so tuning
// never needs a rebuild; fixed action rewards come straight from config.
// Every mutation funnels through Combatant.AddMoney and its clamp.
type Economy struct {
	cfg   config.EconomyConfig
	world *world.State
	eng   *scripting.Engine
	bus   *event.Bus
	log   *zap.Logger
}

func NewEconomy(cfg config.EconomyConfig, ws *world.State, eng *scripting.Engine, bus *event.Bus, log *zap.Logger) *Economy {
	return &Economy{cfg: cfg, world: ws, eng: eng, bus: bus, log: log}
}

func (e *Economy) KillReward(killer *world.Combatant) {
	killer.AddMoney(e.cfg.KillReward, e.cfg.MaxMoney)
}

func (e *Economy) PlantReward(planter *world.Combatant) {
	planter.AddMoney(e.cfg.PlantReward, e.cfg.MaxMoney)
}

func (e *Economy) DefuseReward(defuser *world.Combatant) {
	defuser.AddMoney(e.cfg.DefuseReward, e.cfg.MaxMoney)
}

// ApplyRoundEnd settles win/loss bonuses for every combatant. Called before
// the loss streak counters advance, so the scripted loss bonus sees the
// streak as it stood going into this round.
func (e *Economy) ApplyRoundEnd(winner world.Side, reason world.RoundEndReason) {
	loser := winner.Opponent()
	res := e.eng.RoundEndRewards(scripting.RewardContext{
		Winner:      winner.String(),
		Reason:      string(reason),
		LoserStreak: e.world.Team(loser).LossStreak,
	})

	e.world.All(func(c *world.Combatant) {
		switch c.Side {
		case winner:
			c.AddMoney(res.WinnerBonus+res.ObjectiveBonus, e.cfg.MaxMoney)
		case loser:
			c.AddMoney(res.LoserBonus, e.cfg.MaxMoney)
		}
	})

	e.log.Debug("round rewards settled",
		zap.String("winner", winner.String()),
		zap.String("reason", string(reason)),
		zap.Int("winner_bonus", res.WinnerBonus+res.ObjectiveBonus),
		zap.Int("loser_bonus", res.LoserBonus))
}

// ResetMoney returns everyone to the starting purse. Used at match start and
// at the half-time side swap.
func (e *Economy) ResetMoney() {
	e.world.All(func(c *world.Combatant) {
		c.Money = 0
		c.AddMoney(e.cfg.StartMoney, e.cfg.MaxMoney)
	})
}
