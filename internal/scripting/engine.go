package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"economy"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// RewardContext holds pre-packed data for the round-end payout calculation.
type RewardContext struct {
	Winner      string // "terrorist" or "counter_terrorist"
	Reason      string // round-end reason string
	LoserStreak int    // losing team's consecutive losses before this round
}

// RewardResult is returned by the Lua round_end_rewards function.
type RewardResult struct {
	WinnerBonus    int // flat payout per winning player
	LoserBonus     int // streak-scaled payout per losing player
	ObjectiveBonus int // extra payout to the winners on a bomb resolution
}

// RoundEndRewards calls the Lua round_end_rewards function.
func (e *Engine) RoundEndRewards(ctx RewardContext) RewardResult {
	fallback := RewardResult{WinnerBonus: 3250, LoserBonus: 1400}

	fn := e.vm.GetGlobal("round_end_rewards")
	if fn == lua.LNil {
		e.log.Error("lua function round_end_rewards not found")
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("winner", lua.LString(ctx.Winner))
	t.RawSetString("reason", lua.LString(ctx.Reason))
	t.RawSetString("loser_streak", lua.LNumber(ctx.LoserStreak))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua round_end_rewards error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua round_end_rewards returned non-table")
		return fallback
	}

	return RewardResult{
		WinnerBonus:    int(lua.LVAsNumber(rt.RawGetString("winner_bonus"))),
		LoserBonus:     int(lua.LVAsNumber(rt.RawGetString("loser_bonus"))),
		ObjectiveBonus: int(lua.LVAsNumber(rt.RawGetString("objective_bonus"))),
	}
}
