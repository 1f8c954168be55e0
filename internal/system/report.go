package system

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/strikecore/server/internal/core/event"
	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/persist"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

const reportTimeout = 5 * time.Second

// MatchReportSystem writes match history to Postgres (Phase 7). It collects
// rows from bus events during the tick and flushes them on a background
// goroutine, so the game loop never waits on the database. Only registered
// when a DSN is configured.
type MatchReportSystem struct {
	deps *handler.Deps
	repo *persist.MatchRepo

	matchID   uuid.UUID
	lastPhase world.Phase

	pendingRounds []persist.RoundRow
	pendingKills  []persist.KillRow
	finished      *event.MatchEnded
}

func NewMatchReportSystem(deps *handler.Deps, repo *persist.MatchRepo) *MatchReportSystem {
	s := &MatchReportSystem{deps: deps, repo: repo, lastPhase: world.PhaseWaiting}

	event.Subscribe(deps.Bus, func(e event.Kill) {
		killer := deps.World.Get(e.KillerID)
		victim := deps.World.Get(e.VictimID)
		if killer == nil || victim == nil {
			return
		}
		s.pendingKills = append(s.pendingKills, persist.KillRow{
			Round:    deps.World.Round.Index,
			Killer:   killer.Name,
			Victim:   victim.Name,
			WeaponID: e.WeaponID,
			Headshot: e.Headshot,
			At:       time.Now(),
		})
	})
	event.Subscribe(deps.Bus, func(e event.RoundEnded) {
		s.pendingRounds = append(s.pendingRounds, persist.RoundRow{
			Round:   e.Round,
			Winner:  e.Winner,
			Reason:  e.Reason,
			ScoreT:  e.ScoreT,
			ScoreCT: e.ScoreCT,
			At:      time.Now(),
		})
	})
	event.Subscribe(deps.Bus, func(e event.MatchEnded) {
		ev := e
		s.finished = &ev
	})
	return s
}

func (s *MatchReportSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *MatchReportSystem) Update(dt time.Duration) {
	phase := s.deps.World.Round.Phase
	if s.lastPhase == world.PhaseWaiting && phase == world.PhaseFreeze {
		s.openMatch()
	}
	s.lastPhase = phase

	if len(s.pendingRounds) == 0 && len(s.pendingKills) == 0 && s.finished == nil {
		return
	}
	rounds := s.pendingRounds
	kills := s.pendingKills
	finished := s.finished
	s.pendingRounds = nil
	s.pendingKills = nil
	s.finished = nil

	matchID := s.matchID
	go s.flush(matchID, rounds, kills, finished)
}

func (s *MatchReportSystem) openMatch() {
	s.matchID = uuid.New()
	id := s.matchID
	name := s.deps.Config.Server.Name
	mapName := s.deps.Map.Name

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		if err := s.repo.InsertMatch(ctx, id, name, mapName, time.Now()); err != nil {
			s.deps.Log.Warn("insert match failed", zap.Error(err))
		}
	}()
	s.deps.Log.Info("match history opened", zap.String("match_id", id.String()))
}

func (s *MatchReportSystem) flush(matchID uuid.UUID, rounds []persist.RoundRow, kills []persist.KillRow, finished *event.MatchEnded) {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	for _, row := range kills {
		if err := s.repo.InsertKill(ctx, matchID, row); err != nil {
			s.deps.Log.Warn("insert kill failed", zap.Error(err))
		}
	}
	for _, row := range rounds {
		if err := s.repo.InsertRound(ctx, matchID, row); err != nil {
			s.deps.Log.Warn("insert round failed", zap.Error(err))
		}
	}
	if finished != nil {
		err := s.repo.FinishMatch(ctx, matchID, finished.Winner, finished.ScoreT, finished.ScoreCT, finished.Rounds)
		if err != nil {
			s.deps.Log.Warn("finish match failed", zap.Error(err))
		}
	}
}
