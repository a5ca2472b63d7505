// Package service wires the navigation core to its collaborators: the dump
// producer, the stack registry, and the command transcript.
package service

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/framewalk/internal/database"
	"github.com/jask/framewalk/internal/database/repository"
	"github.com/jask/framewalk/internal/dump"
	"github.com/jask/framewalk/internal/frame"
	"github.com/jask/framewalk/internal/registry"
)

// InspectService loads dumps, turns goroutines into navigable frame stacks,
// and records issued commands. History and Logger are optional.
type InspectService struct {
	Registry *registry.Registry
	History  *repository.HistoryRepo
	Logger   *zap.Logger
}

func (s *InspectService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// LoadDumpFile parses a stack dump from disk.
func (s *InspectService) LoadDumpFile(path string) (*dump.Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	d, err := dump.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	s.log().Info("dump loaded", zap.String("path", path), zap.Int("goroutines", len(d.Goroutines)))
	return d, nil
}

// LoadSelf captures the live process's stack as a single-goroutine dump.
func (s *InspectService) LoadSelf() *dump.Dump {
	g := dump.Self(1)
	s.log().Info("captured own stack", zap.Int("frames", len(g.Records)))
	return &dump.Dump{Goroutines: []*dump.Goroutine{g}}
}

// EnterGoroutine builds a frame stack for the goroutine and pushes it as the
// session's active stack. When the session already has an active stack, its
// selected frame becomes the new stack's prior binding, so leaving the nested
// stack has somewhere to land.
func (s *InspectService) EnterGoroutine(session uuid.UUID, g *dump.Goroutine) (*frame.Stack, error) {
	if len(g.Records) == 0 {
		return nil, fmt.Errorf("goroutine %d has no frames", g.ID)
	}

	frames := make([]*frame.Frame, 0, len(g.Records))
	for _, rec := range g.Records {
		typ := ""
		if rec.CreatedBy {
			typ = "origin"
		}
		frames = append(frames, frame.New(rec, typ, ""))
	}

	var prior frame.Context
	if outer, ok := s.Registry.ActiveStack(session); ok {
		prior = outer.Current().Context()
	}

	st, err := frame.NewStack(frames, 0, prior)
	if err != nil {
		return nil, err
	}
	s.Registry.Push(session, st)
	s.log().Info("entered goroutine",
		zap.String("session", session.String()),
		zap.Int("goroutine", g.ID),
		zap.Int("frames", st.Len()),
		zap.Int("depth", s.Registry.Depth(session)))
	return st, nil
}

// LeaveStack pops the session's active stack. ok is false when there was
// nothing to leave.
func (s *InspectService) LeaveStack(session uuid.UUID) (*frame.Stack, bool) {
	st, ok := s.Registry.Pop(session)
	if ok {
		s.log().Info("left stack",
			zap.String("session", session.String()),
			zap.Int("depth", s.Registry.Depth(session)))
	}
	return st, ok
}

// EndSession drops all navigation state for the session.
func (s *InspectService) EndSession(session uuid.UUID) {
	s.Registry.EndSession(session)
	s.log().Info("session ended", zap.String("session", session.String()))
}

// Record appends one issued command to the transcript. Transcript failures
// are logged, never surfaced: history must not break navigation.
func (s *InspectService) Record(ctx context.Context, session uuid.UUID, input, outcome string) {
	if s.History == nil {
		return
	}
	e := repository.Entry{
		ID:        uuid.NewString(),
		SessionID: session.String(),
		IssuedAt:  database.Now(),
		Input:     input,
		Outcome:   outcome,
	}
	if err := s.History.Insert(ctx, e); err != nil {
		s.log().Warn("history insert failed", zap.Error(err))
	}
}

// RecentHistory returns the session's latest transcript entries, newest
// first. Without a history store it returns nothing.
func (s *InspectService) RecentHistory(ctx context.Context, session uuid.UUID, limit int) ([]repository.Entry, error) {
	if s.History == nil {
		return nil, nil
	}
	if limit < 1 {
		limit = 20
	}
	return s.History.ListRecent(ctx, session.String(), limit)
}
