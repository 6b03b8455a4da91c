package session_repo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"neuroflash/internal/repository"
)

type repo struct {
	mtx      sync.RWMutex
	sessions map[string]repository.SessionRecord
}

// NewSessionRepository Реестр сессий в памяти
func NewSessionRepository() repository.SessionRepository {
	return &repo{
		sessions: make(map[string]repository.SessionRecord),
	}
}

func (r *repo) Create(_ context.Context, rec repository.SessionRecord) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.sessions[rec.Session.ID]; ok {
		return fmt.Errorf("session %s already exists", rec.Session.ID)
	}
	r.sessions[rec.Session.ID] = rec
	return nil
}

func (r *repo) Get(_ context.Context, id string) (repository.SessionRecord, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	rec, ok := r.sessions[id]
	if !ok {
		return repository.SessionRecord{}, repository.ErrSessionNotFound
	}
	return rec, nil
}

func (r *repo) Touch(_ context.Context, id string, at time.Time) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	rec, ok := r.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	if at.After(rec.LastSeen) {
		rec.LastSeen = at
		r.sessions[id] = rec
	}
	return nil
}

func (r *repo) Delete(_ context.Context, id string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// List Все сессии, старые первыми
func (r *repo) List(_ context.Context) ([]repository.SessionRecord, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]repository.SessionRecord, 0, len(r.sessions))
	for _, rec := range r.sessions {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b repository.SessionRecord) int {
		if c := a.Session.CreatedAt.Compare(b.Session.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Session.ID, b.Session.ID)
	})
	return out, nil
}

func (r *repo) IdleSince(_ context.Context, before time.Time) ([]string, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var ids []string
	for id, rec := range r.sessions {
		if rec.LastSeen.Before(before) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}
