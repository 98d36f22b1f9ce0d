package stores

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

// LightingStore holds a project's lighting items and the rules they are
// priced from. It is read-only; the backend derives the items.
type LightingStore struct {
	*Store[models.LightingItem]

	rules    *api.Resource[models.LightingRule]
	projects *api.Resource[models.Project]
	project  int

	refMu    sync.RWMutex
	ruleList []models.LightingRule
	proj     models.Project
	stale    bool
}

func NewLightingStore(c *api.Client, project int, opts ...Option) *LightingStore {
	return &LightingStore{
		Store:    NewStore[models.LightingItem](api.NewLightingItems(c), opts...),
		rules:    api.NewLightingRules(c),
		projects: api.NewProjects(c),
		project:  project,
	}
}

// Load fetches the project, the active rules and the project's lighting
// items concurrently.
func (s *LightingStore) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.projects.Get(gctx, s.project)
		if err != nil {
			return fmt.Errorf("load project: %w", err)
		}
		s.refMu.Lock()
		s.proj = p
		s.refMu.Unlock()
		return nil
	})
	g.Go(func() error {
		rules, err := s.rules.ListAll(gctx, api.ListParams{}.With("is_active", "true"))
		if err != nil {
			return fmt.Errorf("load lighting rules: %w", err)
		}
		s.refMu.Lock()
		s.ruleList = rules
		s.refMu.Unlock()
		return nil
	})
	g.Go(func() error {
		return s.Fetch(gctx, api.ListParams{}.With("project", strconv.Itoa(s.project)))
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.refMu.Lock()
	s.stale = false
	s.refMu.Unlock()
	return nil
}

// Project returns the loaded project.
func (s *LightingStore) Project() models.Project {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return s.proj
}

func (s *LightingStore) Rules() []models.LightingRule {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return append([]models.LightingRule(nil), s.ruleList...)
}

// ApplicableRule picks the rule that prices a material and cabinet type
// in this project.
func (s *LightingStore) ApplicableRule(material, cabinetType int) services.RuleMatch {
	return services.SelectLightingRule(s.Rules(), material, cabinetType, s.Project())
}

// Summary aggregates the active lighting items.
func (s *LightingStore) Summary() services.LightingSummary {
	return services.AggregateLightingCosts(s.Items())
}

// Invalidate marks the loaded items as out of date.
func (s *LightingStore) Invalidate() {
	s.refMu.Lock()
	s.stale = true
	s.refMu.Unlock()
}

// Stale reports whether something changed since the last Load.
func (s *LightingStore) Stale() bool {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return s.stale
}

// EnsureFresh reloads when the store was invalidated or never loaded.
func (s *LightingStore) EnsureFresh(ctx context.Context) error {
	if s.Loaded() && !s.Stale() {
		return nil
	}
	return s.Load(ctx)
}

// Watch invalidates the store whenever a line item of the same project is
// created, changed or deleted, since the backend rederives lighting items
// from the line items. The returned func unbinds the handler.
func (s *LightingStore) Watch(items *LineItemStore) func() {
	if items.Project() != s.project {
		return func() {}
	}
	id := items.OnChange().BindFunc(func(e *ChangeEvent[models.LineItem]) error {
		if e.Kind != ChangeLoaded {
			s.Invalidate()
		}
		return e.Next()
	})
	return func() { items.OnChange().Unbind(id) }
}
