// Package editor keeps the canonical category tree for the admin dashboard and
// mediates every create, update and delete through the backend.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"mentorship/admin/internal/domain"
	"mentorship/admin/internal/loading"
	"mentorship/admin/internal/notify"

	log "github.com/sirupsen/logrus"
)

const (
	newCategoryName           = "New Category"
	newCategoryDescription    = "Category description"
	newSubcategoryName        = "New Subcategory"
	newSubcategoryDescription = "Subcategory description"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNoSession  = errors.New("nothing is being edited")
	ErrNotFound   = errors.New("entity not found")
	ErrBusy       = errors.New("request already in flight")
	ErrNoConfirm  = errors.New("delete requires a confirmer")
)

type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error)
	UpdateCategory(ctx context.Context, id string, update domain.CategoryUpdate) error
	DeleteCategory(ctx context.Context, id string) error
	CreateSubcategory(ctx context.Context, categoryID string, in domain.SubcategoryInput) (domain.Subcategory, error)
	UpdateSubcategory(ctx context.Context, categoryID, id string, update domain.SubcategoryUpdate) error
	DeleteSubcategory(ctx context.Context, categoryID, id string) error
}

// ExpansionStore persists which categories are expanded between sessions.
type ExpansionStore interface {
	LoadExpanded(ctx context.Context) ([]string, error)
	SaveExpanded(ctx context.Context, categoryIDs []string) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type Option func(*Editor)

func WithExpansionStore(store ExpansionStore) Option {
	return func(e *Editor) { e.expansion = store }
}

func WithTracker(tracker *loading.Tracker) Option {
	return func(e *Editor) { e.loading = tracker }
}

// Editor is safe for concurrent use. State is mutated under mu; the lock is
// never held across a network call.
type Editor struct {
	api       CategoryAPI
	notifier  notify.Notifier
	loading   *loading.Tracker
	expansion ExpansionStore

	mu         sync.Mutex
	categories []domain.Category
	session    Session
	isLoading  bool
}

func New(api CategoryAPI, notifier notify.Notifier, opts ...Option) *Editor {
	e := &Editor{
		api:      api,
		notifier: notifier,
		loading:  loading.NewTracker(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the canonical list with the server's.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	e.isLoading = true
	expanded := make(map[domain.ID]bool)
	for _, c := range e.categories {
		if c.Expanded {
			expanded[c.ID] = true
		}
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.isLoading = false
		e.mu.Unlock()
	}()

	categories, err := e.api.ListCategories(ctx)
	if err != nil {
		log.WithError(err).Error("❌ Failed to load categories")
		e.notifier.Error(notify.Message(err, "Failed to load categories"))

		e.mu.Lock()
		e.categories = nil
		e.session = nil
		e.mu.Unlock()
		return fmt.Errorf("failed to load categories: %w", err)
	}

	for _, id := range e.storedExpansion(ctx) {
		expanded[domain.PersistedID(id)] = true
	}

	for i := range categories {
		categories[i].Expanded = expanded[categories[i].ID]
	}

	e.mu.Lock()
	e.categories = categories
	if e.session != nil && !e.sessionTargetExists(e.session) {
		e.session = nil
	}
	e.mu.Unlock()

	log.Infof("📂 Loaded %d categories", len(categories))
	return nil
}

func (e *Editor) storedExpansion(ctx context.Context) []string {
	if e.expansion == nil {
		return nil
	}
	ids, err := e.expansion.LoadExpanded(ctx)
	if err != nil {
		log.WithError(err).Warn("⚠️ Failed to restore expanded categories")
		return nil
	}
	return ids
}

// PersistExpansion stores the IDs of expanded, persisted categories.
func (e *Editor) PersistExpansion(ctx context.Context) error {
	if e.expansion == nil {
		return nil
	}

	e.mu.Lock()
	ids := make([]string, 0)
	for _, c := range e.categories {
		if c.Expanded && !c.ID.IsTemporary() {
			ids = append(ids, c.ID.Value())
		}
	}
	e.mu.Unlock()

	if err := e.expansion.SaveExpanded(ctx, ids); err != nil {
		return fmt.Errorf("failed to persist expanded categories: %w", err)
	}
	return nil
}

// AddCategory appends a local, unsaved category and starts editing it.
func (e *Editor) AddCategory() domain.ID {
	category := domain.Category{
		ID:            domain.NewTemporaryID(),
		Name:          newCategoryName,
		Description:   newCategoryDescription,
		Subcategories: []domain.Subcategory{},
		Expanded:      true,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.replaceSession(nil)
	e.categories = append(e.categories, category)
	e.session = &CategorySession{
		ID:    category.ID,
		Draft: Draft{Name: category.Name, Description: category.Description},
	}
	return category.ID
}

// AddSubcategory appends a local, unsaved subcategory under categoryID,
// expands the parent and starts editing the new entry.
func (e *Editor) AddSubcategory(categoryID domain.ID) (domain.ID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexOf(categoryID) < 0 {
		return domain.ID{}, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}

	next := &SubcategorySession{
		CategoryID: categoryID,
		Draft:      Draft{Name: newSubcategoryName, Description: newSubcategoryDescription},
	}
	e.replaceSession(next)

	sub := domain.Subcategory{
		ID:          domain.NewTemporaryID(),
		Name:        newSubcategoryName,
		Description: newSubcategoryDescription,
		IsNew:       true,
	}

	parent := &e.categories[e.indexOf(categoryID)]
	parent.Subcategories = append(parent.Subcategories, sub)
	parent.Expanded = true

	next.ID = sub.ID
	return sub.ID, nil
}

// BeginEditCategory opens a session on the category, discarding any other draft.
func (e *Editor) BeginEditCategory(id domain.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}

	c := e.categories[idx]
	e.replaceSession(&CategorySession{
		ID:    id,
		Draft: Draft{Name: c.Name, Description: c.Description},
	})
	return nil
}

// BeginEditSubcategory opens a session on the subcategory, discarding any other draft.
func (e *Editor) BeginEditSubcategory(categoryID, id domain.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub, ok := e.subcategory(categoryID, id)
	if !ok {
		return fmt.Errorf("subcategory %s: %w", id, ErrNotFound)
	}

	e.replaceSession(&SubcategorySession{
		CategoryID: categoryID,
		ID:         id,
		Draft: Draft{
			Name:        sub.Name,
			Description: sub.Description,
			ExpertCount: sub.ExpertCount,
		},
	})
	return nil
}

func (e *Editor) SetDraftName(name string) error {
	return e.updateDraft(func(_ Session, d *Draft) error {
		d.Name = name
		return nil
	})
}

func (e *Editor) SetDraftDescription(description string) error {
	return e.updateDraft(func(_ Session, d *Draft) error {
		d.Description = description
		return nil
	})
}

func (e *Editor) SetDraftExpertCount(count int) error {
	return e.updateDraft(func(s Session, d *Draft) error {
		if _, ok := s.(*SubcategorySession); !ok {
			return fmt.Errorf("%w: expert count is only editable on subcategories", ErrValidation)
		}
		if count < 0 {
			return fmt.Errorf("%w: expert count cannot be negative", ErrValidation)
		}
		d.ExpertCount = count
		return nil
	})
}

func (e *Editor) updateDraft(fn func(Session, *Draft) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoSession
	}
	return fn(e.session, draftOf(e.session))
}

// CancelEdit discards the current draft. Cancelling an entity that was never
// saved removes it.
func (e *Editor) CancelEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.replaceSession(nil)
}

// ToggleExpanded flips the UI-only expansion flag.
func (e *Editor) ToggleExpanded(id domain.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	e.categories[idx].Expanded = !e.categories[idx].Expanded
	return nil
}

// Categories returns a deep copy of the canonical list.
func (e *Editor) Categories() []domain.Category {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Category, len(e.categories))
	for i, c := range e.categories {
		out[i] = c.Clone()
	}
	return out
}

// Session returns a copy of the current editing session, or nil.
func (e *Editor) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}
	return e.session.clone()
}

func (e *Editor) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.isLoading
}

func (e *Editor) IsItemLoading(id domain.ID, action loading.Action) bool {
	return e.loading.IsLoading(id.String(), action)
}

// View returns the filtered and sorted projection of the canonical list.
func (e *Editor) View(q Query) []domain.Category {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Project(e.categories, q)
}

// replaceSession installs next. A discarded session on an unsaved entity
// takes the entity with it, unless next keeps working on it.
func (e *Editor) replaceSession(next Session) {
	prev := e.session
	e.session = next

	if prev == nil || !prev.EntityID().IsTemporary() {
		return
	}

	switch p := prev.(type) {
	case *CategorySession:
		if touches(next, p.ID) {
			return
		}
		e.dropCategory(p.ID)
	case *SubcategorySession:
		if next != nil && next.EntityID() == p.ID {
			return
		}
		e.dropSubcategory(p.CategoryID, p.ID)
	}
}

// clearSession drops the session if it still targets id.
func (e *Editor) clearSession(id domain.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil && e.session.EntityID() == id {
		e.session = nil
	}
}

func (e *Editor) indexOf(id domain.ID) int {
	for i, c := range e.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) subcategory(categoryID, id domain.ID) (domain.Subcategory, bool) {
	idx := e.indexOf(categoryID)
	if idx < 0 {
		return domain.Subcategory{}, false
	}
	subIdx := e.categories[idx].FindSubcategory(id)
	if subIdx < 0 {
		return domain.Subcategory{}, false
	}
	return e.categories[idx].Subcategories[subIdx], true
}

func (e *Editor) sessionTargetExists(s Session) bool {
	switch s := s.(type) {
	case *CategorySession:
		return e.indexOf(s.ID) >= 0
	case *SubcategorySession:
		_, ok := e.subcategory(s.CategoryID, s.ID)
		return ok
	default:
		return false
	}
}

func (e *Editor) fail(err error, fallback string, fields log.Fields) error {
	log.WithFields(fields).WithError(err).Error("❌ " + fallback)
	e.notifier.Error(notify.Message(err, fallback))
	return err
}

func (e *Editor) invalid(message string) error {
	e.notifier.Error(message)
	return fmt.Errorf("%w: %s", ErrValidation, strings.ToLower(message))
}
