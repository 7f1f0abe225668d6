package editor

import (
	"context"
	"fmt"
	"strings"

	"mentorship/admin/internal/domain"
	"mentorship/admin/internal/loading"

	log "github.com/sirupsen/logrus"
)

// Save submits the current session. Temporary entities are created and the
// list is reloaded from the server; persisted entities are updated with only
// the changed fields and merged in place.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	session := e.session.clone()
	e.mu.Unlock()

	switch s := session.(type) {
	case *CategorySession:
		return e.saveCategory(ctx, *s)
	case *SubcategorySession:
		return e.saveSubcategory(ctx, *s)
	default:
		return ErrNoSession
	}
}

func (e *Editor) saveCategory(ctx context.Context, s CategorySession) error {
	name := strings.TrimSpace(s.Draft.Name)
	description := strings.TrimSpace(s.Draft.Description)
	if name == "" {
		return e.invalid("Category name is required")
	}

	action := loading.ActionUpdate
	if s.ID.IsTemporary() {
		action = loading.ActionCreate
	}
	key := s.ID.String()
	if e.loading.IsLoading(key, action) {
		return ErrBusy
	}

	var update domain.CategoryUpdate
	if !s.ID.IsTemporary() {
		e.mu.Lock()
		idx := e.indexOf(s.ID)
		if idx < 0 {
			e.session = nil
			e.mu.Unlock()
			return fmt.Errorf("category %s: %w", s.ID, ErrNotFound)
		}
		current := e.categories[idx]
		e.mu.Unlock()

		if name != current.Name {
			update.Name = &name
		}
		if description != current.Description {
			update.Description = &description
		}
		if update.IsEmpty() {
			e.clearSession(s.ID)
			return nil
		}
	}

	done := e.loading.Start(key, action)
	defer done()
	defer e.clearSession(s.ID)

	fields := log.Fields{"category": key, "action": action}

	if s.ID.IsTemporary() {
		if _, err := e.api.CreateCategory(ctx, domain.CategoryInput{Name: name, Description: description}); err != nil {
			return e.fail(err, "Failed to create category", fields)
		}
		e.notifier.Success("Category created successfully")
		return e.Load(ctx)
	}

	if err := e.api.UpdateCategory(ctx, s.ID.Value(), update); err != nil {
		return e.fail(err, "Failed to update category", fields)
	}

	e.mu.Lock()
	if idx := e.indexOf(s.ID); idx >= 0 {
		if update.Name != nil {
			e.categories[idx].Name = *update.Name
		}
		if update.Description != nil {
			e.categories[idx].Description = *update.Description
		}
	}
	e.mu.Unlock()

	e.notifier.Success("Category updated successfully")
	return nil
}

func (e *Editor) saveSubcategory(ctx context.Context, s SubcategorySession) error {
	name := strings.TrimSpace(s.Draft.Name)
	description := strings.TrimSpace(s.Draft.Description)
	if name == "" {
		return e.invalid("Subcategory name is required")
	}
	if s.Draft.ExpertCount < 0 {
		return e.invalid("Expert count cannot be negative")
	}
	if s.ID.IsTemporary() && s.CategoryID.IsTemporary() {
		return e.invalid("Save the category before adding subcategories")
	}

	action := loading.ActionUpdate
	if s.ID.IsTemporary() {
		action = loading.ActionCreate
	}
	key := s.ID.String()
	if e.loading.IsLoading(key, action) {
		return ErrBusy
	}

	var update domain.SubcategoryUpdate
	if !s.ID.IsTemporary() {
		e.mu.Lock()
		current, ok := e.subcategory(s.CategoryID, s.ID)
		if !ok {
			e.session = nil
			e.mu.Unlock()
			return fmt.Errorf("subcategory %s: %w", s.ID, ErrNotFound)
		}
		e.mu.Unlock()

		if name != current.Name {
			update.Name = &name
		}
		if description != current.Description {
			update.Description = &description
		}
		if count := s.Draft.ExpertCount; count != current.ExpertCount {
			update.ExpertCount = &count
		}
		if update.IsEmpty() {
			e.clearSession(s.ID)
			return nil
		}
	}

	done := e.loading.Start(key, action)
	defer done()
	defer e.clearSession(s.ID)

	fields := log.Fields{"category": s.CategoryID.String(), "subcategory": key, "action": action}

	if s.ID.IsTemporary() {
		in := domain.SubcategoryInput{Name: name, Description: description, ExpertCount: s.Draft.ExpertCount}
		if _, err := e.api.CreateSubcategory(ctx, s.CategoryID.Value(), in); err != nil {
			return e.fail(err, "Failed to create subcategory", fields)
		}
		e.notifier.Success("Subcategory created successfully")
		return e.Load(ctx)
	}

	if err := e.api.UpdateSubcategory(ctx, s.CategoryID.Value(), s.ID.Value(), update); err != nil {
		return e.fail(err, "Failed to update subcategory", fields)
	}

	e.mu.Lock()
	if idx := e.indexOf(s.CategoryID); idx >= 0 {
		if subIdx := e.categories[idx].FindSubcategory(s.ID); subIdx >= 0 {
			sub := &e.categories[idx].Subcategories[subIdx]
			if update.Name != nil {
				sub.Name = *update.Name
			}
			if update.Description != nil {
				sub.Description = *update.Description
			}
			if update.ExpertCount != nil {
				sub.ExpertCount = *update.ExpertCount
			}
		}
	}
	e.mu.Unlock()

	e.notifier.Success("Subcategory updated successfully")
	return nil
}

// DeleteCategory removes the category and all of its subcategories after
// confirmation. Temporary categories are removed locally.
func (e *Editor) DeleteCategory(ctx context.Context, id domain.ID, confirmer Confirmer) error {
	if confirmer == nil {
		return ErrNoConfirm
	}

	e.mu.Lock()
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	category := e.categories[idx]
	e.mu.Unlock()

	prompt := fmt.Sprintf("Delete category %q?", category.Name)
	if n := len(category.Subcategories); n > 0 {
		prompt = fmt.Sprintf("Delete category %q? This will also delete its %d subcategories.", category.Name, n)
	}
	if !confirmer.Confirm(prompt) {
		return nil
	}

	if id.IsTemporary() {
		e.removeCategory(id)
		return nil
	}

	key := id.String()
	if e.loading.IsLoading(key, loading.ActionDelete) {
		return ErrBusy
	}
	done := e.loading.Start(key, loading.ActionDelete)
	defer done()

	if err := e.api.DeleteCategory(ctx, id.Value()); err != nil {
		return e.fail(err, "Failed to delete category", log.Fields{"category": key})
	}

	e.removeCategory(id)
	e.notifier.Success("Category deleted successfully")
	return nil
}

// DeleteSubcategory removes a single subcategory after confirmation.
// Temporary subcategories are removed locally.
func (e *Editor) DeleteSubcategory(ctx context.Context, categoryID, id domain.ID, confirmer Confirmer) error {
	if confirmer == nil {
		return ErrNoConfirm
	}

	e.mu.Lock()
	sub, ok := e.subcategory(categoryID, id)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("subcategory %s: %w", id, ErrNotFound)
	}

	if !confirmer.Confirm(fmt.Sprintf("Delete subcategory %q?", sub.Name)) {
		return nil
	}

	if id.IsTemporary() {
		e.removeSubcategory(categoryID, id)
		return nil
	}

	key := id.String()
	if e.loading.IsLoading(key, loading.ActionDelete) {
		return ErrBusy
	}
	done := e.loading.Start(key, loading.ActionDelete)
	defer done()

	if err := e.api.DeleteSubcategory(ctx, categoryID.Value(), id.Value()); err != nil {
		return e.fail(err, "Failed to delete subcategory", log.Fields{"category": categoryID.String(), "subcategory": key})
	}

	e.removeSubcategory(categoryID, id)
	e.notifier.Success("Subcategory deleted successfully")
	return nil
}

func (e *Editor) removeCategory(id domain.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.dropCategory(id)
	if touches(e.session, id) {
		e.session = nil
	}
}

func (e *Editor) removeSubcategory(categoryID, id domain.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.dropSubcategory(categoryID, id)
	if e.session != nil && e.session.EntityID() == id {
		e.session = nil
	}
}

func (e *Editor) dropCategory(id domain.ID) {
	kept := make([]domain.Category, 0, len(e.categories))
	for _, c := range e.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	e.categories = kept
}

func (e *Editor) dropSubcategory(categoryID, id domain.ID) {
	idx := e.indexOf(categoryID)
	if idx < 0 {
		return
	}

	subs := e.categories[idx].Subcategories
	kept := make([]domain.Subcategory, 0, len(subs))
	for _, s := range subs {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	e.categories[idx].Subcategories = kept
}
