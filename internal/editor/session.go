package editor

import "mentorship/admin/internal/domain"

// Draft holds the mutable fields of the entity being edited.
type Draft struct {
	Name        string
	Description string
	ExpertCount int
}

// Session is the single in-progress edit. A nil Session means nothing is
// being edited; the concrete types are *CategorySession and *SubcategorySession.
type Session interface {
	EntityID() domain.ID
	CurrentDraft() Draft
	clone() Session
}

type CategorySession struct {
	ID    domain.ID
	Draft Draft
}

func (s *CategorySession) EntityID() domain.ID { return s.ID }
func (s *CategorySession) CurrentDraft() Draft { return s.Draft }

func (s *CategorySession) clone() Session {
	c := *s
	return &c
}

type SubcategorySession struct {
	CategoryID domain.ID
	ID         domain.ID
	Draft      Draft
}

func (s *SubcategorySession) EntityID() domain.ID { return s.ID }
func (s *SubcategorySession) CurrentDraft() Draft { return s.Draft }

func (s *SubcategorySession) clone() Session {
	c := *s
	return &c
}

func draftOf(s Session) *Draft {
	switch s := s.(type) {
	case *CategorySession:
		return &s.Draft
	case *SubcategorySession:
		return &s.Draft
	default:
		return nil
	}
}

// touches reports whether the session edits categoryID or one of its subcategories.
func touches(s Session, categoryID domain.ID) bool {
	switch s := s.(type) {
	case *CategorySession:
		return s.ID == categoryID
	case *SubcategorySession:
		return s.CategoryID == categoryID
	default:
		return false
	}
}
