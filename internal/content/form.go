package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mentorship/admin/internal/domain"
	"mentorship/admin/internal/loading"
	"mentorship/admin/internal/notify"

	log "github.com/sirupsen/logrus"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNoChanges  = errors.New("no changes to save")
	ErrBusy       = errors.New("page save already in flight")
)

type PageAPI interface {
	CreatePage(ctx context.Context, in domain.PageInput) (domain.StaticPage, error)
	UpdatePage(ctx context.Context, id string, update domain.PageUpdate) error
}

// ChangeRecorder keeps an audit trail of applied page updates.
type ChangeRecorder interface {
	RecordChange(ctx context.Context, pageID string, pageType domain.PageType, update domain.PageUpdate) error
}

type FormOption func(*Form)

func WithChangeRecorder(recorder ChangeRecorder) FormOption {
	return func(f *Form) { f.recorder = recorder }
}

func WithTracker(tracker *loading.Tracker) FormOption {
	return func(f *Form) { f.loading = tracker }
}

// Form edits one static page. It holds the live values and the snapshot taken
// when the page was opened or last saved. Not safe for concurrent use.
type Form struct {
	api      PageAPI
	notifier notify.Notifier
	recorder ChangeRecorder
	loading  *loading.Tracker

	pageID   string
	pageType domain.PageType

	title   string
	content Content

	originalTitle   string
	originalContent Content
}

func OpenForm(page domain.StaticPage, api PageAPI, notifier notify.Notifier, opts ...FormOption) (*Form, error) {
	normalized, err := Normalize(page)
	if err != nil {
		return nil, err
	}

	f := &Form{
		api:             api,
		notifier:        notifier,
		loading:         loading.NewTracker(),
		pageID:          page.ID,
		pageType:        page.Type,
		title:           page.Title,
		content:         normalized,
		originalTitle:   page.Title,
		originalContent: Clone(normalized),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Form) PageID() string            { return f.pageID }
func (f *Form) PageType() domain.PageType { return f.pageType }
func (f *Form) Title() string             { return f.title }

func (f *Form) SetTitle(title string) {
	f.title = title
}

// Content returns the live value; edits through it are picked up by Save.
func (f *Form) Content() Content {
	return f.content
}

// SetContent replaces the live value with one of the same page type.
func (f *Form) SetContent(c Content) error {
	if c == nil || c.PageType() != f.pageType {
		return fmt.Errorf("%w: content does not match %s page", ErrValidation, f.pageType)
	}
	f.content = c
	return nil
}

func (f *Form) ChangedFields() (domain.PageUpdate, error) {
	return ChangedFields(f.title, f.content, f.originalTitle, f.originalContent)
}

func (f *Form) IsSaving() bool {
	return f.loading.IsLoading(f.pageID, loading.ActionUpdate)
}

// Save sends only the changed fields. With nothing changed no request is made
// and ErrNoChanges is returned.
func (f *Form) Save(ctx context.Context) error {
	if strings.TrimSpace(f.title) == "" {
		f.notifier.Error("Page title is required")
		return fmt.Errorf("%w: page title is required", ErrValidation)
	}

	update, err := f.ChangedFields()
	if err != nil {
		log.WithField("page", f.pageID).WithError(err).Error("❌ Failed to compute page changes")
		f.notifier.Error("Failed to prepare page update")
		return err
	}
	if update.IsEmpty() {
		f.notifier.Info("No changes to save")
		return ErrNoChanges
	}

	if f.IsSaving() {
		return ErrBusy
	}
	done := f.loading.Start(f.pageID, loading.ActionUpdate)
	defer done()

	fields := log.Fields{"page": f.pageID, "type": f.pageType}

	if err := f.api.UpdatePage(ctx, f.pageID, update); err != nil {
		log.WithFields(fields).WithError(err).Error("❌ Failed to update page")
		f.notifier.Error(notify.Message(err, "Failed to update page"))
		return err
	}

	if update.Title != nil {
		f.title = *update.Title
	}
	f.originalTitle = f.title
	f.originalContent = Clone(f.content)

	log.WithFields(fields).Info("📝 Page updated")
	f.notifier.Success(fmt.Sprintf("%s page updated successfully", f.pageType.GetPageName()))

	if f.recorder != nil {
		if err := f.recorder.RecordChange(ctx, f.pageID, f.pageType, update); err != nil {
			log.WithFields(fields).WithError(err).Warn("⚠️ Failed to record page change")
		}
	}
	return nil
}

// CreatePage validates and submits a new page. A nil content submits the
// empty template for pageType.
func CreatePage(ctx context.Context, api PageAPI, notifier notify.Notifier, pageType domain.PageType, title string, c Content) (domain.StaticPage, error) {
	if !pageType.IsValid() {
		notifier.Error("Select a valid page type")
		return domain.StaticPage{}, fmt.Errorf("%w: %q", ErrUnknownPageType, pageType)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		notifier.Error("Page title is required")
		return domain.StaticPage{}, fmt.Errorf("%w: page title is required", ErrValidation)
	}

	if c == nil {
		c, _ = Empty(pageType)
	}
	if c.PageType() != pageType {
		notifier.Error("Page content does not match the page type")
		return domain.StaticPage{}, fmt.Errorf("%w: content does not match %s page", ErrValidation, pageType)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return domain.StaticPage{}, fmt.Errorf("failed to encode %s content: %w", pageType, err)
	}

	page, err := api.CreatePage(ctx, domain.PageInput{Type: pageType, Title: title, Content: raw})
	if err != nil {
		log.WithField("type", pageType).WithError(err).Error("❌ Failed to create page")
		notifier.Error(notify.Message(err, "Failed to create page"))
		return domain.StaticPage{}, err
	}

	notifier.Success(fmt.Sprintf("%s page created successfully", pageType.GetPageName()))
	return page, nil
}
