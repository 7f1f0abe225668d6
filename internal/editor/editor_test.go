package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"mentorship/admin/internal/domain"
	"mentorship/admin/internal/loading"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu sync.Mutex

	categories []domain.Category
	nextID     int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	deleteGate chan struct{}

	calls           []string
	createdInputs   []domain.CategoryInput
	categoryUpdates []domain.CategoryUpdate
	subInputs       []domain.SubcategoryInput
	subUpdates      []domain.SubcategoryUpdate
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Category, len(f.categories))
	for i, c := range f.categories {
		out[i] = c.Clone()
	}
	return out, nil
}

func (f *fakeAPI) CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	f.record("create")
	if f.createErr != nil {
		return domain.Category{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := domain.Category{
		ID:          domain.PersistedID(fmt.Sprintf("srv-%d", f.nextID)),
		Name:        in.Name,
		Description: in.Description,
	}
	f.categories = append(f.categories, c)
	f.createdInputs = append(f.createdInputs, in)
	return c, nil
}

func (f *fakeAPI) UpdateCategory(ctx context.Context, id string, update domain.CategoryUpdate) error {
	f.record("update:" + id)
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryUpdates = append(f.categoryUpdates, update)
	return nil
}

func (f *fakeAPI) DeleteCategory(ctx context.Context, id string) error {
	f.record("delete:" + id)
	if f.deleteGate != nil {
		<-f.deleteGate
	}
	return f.deleteErr
}

func (f *fakeAPI) CreateSubcategory(ctx context.Context, categoryID string, in domain.SubcategoryInput) (domain.Subcategory, error) {
	f.record("create-sub:" + categoryID)
	if f.createErr != nil {
		return domain.Subcategory{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	sub := domain.Subcategory{
		ID:          domain.PersistedID(fmt.Sprintf("srv-sub-%d", f.nextID)),
		Name:        in.Name,
		Description: in.Description,
		ExpertCount: in.ExpertCount,
	}
	for i := range f.categories {
		if f.categories[i].ID.Value() == categoryID {
			f.categories[i].Subcategories = append(f.categories[i].Subcategories, sub)
		}
	}
	f.subInputs = append(f.subInputs, in)
	return sub, nil
}

func (f *fakeAPI) UpdateSubcategory(ctx context.Context, categoryID, id string, update domain.SubcategoryUpdate) error {
	f.record("update-sub:" + id)
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subUpdates = append(f.subUpdates, update)
	return nil
}

func (f *fakeAPI) DeleteSubcategory(ctx context.Context, categoryID, id string) error {
	f.record("delete-sub:" + id)
	return f.deleteErr
}

type recordingNotifier struct {
	mu      sync.Mutex
	success []string
	errors  []string
	infos   []string
}

func (n *recordingNotifier) Success(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, m)
}

func (n *recordingNotifier) Error(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, m)
}

func (n *recordingNotifier) Info(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, m)
}

type serverError struct{ msg string }

func (e *serverError) Error() string         { return "status 500" }
func (e *serverError) ServerMessage() string { return e.msg }

var alwaysConfirm = ConfirmFunc(func(string) bool { return true })

func seedCategories() []domain.Category {
	return []domain.Category{
		{
			ID:          domain.PersistedID("c1"),
			Name:        "Design",
			Description: "Visual and product design",
			Subcategories: []domain.Subcategory{
				{ID: domain.PersistedID("s1"), Name: "Figma", Description: "Prototyping", ExpertCount: 3},
				{ID: domain.PersistedID("s2"), Name: "Research", Description: "User interviews", ExpertCount: 0},
			},
		},
		{
			ID:            domain.PersistedID("c2"),
			Name:          "Finance",
			Description:   "Money matters",
			Subcategories: []domain.Subcategory{},
		},
	}
}

func loadedEditor(t *testing.T, opts ...Option) (*Editor, *fakeAPI, *recordingNotifier) {
	t.Helper()

	api := &fakeAPI{categories: seedCategories()}
	n := &recordingNotifier{}
	e := New(api, n, opts...)
	require.NoError(t, e.Load(context.Background()))
	return e, api, n
}

type memoryExpansion struct {
	ids   []string
	saved []string
}

func (m *memoryExpansion) LoadExpanded(ctx context.Context) ([]string, error) { return m.ids, nil }

func (m *memoryExpansion) SaveExpanded(ctx context.Context, ids []string) error {
	m.saved = ids
	return nil
}

func TestLoad_AppliesStoredExpansion(t *testing.T) {
	store := &memoryExpansion{ids: []string{"c2"}}
	e, _, _ := loadedEditor(t, WithExpansionStore(store))

	categories := e.Categories()
	require.Len(t, categories, 2)
	assert.False(t, categories[0].Expanded)
	assert.True(t, categories[1].Expanded)
	assert.Equal(t, 3, categories[0].EffectiveExpertCount())
	assert.False(t, e.IsLoading())

	require.NoError(t, e.ToggleExpanded(domain.PersistedID("c1")))
	require.NoError(t, e.PersistExpansion(context.Background()))
	assert.ElementsMatch(t, []string{"c1", "c2"}, store.saved)
}

func TestLoad_FailureLeavesStateEmpty(t *testing.T) {
	api := &fakeAPI{listErr: &serverError{msg: "Database unavailable"}}
	n := &recordingNotifier{}
	e := New(api, n)

	err := e.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, e.Categories())
	assert.False(t, e.IsLoading())
	assert.Equal(t, []string{"Database unavailable"}, n.errors)
}

// Scenario A
func TestView_SearchMatchingCategoryNameKeepsSubcategories(t *testing.T) {
	e, _, _ := loadedEditor(t)

	view := e.View(Query{Search: "DESIGN", SortKey: SortByName})
	require.Len(t, view, 1)
	assert.Equal(t, "Design", view[0].Name)
	require.Len(t, view[0].Subcategories, 2)
}

func TestView_SubcategoryMatchRetainsParent(t *testing.T) {
	e, _, _ := loadedEditor(t)

	view := e.View(Query{Search: "interview"})
	require.Len(t, view, 1)
	require.Len(t, view[0].Subcategories, 1)
	assert.Equal(t, "Research", view[0].Subcategories[0].Name)

	// canonical state is untouched by the projection
	assert.Len(t, e.Categories()[0].Subcategories, 2)
}

func TestView_HideEmptyAndSortByExpertCount(t *testing.T) {
	categories := []domain.Category{
		{ID: domain.PersistedID("a"), Name: "Alpha", Subcategories: []domain.Subcategory{
			{ID: domain.PersistedID("a1"), Name: "x", ExpertCount: 1},
			{ID: domain.PersistedID("a2"), Name: "y", ExpertCount: 0},
		}},
		{ID: domain.PersistedID("b"), Name: "beta", Subcategories: []domain.Subcategory{
			{ID: domain.PersistedID("b1"), Name: "p", ExpertCount: 2},
			{ID: domain.PersistedID("b2"), Name: "q", ExpertCount: 7},
		}},
		{ID: domain.PersistedID("c"), Name: "Gamma"},
	}

	view := Project(categories, Query{SortKey: SortByExpertCount, Descending: true, HideEmpty: true})
	require.Len(t, view, 3)
	assert.Equal(t, []string{"beta", "Alpha", "Gamma"}, []string{view[0].Name, view[1].Name, view[2].Name})
	assert.Equal(t, "q", view[0].Subcategories[0].Name)
	assert.Len(t, view[1].Subcategories, 1)

	byName := Project(categories, Query{SortKey: SortByName})
	assert.Equal(t, []string{"Alpha", "beta", "Gamma"}, []string{byName[0].Name, byName[1].Name, byName[2].Name})
	assert.Len(t, categories[0].Subcategories, 2)
}

// Scenario B
func TestAddThenDeleteTemporaryCategory_NoNetwork(t *testing.T) {
	e, api, _ := loadedEditor(t)
	before := len(e.Categories())
	calls := api.callCount()

	id := e.AddCategory()
	assert.True(t, id.IsTemporary())
	assert.True(t, strings.HasPrefix(id.String(), "temp-"))
	assert.Len(t, e.Categories(), before+1)

	session, ok := e.Session().(*CategorySession)
	require.True(t, ok)
	assert.Equal(t, id, session.ID)

	require.NoError(t, e.DeleteCategory(context.Background(), id, alwaysConfirm))
	assert.Len(t, e.Categories(), before)
	assert.Equal(t, calls, api.callCount())
	assert.Nil(t, e.Session())
}

func TestAbandonedEditsLeaveStateUnchanged(t *testing.T) {
	e, api, _ := loadedEditor(t)
	before := e.Categories()
	calls := api.callCount()

	e.AddCategory()
	require.NoError(t, e.SetDraftName("Marketing"))
	e.CancelEdit()
	assert.Equal(t, before, e.Categories())

	e.AddCategory()
	require.NoError(t, e.BeginEditCategory(domain.PersistedID("c1")))
	require.NoError(t, e.SetDraftDescription("changed"))
	e.CancelEdit()
	assert.Equal(t, before, e.Categories())

	_, err := e.AddSubcategory(domain.PersistedID("c2"))
	require.NoError(t, err)
	e.CancelEdit()
	after := e.Categories()
	assert.Empty(t, after[1].Subcategories)

	assert.Equal(t, calls, api.callCount())
}

// Scenario C
func TestSavePersistedCategory_SendsOnlyDescription(t *testing.T) {
	e, api, n := loadedEditor(t)
	id := domain.PersistedID("c1")

	require.NoError(t, e.BeginEditCategory(id))
	require.NoError(t, e.SetDraftDescription("Product, visual and motion design"))
	require.NoError(t, e.Save(context.Background()))

	require.Len(t, api.categoryUpdates, 1)
	update := api.categoryUpdates[0]
	assert.Nil(t, update.Name)
	require.NotNil(t, update.Description)
	assert.Equal(t, "Product, visual and motion design", *update.Description)

	c := e.Categories()[0]
	assert.Equal(t, "Design", c.Name)
	assert.Equal(t, "Product, visual and motion design", c.Description)
	assert.Nil(t, e.Session())
	assert.False(t, e.IsItemLoading(id, loading.ActionUpdate))
	assert.Equal(t, []string{"Category updated successfully"}, n.success)
}

func TestSavePersistedCategory_NoChangesSkipsRequest(t *testing.T) {
	e, api, _ := loadedEditor(t)
	calls := api.callCount()

	require.NoError(t, e.BeginEditCategory(domain.PersistedID("c1")))
	require.NoError(t, e.SetDraftName("  Design  "))
	require.NoError(t, e.Save(context.Background()))

	assert.Equal(t, calls, api.callCount())
	assert.Nil(t, e.Session())
}

func TestSavePersistedCategory_FailureKeepsState(t *testing.T) {
	e, api, n := loadedEditor(t)
	api.updateErr = &serverError{msg: "Name already taken"}
	before := e.Categories()

	require.NoError(t, e.BeginEditCategory(domain.PersistedID("c2")))
	require.NoError(t, e.SetDraftName("Design"))
	err := e.Save(context.Background())

	require.Error(t, err)
	assert.Equal(t, before, e.Categories())
	assert.Equal(t, []string{"Name already taken"}, n.errors)
	assert.Nil(t, e.Session())
	assert.False(t, e.IsItemLoading(domain.PersistedID("c2"), loading.ActionUpdate))
}

func TestSaveTemporaryCategory_CreatesAndReloads(t *testing.T) {
	e, api, n := loadedEditor(t)

	id := e.AddCategory()
	require.NoError(t, e.SetDraftName("  Marketing "))
	require.NoError(t, e.SetDraftDescription("Growth and brand"))
	require.NoError(t, e.Save(context.Background()))

	require.Len(t, api.createdInputs, 1)
	assert.Equal(t, domain.CategoryInput{Name: "Marketing", Description: "Growth and brand"}, api.createdInputs[0])

	categories := e.Categories()
	require.Len(t, categories, 3)
	for _, c := range categories {
		assert.False(t, c.ID.IsTemporary())
		assert.NotEqual(t, id, c.ID)
	}
	assert.Equal(t, "srv-1", categories[2].ID.Value())
	assert.Nil(t, e.Session())
	assert.False(t, e.IsItemLoading(id, loading.ActionCreate))
	assert.Equal(t, []string{"Category created successfully"}, n.success)
	assert.Equal(t, []string{"list", "create", "list"}, api.calls)
}

func TestSaveTemporaryCategory_FailureKeepsEntity(t *testing.T) {
	e, api, n := loadedEditor(t)
	api.createErr = errors.New("connection reset")

	id := e.AddCategory()
	require.NoError(t, e.SetDraftName("Marketing"))
	require.Error(t, e.Save(context.Background()))

	categories := e.Categories()
	require.Len(t, categories, 3)
	assert.Equal(t, id, categories[2].ID)
	assert.Nil(t, e.Session())
	assert.False(t, e.IsItemLoading(id, loading.ActionCreate))
	assert.Equal(t, []string{"connection reset"}, n.errors)

	// still editable
	require.NoError(t, e.BeginEditCategory(id))
}

func TestSave_ValidationBlocksRequest(t *testing.T) {
	e, api, n := loadedEditor(t)
	calls := api.callCount()

	e.AddCategory()
	require.NoError(t, e.SetDraftName("   "))
	err := e.Save(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, calls, api.callCount())
	assert.NotNil(t, e.Session())
	assert.Equal(t, []string{"Category name is required"}, n.errors)
}

func TestSave_WithoutSession(t *testing.T) {
	e, _, _ := loadedEditor(t)
	assert.ErrorIs(t, e.Save(context.Background()), ErrNoSession)
	assert.ErrorIs(t, e.SetDraftName("x"), ErrNoSession)
}

func TestSubcategory_AddAndSave(t *testing.T) {
	e, api, _ := loadedEditor(t)
	parent := domain.PersistedID("c2")

	subID, err := e.AddSubcategory(parent)
	require.NoError(t, err)
	assert.True(t, subID.IsTemporary())

	c := e.Categories()[1]
	assert.True(t, c.Expanded)
	require.Len(t, c.Subcategories, 1)
	assert.True(t, c.Subcategories[0].IsNew)

	require.NoError(t, e.SetDraftName("Budgeting"))
	require.NoError(t, e.SetDraftExpertCount(4))
	require.NoError(t, e.Save(context.Background()))

	require.Len(t, api.subInputs, 1)
	assert.Equal(t, domain.SubcategoryInput{Name: "Budgeting", Description: "Subcategory description", ExpertCount: 4}, api.subInputs[0])

	c = e.Categories()[1]
	require.Len(t, c.Subcategories, 1)
	assert.False(t, c.Subcategories[0].ID.IsTemporary())
	assert.True(t, c.Expanded, "expansion survives the reload")
}

func TestSubcategory_UnderTemporaryCategoryRequiresSavedParent(t *testing.T) {
	e, api, _ := loadedEditor(t)
	calls := api.callCount()

	parent := e.AddCategory()
	_, err := e.AddSubcategory(parent)
	require.NoError(t, err)
	assert.Len(t, e.Categories(), 3, "adding a child keeps the unsaved parent")

	err = e.Save(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, calls, api.callCount())
}

func TestSubcategory_UpdateExpertCountMergesInPlace(t *testing.T) {
	e, api, _ := loadedEditor(t)

	require.NoError(t, e.BeginEditSubcategory(domain.PersistedID("c1"), domain.PersistedID("s2")))
	require.NoError(t, e.SetDraftExpertCount(5))
	require.NoError(t, e.Save(context.Background()))

	require.Len(t, api.subUpdates, 1)
	assert.Nil(t, api.subUpdates[0].Name)
	assert.Equal(t, 5, *api.subUpdates[0].ExpertCount)

	c := e.Categories()[0]
	assert.Equal(t, 5, c.Subcategories[1].ExpertCount)
	assert.Equal(t, 8, c.EffectiveExpertCount())
}

func TestSetDraftExpertCount_Validation(t *testing.T) {
	e, _, _ := loadedEditor(t)

	require.NoError(t, e.BeginEditCategory(domain.PersistedID("c1")))
	assert.ErrorIs(t, e.SetDraftExpertCount(3), ErrValidation)

	require.NoError(t, e.BeginEditSubcategory(domain.PersistedID("c1"), domain.PersistedID("s1")))
	assert.ErrorIs(t, e.SetDraftExpertCount(-1), ErrValidation)
}

func TestDeletePersistedCategory(t *testing.T) {
	t.Run("removed on success", func(t *testing.T) {
		e, api, n := loadedEditor(t)
		var prompt string
		confirm := ConfirmFunc(func(p string) bool {
			prompt = p
			return true
		})

		require.NoError(t, e.BeginEditSubcategory(domain.PersistedID("c1"), domain.PersistedID("s1")))
		require.NoError(t, e.DeleteCategory(context.Background(), domain.PersistedID("c1"), confirm))

		assert.Contains(t, prompt, `"Design"`)
		assert.Contains(t, prompt, "2 subcategories")
		assert.Contains(t, api.calls, "delete:c1")
		require.Len(t, e.Categories(), 1)
		assert.Equal(t, "Finance", e.Categories()[0].Name)
		assert.Nil(t, e.Session())
		assert.Equal(t, []string{"Category deleted successfully"}, n.success)
	})

	t.Run("kept on failure", func(t *testing.T) {
		e, api, n := loadedEditor(t)
		api.deleteErr = &serverError{msg: "Category has active bookings"}

		err := e.DeleteCategory(context.Background(), domain.PersistedID("c1"), alwaysConfirm)
		require.Error(t, err)
		assert.Len(t, e.Categories(), 2)
		assert.Equal(t, []string{"Category has active bookings"}, n.errors)
		assert.False(t, e.IsItemLoading(domain.PersistedID("c1"), loading.ActionDelete))
	})

	t.Run("declined", func(t *testing.T) {
		e, api, _ := loadedEditor(t)
		calls := api.callCount()

		decline := ConfirmFunc(func(string) bool { return false })
		require.NoError(t, e.DeleteCategory(context.Background(), domain.PersistedID("c1"), decline))
		assert.Len(t, e.Categories(), 2)
		assert.Equal(t, calls, api.callCount())
	})

	t.Run("nil confirmer", func(t *testing.T) {
		e, _, _ := loadedEditor(t)
		assert.ErrorIs(t, e.DeleteCategory(context.Background(), domain.PersistedID("c1"), nil), ErrNoConfirm)
	})
}

func TestDeleteSubcategory(t *testing.T) {
	e, api, _ := loadedEditor(t)

	require.NoError(t, e.DeleteSubcategory(context.Background(), domain.PersistedID("c1"), domain.PersistedID("s1"), alwaysConfirm))
	assert.Contains(t, api.calls, "delete-sub:s1")

	c := e.Categories()[0]
	require.Len(t, c.Subcategories, 1)
	assert.Equal(t, "Research", c.Subcategories[0].Name)

	calls := api.callCount()
	tempID, err := e.AddSubcategory(domain.PersistedID("c1"))
	require.NoError(t, err)
	require.NoError(t, e.DeleteSubcategory(context.Background(), domain.PersistedID("c1"), tempID, alwaysConfirm))
	assert.Equal(t, calls, api.callCount())
	assert.Len(t, e.Categories()[0].Subcategories, 1)
}

func TestDeleteCategory_InFlightRejectsDuplicate(t *testing.T) {
	e, api, _ := loadedEditor(t)
	api.deleteGate = make(chan struct{})
	id := domain.PersistedID("c2")

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.DeleteCategory(context.Background(), id, alwaysConfirm)
	}()

	require.Eventually(t, func() bool {
		return e.IsItemLoading(id, loading.ActionDelete)
	}, time.Second, 5*time.Millisecond)

	// unrelated entities stay editable
	require.NoError(t, e.BeginEditCategory(domain.PersistedID("c1")))
	assert.ErrorIs(t, e.DeleteCategory(context.Background(), id, alwaysConfirm), ErrBusy)

	close(api.deleteGate)
	require.NoError(t, <-errCh)
	assert.False(t, e.IsItemLoading(id, loading.ActionDelete))
	assert.Len(t, e.Categories(), 1)
}
