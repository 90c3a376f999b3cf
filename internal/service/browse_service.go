package service

import (
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/store"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"go.uber.org/zap"
)

// PageView describes the exact catalog subset shown to the user for one turn.
type PageView struct {
	Rows       []models.CatalogRow
	Page       int
	TotalPages int
	TotalCount int
	ViewType   string
}

// StartIndex is the 1-based display index of the first row on this page.
// Product buttons carry these indices back as the add-to-cart entity.
func (v PageView) StartIndex() int {
	return v.Page*PageSize + 1
}

// IsLastPage reports whether no further page exists for this view.
func (v PageView) IsLastPage() bool {
	return v.Page >= v.TotalPages-1
}

// BrowseOutcome says how a transition resolved, so the handler can pick the
// right message and button set.
type BrowseOutcome int

const (
	// OutcomePage means View holds a non-empty page to render.
	OutcomePage BrowseOutcome = iota
	// OutcomeEmptyView means the selected view has zero rows in this category.
	OutcomeEmptyView
	// OutcomeEndOfResults means an advance had nowhere left to go.
	OutcomeEndOfResults
	// OutcomeChooseView means a resume found a category but no view to resume.
	OutcomeChooseView
	// OutcomeNotFound means a resume found no rows even at page 0.
	OutcomeNotFound
	// OutcomeNeedCategory means a resume had no category and the caller
	// should fall back to the category reset flow.
	OutcomeNeedCategory
)

// BrowseResult pairs the resolved outcome with the page to show (when
// Outcome == OutcomePage) and the state to persist for the next turn.
type BrowseResult struct {
	Outcome BrowseOutcome
	View    PageView
	State   models.BrowsingState
	// FellBack is set by Resume when the persisted page no longer exists
	// and the first page is shown instead.
	FellBack bool
}

// BrowseService owns the view/pagination transitions. It is stateless:
// every call takes the slot-decoded BrowsingState and returns the next one.
type BrowseService struct {
	catalog *store.Catalog
	logger  *zap.Logger
}

// NewBrowseService creates a browse service over a loaded catalog.
func NewBrowseService(catalog *store.Catalog) *BrowseService {
	return &BrowseService{
		catalog: catalog,
		logger:  util.GetLogger(),
	}
}

func (s *BrowseService) filter(st models.BrowsingState, viewType string) ([]models.CatalogRow, error) {
	if s.catalog == nil {
		return nil, ErrDataUnavailable
	}
	return s.catalog.Filter(st.MainCategory, st.SubCategory, viewType), nil
}

// SelectView activates a view type at page 0. When the turn is a
// continuation and a page is already persisted, the call is redirected into
// Advance so the user lands back on the page they left, not on page 0.
// An empty view clears view_type so the handler can offer the alternatives.
func (s *BrowseService) SelectView(st models.BrowsingState, viewType string) (BrowseResult, error) {
	if st.Continuing && st.CurrentPage > 0 {
		s.logger.Debug("Continuing browse, redirecting view selection to advance",
			zap.String("view_type", viewType),
			zap.Int("current_page", st.CurrentPage))
		return s.Advance(st)
	}

	rows, err := s.filter(st, viewType)
	if err != nil {
		return BrowseResult{}, err
	}

	next := st
	next.LastViewType = st.ViewType
	next.CurrentPage = 0
	next.LastPage = 0

	if len(rows) == 0 {
		next.ViewType = ""
		return BrowseResult{Outcome: OutcomeEmptyView, State: next}, nil
	}

	next.ViewType = viewType
	totalPages := TotalPages(len(rows))
	return BrowseResult{
		Outcome: OutcomePage,
		View: PageView{
			Rows:       PageSlice(rows, 0),
			Page:       0,
			TotalPages: totalPages,
			TotalCount: len(rows),
			ViewType:   viewType,
		},
		State: next,
	}, nil
}

// Advance moves one page forward, or re-renders the persisted page when the
// turn is a continuation. The target is clamped to the last valid page, and
// advancing at the last page is an idempotent end-of-results: the persisted
// page never moves past the end.
func (s *BrowseService) Advance(st models.BrowsingState) (BrowseResult, error) {
	viewType := st.ResolveViewType()

	rows, err := s.filter(st, viewType)
	if err != nil {
		return BrowseResult{}, err
	}
	totalPages := TotalPages(len(rows))

	next := st
	next.ViewType = viewType

	atEnd := totalPages == 0 || (!st.Continuing && st.CurrentPage >= totalPages-1)
	if atEnd {
		next.LastPage = st.CurrentPage
		return BrowseResult{
			Outcome: OutcomeEndOfResults,
			View:    PageView{TotalPages: totalPages, TotalCount: len(rows), ViewType: viewType, Page: st.CurrentPage},
			State:   next,
		}, nil
	}

	target := st.CurrentPage
	if !st.Continuing {
		target++
	}
	page := ClampPage(target, totalPages)

	next.CurrentPage = page
	next.LastPage = page
	return BrowseResult{
		Outcome: OutcomePage,
		View: PageView{
			Rows:       PageSlice(rows, page),
			Page:       page,
			TotalPages: totalPages,
			TotalCount: len(rows),
			ViewType:   viewType,
		},
		State: next,
	}, nil
}

// Resume re-renders the page the user was on before a cart interruption.
// It never advances. When the persisted page is beyond the end it is
// clamped; when the clamped page is empty it falls back once to page 0.
func (s *BrowseService) Resume(st models.BrowsingState) (BrowseResult, error) {
	if st.MainCategory == "" || st.SubCategory == "" {
		return BrowseResult{Outcome: OutcomeNeedCategory, State: st}, nil
	}

	viewType := st.ViewType
	if viewType == "" {
		viewType = st.LastViewType
	}
	if viewType == "" {
		return BrowseResult{Outcome: OutcomeChooseView, State: st}, nil
	}

	rows, err := s.filter(st, viewType)
	if err != nil {
		return BrowseResult{}, err
	}
	totalPages := TotalPages(len(rows))

	page := ClampPage(st.CurrentPage, totalPages)
	slice := PageSlice(rows, page)
	if len(slice) == 0 && page != 0 {
		page = 0
		slice = PageSlice(rows, 0)
	}

	next := st
	next.ViewType = viewType

	if len(slice) == 0 {
		return BrowseResult{Outcome: OutcomeNotFound, State: next}, nil
	}

	next.CurrentPage = page
	return BrowseResult{
		Outcome: OutcomePage,
		View: PageView{
			Rows:       slice,
			Page:       page,
			TotalPages: totalPages,
			TotalCount: len(rows),
			ViewType:   viewType,
		},
		State:    next,
		FellBack: page == 0 && st.CurrentPage > 0,
	}, nil
}

// CurrentView computes the page currently displayed for a state without
// moving it. Cart adds use this to resolve a product index against exactly
// what the user is looking at.
func (s *BrowseService) CurrentView(st models.BrowsingState) (PageView, error) {
	viewType := st.ViewType
	if viewType == "" {
		viewType = models.ViewRegular
	}

	rows, err := s.filter(st, viewType)
	if err != nil {
		return PageView{}, err
	}
	totalPages := TotalPages(len(rows))
	page := ClampPage(st.CurrentPage, totalPages)

	return PageView{
		Rows:       PageSlice(rows, page),
		Page:       page,
		TotalPages: totalPages,
		TotalCount: len(rows),
		ViewType:   viewType,
	}, nil
}
