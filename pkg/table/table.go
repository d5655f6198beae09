// Package table turns a list of records into a searchable, sortable and paginated view model.
package table

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Direction is the sort order applied to a column.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const (
	DefaultItemsPerPage = 10
	DefaultEmptyMessage = "No data available"

	// compactPageLimit is the page count at or below which every page button is listed.
	compactPageLimit = 7
)

// Column describes one rendered column. Key is the stable identifier used for sorting.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Action is a caller supplied control attached to a row.
type Action struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Method   string `json:"method,omitempty"`
	Href     string `json:"href,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// ActionFunc renders the controls of a row. index is the position of the item in the unfiltered input.
type ActionFunc[T any] func(item T, index int) []Action

// Config toggles table features.
type Config[T any] struct {
	Searchable   bool
	Sortable     bool
	Pagination   bool
	ItemsPerPage int
	EmptyMessage string
	Actions      ActionFunc[T]
}

// State is the client controlled part of the table.
type State struct {
	Search        string    `json:"search"`
	SortColumn    string    `json:"sort,omitempty"`
	SortDirection Direction `json:"dir,omitempty"`
	Page          int       `json:"page"`
}

// SortBy returns the state produced by activating the sort control of column key.
func (s State) SortBy(key string) State {
	next := s
	if s.SortColumn == key && s.SortDirection == Asc {
		next.SortDirection = Desc
	} else {
		next.SortColumn = key
		next.SortDirection = Asc
	}
	return next
}

// WithSearch replaces the search term. A changed term moves back to the first page.
func (s State) WithSearch(term string) State {
	next := s
	if term != s.Search {
		next.Page = 1
	}
	next.Search = term
	return next
}

// WithPage selects a page. Out of range values are clamped when rendering.
func (s State) WithPage(page int) State {
	next := s
	next.Page = page
	return next
}

// Query encodes the state as URL query parameters. The search term is echoed as prev_search so a
// client that edits only the search term lands back on the first page.
func (s State) Query() url.Values {
	values := url.Values{}
	if s.Search != "" {
		values.Set("search", s.Search)
		values.Set("prev_search", s.Search)
	}
	if s.SortColumn != "" {
		values.Set("sort", s.SortColumn)
		values.Set("dir", string(s.SortDirection))
	}
	if s.Page > 1 {
		values.Set("page", strconv.Itoa(s.Page))
	}
	return values
}

// StateFromQuery decodes search, sort, dir and page parameters. Unknown directions fall back to ascending.
// When prev_search is present and differs from search the page resets to 1.
func StateFromQuery(values url.Values) State {
	state := State{
		Search:     values.Get("search"),
		SortColumn: values.Get("sort"),
		Page:       1,
	}
	if state.SortColumn != "" {
		state.SortDirection = Asc
		if Direction(strings.ToLower(values.Get("dir"))) == Desc {
			state.SortDirection = Desc
		}
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		state.Page = page
	}
	if values.Has("prev_search") {
		previous := state
		previous.Search = values.Get("prev_search")
		state = previous.WithSearch(state.Search)
	}
	return state
}

// Header is a rendered column header.
type Header struct {
	Column
	Sorted Direction `json:"sorted,omitempty"`
	Next   *State    `json:"next,omitempty"`
	Query  string    `json:"query,omitempty"`
}

// Row is a rendered record.
type Row struct {
	Index   int      `json:"index"`
	Cells   []string `json:"cells"`
	Actions []Action `json:"actions,omitempty"`
}

// Empty is the placeholder row shown when no record is visible.
type Empty struct {
	Message string `json:"message"`
	ColSpan int    `json:"colspan"`
}

// PageLink is one entry of the pagination control. Ellipsis entries carry no page.
type PageLink struct {
	Page     int    `json:"page,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
	Query    string `json:"query,omitempty"`
}

// Pagination describes the visible window over the filtered rows.
type Pagination struct {
	Page         int        `json:"page"`
	PerPage      int        `json:"per_page"`
	TotalPages   int        `json:"total_pages"`
	From         int        `json:"from"`
	To           int        `json:"to"`
	Total        int        `json:"total"`
	ShowControls bool       `json:"show_controls"`
	HasPrevious  bool       `json:"has_previous"`
	HasNext      bool       `json:"has_next"`
	Links        []PageLink `json:"links,omitempty"`
}

// View is the render ready output of Render.
type View struct {
	Searchable bool        `json:"searchable"`
	Sortable   bool        `json:"sortable"`
	HasActions bool        `json:"has_actions"`
	Headers    []Header    `json:"headers"`
	Rows       []Row       `json:"rows"`
	Empty      *Empty      `json:"empty,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	State      State       `json:"state"`
}

// Text returns the string form of a cell. nil renders as the empty string.
func Text(cell any) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprint(cell)
}

type record[T any] struct {
	index int
	item  T
	cells []string
}

// Render searches, sorts and paginates items. cells maps an item to one value per column.
func Render[T any](columns []Column, items []T, cells func(T) []any, cfg Config[T], state State) View {
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = DefaultItemsPerPage
	}
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = DefaultEmptyMessage
	}
	if !cfg.Sortable || columnIndex(columns, state.SortColumn) < 0 {
		state.SortColumn = ""
		state.SortDirection = ""
	}
	if !cfg.Searchable {
		state.Search = ""
	}

	records := make([]record[T], 0, len(items))
	for i, item := range items {
		raw := cells(item)
		text := make([]string, len(raw))
		for j, cell := range raw {
			text[j] = Text(cell)
		}
		records = append(records, record[T]{index: i, item: item, cells: text})
	}

	records = search(records, state.Search)
	sortRecords(records, columnIndex(columns, state.SortColumn), state.SortDirection)

	view := View{
		Searchable: cfg.Searchable,
		Sortable:   cfg.Sortable,
		HasActions: cfg.Actions != nil,
	}

	visible := records
	if cfg.Pagination {
		var p Pagination
		visible, p = paginate(records, cfg.ItemsPerPage, state.Page)
		state.Page = p.Page
		for i := range p.Links {
			if !p.Links[i].Ellipsis {
				p.Links[i].Query = state.WithPage(p.Links[i].Page).Query().Encode()
			}
		}
		view.Pagination = &p
	} else {
		state.Page = 1
	}
	view.State = state
	view.Headers = headers(columns, cfg.Sortable, state)

	view.Rows = make([]Row, 0, len(visible))
	for _, rec := range visible {
		row := Row{Index: rec.index, Cells: rec.cells}
		if cfg.Actions != nil {
			row.Actions = cfg.Actions(rec.item, rec.index)
		}
		view.Rows = append(view.Rows, row)
	}

	if len(view.Rows) == 0 {
		span := len(columns)
		if cfg.Actions != nil {
			span++
		}
		view.Empty = &Empty{Message: cfg.EmptyMessage, ColSpan: span}
	}

	return view
}

func columnIndex(columns []Column, key string) int {
	if key == "" {
		return -1
	}
	for i, col := range columns {
		if col.Key == key {
			return i
		}
	}
	return -1
}

func search[T any](records []record[T], term string) []record[T] {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	matched := make([]record[T], 0, len(records))
	for _, rec := range records {
		for _, cell := range rec.cells {
			if strings.Contains(strings.ToLower(cell), needle) {
				matched = append(matched, rec)
				break
			}
		}
	}
	return matched
}

func sortRecords[T any](records []record[T], col int, dir Direction) {
	if col < 0 {
		return
	}
	key := func(rec record[T]) string {
		if col >= len(rec.cells) {
			return ""
		}
		return strings.ToLower(rec.cells[col])
	}
	sort.SliceStable(records, func(i, j int) bool {
		if dir == Desc {
			return key(records[i]) > key(records[j])
		}
		return key(records[i]) < key(records[j])
	})
}

func headers(columns []Column, sortable bool, state State) []Header {
	out := make([]Header, len(columns))
	for i, col := range columns {
		h := Header{Column: col}
		if sortable {
			if state.SortColumn == col.Key {
				h.Sorted = state.SortDirection
			}
			next := state.SortBy(col.Key)
			h.Next = &next
			h.Query = next.Query().Encode()
		}
		out[i] = h
	}
	return out
}

func paginate[T any](records []record[T], perPage, page int) ([]record[T], Pagination) {
	total := len(records)
	totalPages := (total + perPage - 1) / perPage
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	p := Pagination{
		Page:         page,
		PerPage:      perPage,
		TotalPages:   totalPages,
		Total:        total,
		To:           end,
		ShowControls: totalPages > 1,
		HasPrevious:  page > 1,
		HasNext:      page < totalPages,
	}
	if total > 0 {
		p.From = start + 1
	}
	if p.ShowControls {
		p.Links = pageLinks(page, totalPages)
	}
	return records[start:end], p
}

func pageLinks(current, total int) []PageLink {
	links := make([]PageLink, 0, total)
	for p := 1; p <= total; p++ {
		switch {
		case total <= compactPageLimit || p <= 3 || p > total-3 || abs(p-current) <= 1:
			links = append(links, PageLink{Page: p, Current: p == current})
		case p == 4 || p == total-3:
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	return links
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
