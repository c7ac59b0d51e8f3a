package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patients() []Row {
	return []Row{
		{"id": "3", "name": "Bob", "ward": "B", "admitted": "03 Feb 2024"},
		{"id": "1", "name": "Amy", "ward": "A", "admitted": "15 Jan 2024"},
		{"id": "2", "name": "Cid", "ward": "B", "admitted": "20 Dec 2023"},
	}
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = fmt.Sprint(r["name"])
	}
	return out
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []SortSpec
	}{
		{"empty", "", nil},
		{"single asc", "date", []SortSpec{{Field: "date"}}},
		{"single desc", "-date", []SortSpec{{Field: "date", Descending: true}}},
		{"multiple", "-date,status", []SortSpec{{Field: "date", Descending: true}, {Field: "status"}}},
		{"spaces and blanks", " -date , ,status ", []SortSpec{{Field: "date", Descending: true}, {Field: "status"}}},
		{"bare dash", "-", []SortSpec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSort(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "-date,status", FormatSort(ParseSort("-date, status")))
}

func TestFilter_EmptyTermReturnsInput(t *testing.T) {
	e := NewRowEngine(Config{Searchable: []string{"name"}})
	rows := patients()

	got := e.Filter(rows, "   ")

	require.Len(t, got, len(rows))
	assert.Equal(t, rows, got)
	assert.Same(t, &rows[0], &got[0])
}

func TestFilter_CaseInsensitiveOnSearchableFields(t *testing.T) {
	e := NewRowEngine(Config{Searchable: []string{"name"}})

	assert.Equal(t, []string{"Amy"}, names(e.Filter(patients(), "aM")))
	assert.Empty(t, e.Filter(patients(), "zed"))
	assert.Empty(t, e.Filter(patients(), "2024"), "admitted is not searchable")
}

func TestFilter_AllFieldsWhenNoneDeclared(t *testing.T) {
	e := NewRowEngine(Config{})
	assert.Equal(t, []string{"Amy"}, names(e.Filter(patients(), "jan")))
}

func TestSort_NumericIDs(t *testing.T) {
	e := NewRowEngine(Config{})

	got := e.Sort(patients(), SortSpec{Field: "id"})
	assert.Equal(t, []string{"Amy", "Cid", "Bob"}, names(got))

	rows := []Row{{"id": "10"}, {"id": "2"}, {"id": "1"}}
	sorted := e.Sort(rows, SortSpec{Field: "id"})
	ids := []any{sorted[0]["id"], sorted[1]["id"], sorted[2]["id"]}
	assert.Equal(t, []any{"1", "2", "10"}, ids)
}

func TestSort_Dates(t *testing.T) {
	e := NewRowEngine(Config{})
	got := e.Sort(patients(), SortSpec{Field: "admitted", Descending: true})
	assert.Equal(t, []string{"Bob", "Amy", "Cid"}, names(got))
}

func TestSort_NoSpecPreservesOrder(t *testing.T) {
	e := NewRowEngine(Config{})
	rows := patients()
	got := e.Sort(rows)
	assert.Equal(t, names(rows), names(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	e := NewRowEngine(Config{})
	rows := patients()
	_ = e.Sort(rows, SortSpec{Field: "name"})
	assert.Equal(t, []string{"Bob", "Amy", "Cid"}, names(rows))
}

func TestSort_StableOnTies(t *testing.T) {
	e := NewRowEngine(Config{})
	rows := []Row{
		{"name": "p1", "ward": "B"},
		{"name": "p2", "ward": "A"},
		{"name": "p3", "ward": "B"},
		{"name": "p4", "ward": "A"},
	}

	once := e.Sort(rows, SortSpec{Field: "ward"})
	assert.Equal(t, []string{"p2", "p4", "p1", "p3"}, names(once))

	twice := e.Sort(once, SortSpec{Field: "ward"})
	assert.Equal(t, names(once), names(twice))

	desc := e.Sort(rows, SortSpec{Field: "ward", Descending: true})
	assert.Equal(t, []string{"p1", "p3", "p2", "p4"}, names(desc), "ties keep input order when descending")
}

func TestSort_OppositeDirectionReverses(t *testing.T) {
	e := NewRowEngine(Config{})
	rows := make([]Row, 0, 20)
	for i := 20; i > 0; i-- {
		rows = append(rows, Row{"n": i})
	}

	asc := e.Sort(rows, SortSpec{Field: "n"})
	desc := e.Sort(asc, SortSpec{Field: "n", Descending: true})

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i]["n"], desc[len(desc)-1-i]["n"])
	}
}

func TestSort_MultiKey(t *testing.T) {
	e := NewRowEngine(Config{})
	got := e.Sort(patients(), ParseSort("-ward,name")...)
	assert.Equal(t, []string{"Bob", "Cid", "Amy"}, names(got))
}

func TestSort_ComparatorOverride(t *testing.T) {
	e := NewRowEngine(Config{Comparators: map[string]Comparator{
		"status": RankComparator("Scheduled", "Completed", "Cancelled"),
	}})
	rows := []Row{
		{"name": "a", "status": "Cancelled"},
		{"name": "b", "status": "Scheduled"},
		{"name": "c", "status": "Completed"},
	}
	assert.Equal(t, []string{"b", "c", "a"}, names(e.Sort(rows, SortSpec{Field: "status"})))
}

type visit struct {
	No   int
	Name string
}

func TestEngine_Generic(t *testing.T) {
	e := New(func(v visit, field string) any {
		switch field {
		case "no":
			return v.No
		case "name":
			return v.Name
		}
		return nil
	}, Config{Searchable: []string{"name"}})

	visits := []visit{{3, "Dana"}, {1, "Eli"}, {2, "Dora"}}
	page := e.Query(visits, Query{Search: "d", Sort: ParseSort("-no"), Page: 1, PageSize: 5})

	assert.Equal(t, []visit{{3, "Dana"}, {2, "Dora"}}, page.Items)
	assert.Equal(t, 2, page.TotalItems)
}

func TestPaginate_CoversEveryRowExactlyOnce(t *testing.T) {
	rows := make([]int, 23)
	for i := range rows {
		rows[i] = i
	}

	for size := 1; size <= 25; size++ {
		first := Paginate(rows, 1, size)
		var all []int
		for p := 1; p <= first.TotalPages; p++ {
			page := Paginate(rows, p, size)
			assert.Equal(t, p, page.Page)
			all = append(all, page.Items...)
		}
		assert.Equal(t, rows, all, "page size %d", size)
	}
}

func TestPaginate_Metadata(t *testing.T) {
	rows := make([]int, 23)

	p := Paginate(rows, 3, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Items, 3)
	assert.Equal(t, 21, p.From)
	assert.Equal(t, 23, p.To)
	assert.False(t, p.Empty)

	p = Paginate(rows, 2, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 20, p.To)
}

func TestPaginate_ClampsOutOfRangePages(t *testing.T) {
	rows := make([]int, 5)

	p := Paginate(rows, 9, 2)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Items, 1)

	p = Paginate(rows, -4, 2)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, p.Items, 2)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]Row(nil), 4, 10)
	assert.True(t, p.Empty)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.TotalPages)
	assert.Zero(t, p.From)
	assert.Zero(t, p.To)
	assert.NotNil(t, p.Items)
}
