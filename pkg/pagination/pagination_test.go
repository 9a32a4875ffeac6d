package pagination

import (
	"testing"
	"time"
)

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		page, perPage     int
		wantPage, wantPer int
	}{
		{0, 0, 1, 15},
		{-3, -1, 1, 15},
		{2, 500, 2, 100},
		{3, 25, 3, 25},
	}

	for _, tt := range tests {
		p := &PaginationParams{Page: tt.page, PerPage: tt.perPage}
		p.Validate()
		if p.Page != tt.wantPage || p.PerPage != tt.wantPer {
			t.Errorf("Validate(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.perPage, p.Page, p.PerPage, tt.wantPage, tt.wantPer)
		}
	}

	p := &PaginationParams{Page: 3, PerPage: 20}
	p.Validate()
	if p.Offset() != 40 {
		t.Errorf("Offset() = %d, want 40", p.Offset())
	}
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	encoded := EncodeCursor("42", at)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	if err != nil {
		t.Fatalf("DecodeCursor: %v", err)
	}
	if cursor.ID != "42" {
		t.Errorf("id = %q, want 42", cursor.ID)
	}
	if !cursor.CreatedAt.Equal(at) {
		t.Errorf("created_at = %v, want %v", cursor.CreatedAt, at)
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	cursor, err := (&CursorParams{}).DecodeCursor()
	if err != nil || cursor != nil {
		t.Errorf("empty cursor should decode to nil, got %v / %v", cursor, err)
	}
}

func TestDecodeCursorInvalid(t *testing.T) {
	for _, raw := range []string{"not base64!!", "bm90IGpzb24"} {
		if _, err := (&CursorParams{Cursor: raw}).DecodeCursor(); err == nil {
			t.Errorf("DecodeCursor(%q) should fail", raw)
		}
	}
}

func TestCursorParamsValidate(t *testing.T) {
	p := &CursorParams{Limit: 0}
	p.Validate()
	if p.Limit != 15 || p.Direction != CursorDirectionNext {
		t.Errorf("defaults = %d / %q", p.Limit, p.Direction)
	}

	p = &CursorParams{Limit: 500, Direction: CursorDirectionPrev}
	p.Validate()
	if p.Limit != 100 || p.Direction != CursorDirectionPrev {
		t.Errorf("clamped = %d / %q", p.Limit, p.Direction)
	}
}

func TestNewCursorPagination(t *testing.T) {
	type row struct {
		id string
		at time.Time
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []row{
		{"3", base.Add(3 * time.Hour)},
		{"2", base.Add(2 * time.Hour)},
		{"1", base.Add(1 * time.Hour)},
	}

	// Fetched limit+1, so there is another page.
	pag, trimmed := NewCursorPagination(rows, 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.at })

	if len(trimmed) != 2 {
		t.Fatalf("trimmed = %d rows, want 2", len(trimmed))
	}
	if !pag.HasNext {
		t.Error("extra row should signal another page")
	}
	if pag.NextCursor == nil || pag.PrevCursor == nil {
		t.Fatal("cursors not set")
	}

	next, err := (&CursorParams{Cursor: *pag.NextCursor}).DecodeCursor()
	if err != nil {
		t.Fatalf("decode next: %v", err)
	}
	if next.ID != "2" {
		t.Errorf("next cursor id = %q, want last trimmed row (2)", next.ID)
	}

	// Exactly limit rows: no further page.
	pag, trimmed = NewCursorPagination(rows[:2], 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.at })
	if pag.HasNext || len(trimmed) != 2 {
		t.Errorf("full page without extra row: hasNext = %v, rows = %d", pag.HasNext, len(trimmed))
	}
}
