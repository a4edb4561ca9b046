package main

import (
	"testing"

	"dabbertorres.dev/qview"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
)

func Test_completionItems(t *testing.T) {
	suggestions := []qview.Suggestion{
		qview.ColumnSuggestion("id", qview.TypeUUID),
		qview.ColumnSuggestion("email", qview.TypeText),
		qview.TableSuggestion("public", "users"),
	}

	t.Run("empty base keeps everything and offers no keywords", func(t *testing.T) {
		expect := []map[string]interface{}{
			{"word": "id", "kind": "m", "menu": "uuid"},
			{"word": "email", "kind": "m", "menu": "text"},
			{"word": "users", "kind": "t", "menu": "public"},
		}
		if diff := cmp.Diff(expect, completionItems(suggestions, "")); diff != "" {
			t.Errorf("unexpected items. diff:\n%s", diff)
		}
	})

	t.Run("base filters and adds matching keywords", func(t *testing.T) {
		expect := []map[string]interface{}{
			{"word": "email", "kind": "m", "menu": "text"},
			{"word": "EXCEPT", "kind": "k"},
		}
		if diff := cmp.Diff(expect, completionItems(suggestions, "e")); diff != "" {
			t.Errorf("unexpected items. diff:\n%s", diff)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		if items := completionItems(suggestions, "zzz"); len(items) != 0 {
			t.Errorf("expected no items, got %v", items)
		}
	})
}

func Test_findStart(t *testing.T) {
	tests := []struct {
		line   string
		col    int
		expect int
	}{
		{"SELECT em", 9, 7},
		{"SELECT ", 7, 7},
		{"em", 2, 0},
		{"SELECT a.co", 11, 9},
		{"", 0, 0},
		{"abc", 100, 0}, // cursor past end of line clamps
	}

	for _, tt := range tests {
		if actual := findStart([]byte(tt.line), tt.col); actual != tt.expect {
			t.Errorf("findStart('%s', %d): expected %d, got %d", tt.line, tt.col, tt.expect, actual)
		}
	}
}

func Test_byteOffset(t *testing.T) {
	lines := [][]byte{
		[]byte("SELECT id"),
		[]byte("FROM users"),
	}

	tests := []struct {
		row, col int
		expect   int
	}{
		{1, 0, 0},
		{1, 7, 7},
		{2, 0, 10},
		{2, 5, 15},
	}

	for _, tt := range tests {
		if actual := byteOffset(lines, tt.row, tt.col); actual != tt.expect {
			t.Errorf("byteOffset(%d, %d): expected %d, got %d", tt.row, tt.col, tt.expect, actual)
		}
	}
}

func Test_complete(t *testing.T) {
	t.Run("findstart reports the start of the word", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, _ := initTestEnv(t, nil)
		defer api.Close()

		if err := api.SetCurrentLine([]byte("SELECT em")); err != nil {
			t.Fatal(err)
		}
		win, err := api.CurrentWindow()
		if err != nil {
			t.Fatal(err)
		}
		if err := api.SetWindowCursor(win, [2]int{1, 9}); err != nil {
			t.Fatal(err)
		}

		state := &pluginState{db: NewMockdbManager(ctrl)}
		_, handler := complete(state)

		result, err := handler(api, []interface{}{int64(1), ""})
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if result != 7 {
			t.Errorf("expected start column 7, got %v", result)
		}
	})

	t.Run("matches come from the suggestion engine", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, _ := initTestEnv(t, nil)
		defer api.Close()

		buf, err := api.CurrentBuffer()
		if err != nil {
			t.Fatal(err)
		}
		if err := api.SetBufferLines(buf, 0, -1, false, [][]byte{[]byte("SELECT  FROM users")}); err != nil {
			t.Fatal(err)
		}
		win, err := api.CurrentWindow()
		if err != nil {
			t.Fatal(err)
		}
		if err := api.SetWindowCursor(win, [2]int{1, 7}); err != nil {
			t.Fatal(err)
		}

		mockdb := NewMockdbManager(ctrl)
		mockdb.EXPECT().
			Suggest("SELECT  FROM users", qview.CursorAt(7)).
			Return([]qview.Suggestion{
				qview.ColumnSuggestion("id", qview.TypeUUID),
				qview.ColumnSuggestion("email", qview.TypeText),
			}, nil).
			Times(1)

		state := &pluginState{db: mockdb}
		_, handler := complete(state)

		result, err := handler(api, []interface{}{int64(0), "e"})
		if err != nil {
			t.Fatal("unexpected error:", err)
		}

		expect := []map[string]interface{}{
			{"word": "email", "kind": "m", "menu": "text"},
			{"word": "EXCEPT", "kind": "k"},
		}
		if diff := cmp.Diff(expect, result); diff != "" {
			t.Errorf("unexpected items. diff:\n%s", diff)
		}
	})
}
