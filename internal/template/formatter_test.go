package template_test

import (
	"context"
	"errors"
	"testing"

	"reshelf/internal/catalog"
	"reshelf/internal/template"
)

type stubStudioLookup struct {
	studios map[string]*catalog.Studio
	err     error
	calls   int
}

func (s *stubStudioLookup) FindStudio(ctx context.Context, id string) (*catalog.Studio, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	studio, ok := s.studios[id]
	if !ok {
		return nil, errors.New("studio not found")
	}
	return studio, nil
}

func testScene() *catalog.Scene {
	return &catalog.Scene{
		ID:       "12",
		Title:    "Pilot",
		Date:     "2021-05-01",
		Director: "Jane Doe",
		Code:     "EP01",
		Studio: &catalog.Studio{
			ID:   "3",
			Name: "Acme",
			StashIDs: []catalog.StashID{
				{Endpoint: "https://stashdb.org/graphql", StashID: "abc"},
			},
		},
	}
}

func testFile() *catalog.File {
	return &catalog.File{
		ID:         "9",
		Path:       "/media/pilot.mkv",
		Basename:   "pilot.mkv",
		Format:     "matroska",
		Width:      1920,
		Height:     1080,
		VideoCodec: "h264",
		AudioCodec: "aac",
	}
}

func TestExpandSubstitutesPlaceholders(t *testing.T) {
	resolver := template.NewResolver(nil)

	got := resolver.Expand(context.Background(), "$year$/$studio_name$/$title$", testScene(), testFile(), 0)
	if got != "2021/Acme/Pilot" {
		t.Fatalf("Expand = %q, want %q", got, "2021/Acme/Pilot")
	}
}

func TestExpandElidesOptionalSectionWithEmptyVariable(t *testing.T) {
	resolver := template.NewResolver(nil)
	scene := testScene()
	scene.Director = ""

	got := resolver.Expand(context.Background(), "{$director$ - }$title$", scene, testFile(), 0)
	if got != "Pilot" {
		t.Fatalf("Expand = %q, want %q", got, "Pilot")
	}
}

func TestExpandKeepsOptionalSectionWithResolvedVariable(t *testing.T) {
	resolver := template.NewResolver(nil)

	got := resolver.Expand(context.Background(), "{$director$ - }$title$.$ext$", testScene(), testFile(), 0)
	if got != "Jane Doe - Pilot.mkv" {
		t.Fatalf("Expand = %q, want %q", got, "Jane Doe - Pilot.mkv")
	}
}

func TestExpandLeavesUnknownPlaceholders(t *testing.T) {
	resolver := template.NewResolver(nil)

	got := resolver.Expand(context.Background(), "$title$ $bogus$", testScene(), testFile(), 0)
	if got != "Pilot $bogus$" {
		t.Fatalf("Expand = %q, want unknown token preserved, got %q", got, got)
	}
}

func TestExpandIndexZeroElides(t *testing.T) {
	resolver := template.NewResolver(nil)

	got := resolver.Expand(context.Background(), "$title${ ($index$)}.$ext$", testScene(), testFile(), 0)
	if got != "Pilot.mkv" {
		t.Fatalf("Expand = %q, want %q", got, "Pilot.mkv")
	}

	got = resolver.Expand(context.Background(), "$title${ ($index$)}.$ext$", testScene(), testFile(), 2)
	if got != "Pilot (2).mkv" {
		t.Fatalf("Expand = %q, want %q", got, "Pilot (2).mkv")
	}
}

func TestExpandDateSegments(t *testing.T) {
	resolver := template.NewResolver(nil)
	scene := testScene()

	if got := resolver.Expand(context.Background(), "$year$-$month$", scene, nil, 0); got != "2021-05" {
		t.Fatalf("Expand = %q, want %q", got, "2021-05")
	}

	scene.Date = ""
	if got := resolver.Expand(context.Background(), "{$year$/}$title$", scene, nil, 0); got != "Pilot" {
		t.Fatalf("Expand = %q, want year section elided, got %q", got, got)
	}
}

func TestStudioChainResolvesRootToLeaf(t *testing.T) {
	lookup := &stubStudioLookup{studios: map[string]*catalog.Studio{
		"2": {ID: "2", Name: "B", ParentStudio: &catalog.StudioRef{ID: "1"}},
		"1": {ID: "1", Name: "C"},
	}}
	resolver := template.NewResolver(lookup)

	scene := testScene()
	scene.Studio = &catalog.Studio{ID: "3", Name: "A", ParentStudio: &catalog.StudioRef{ID: "2"}}

	got := resolver.Expand(context.Background(), "$parent_studio_chain$", scene, nil, 0)
	if got != "C/B/A" {
		t.Fatalf("chain = %q, want %q", got, "C/B/A")
	}
	if lookup.calls != 2 {
		t.Fatalf("expected one lookup per hop, got %d", lookup.calls)
	}
}

func TestStudioChainStopsOnCycle(t *testing.T) {
	lookup := &stubStudioLookup{studios: map[string]*catalog.Studio{
		"2": {ID: "2", Name: "B", ParentStudio: &catalog.StudioRef{ID: "3"}},
	}}
	resolver := template.NewResolver(lookup)

	scene := testScene()
	scene.Studio = &catalog.Studio{ID: "3", Name: "A", ParentStudio: &catalog.StudioRef{ID: "2"}}

	got := resolver.Expand(context.Background(), "$parent_studio_chain$", scene, nil, 0)
	if got != "B/A" {
		t.Fatalf("chain = %q, want cycle cut at %q", got, "B/A")
	}
}

func TestStudioChainDegradesOnLookupFailure(t *testing.T) {
	lookup := &stubStudioLookup{err: errors.New("catalog down")}
	resolver := template.NewResolver(lookup)

	scene := testScene()
	scene.Studio = &catalog.Studio{ID: "3", Name: "A", ParentStudio: &catalog.StudioRef{ID: "2"}}

	got := resolver.Expand(context.Background(), "$parent_studio_chain$", scene, nil, 0)
	if got != "A" {
		t.Fatalf("chain = %q, want lookup failure to degrade to %q", got, "A")
	}
}

func TestResolveNeverFailsOnMissingRecords(t *testing.T) {
	resolver := template.NewResolver(nil)

	got := resolver.Expand(context.Background(), "{$title$}{$width$}{$endpoints$}done", nil, nil, 0)
	if got != "done" {
		t.Fatalf("Expand = %q, want all sections elided", got)
	}
}
