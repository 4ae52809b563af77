package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tavolo/internal/optimize"
)

// --------------------------------------------------
// Mock Persister
// --------------------------------------------------

type mockPersister struct {
	calls     int
	returnID  string
	returnErr error
	lastDraft *Draft
}

func (m *mockPersister) Persist(ctx context.Context, draft *Draft) (string, error) {
	m.calls++
	m.lastDraft = draft
	if m.returnErr != nil {
		return "", m.returnErr
	}
	return m.returnID, nil
}

// --------------------------------------------------
// Navigation
// --------------------------------------------------

func TestBackAtStepZeroIsNoOp(t *testing.T) {
	w := New(&mockPersister{})

	if step := w.Back(); step != 0 {
		t.Fatalf("expected step 0 after Back at start, got %d", step)
	}
	if w.Current() != 0 {
		t.Fatalf("state changed by Back at step 0")
	}
}

func TestNineNextsReachLastStep(t *testing.T) {
	p := &mockPersister{returnID: "sub-1"}
	w := New(p)

	for i := 0; i < StepCount-1; i++ {
		if _, err := w.Next(context.Background()); err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
	}

	if w.Current() != StepCount-1 {
		t.Fatalf("expected step %d, got %d", StepCount-1, w.Current())
	}
	if p.calls != 0 {
		t.Fatalf("persist triggered before the terminal transition")
	}
}

func TestTenthNextTriggersPersistExactlyOnceAndResets(t *testing.T) {
	p := &mockPersister{returnID: "sub-42"}
	w := New(p)

	w.Update("business_info", json.RawMessage(`{"name":"Milano Pizza"}`))

	var submissionID string
	for i := 0; i < StepCount; i++ {
		id, err := w.Next(context.Background())
		if err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
		if id != "" {
			submissionID = id
		}
	}

	if p.calls != 1 {
		t.Fatalf("expected exactly one persist call, got %d", p.calls)
	}
	if submissionID != "sub-42" {
		t.Fatalf("expected submission id sub-42, got %q", submissionID)
	}
	if p.lastDraft.BusinessInfo.Name != "Milano Pizza" {
		t.Fatalf("persisted draft missing data")
	}

	// terminal success resets to a fresh draft at step 0
	if w.Current() != 0 {
		t.Errorf("expected reset to step 0, got %d", w.Current())
	}
	if len(w.CompletedSteps()) != 0 {
		t.Errorf("completed set not cleared")
	}
	if w.Draft().BusinessInfo.Name != "" {
		t.Errorf("draft not replaced after submit")
	}
}

func TestFailedPersistKeepsDraftForRetry(t *testing.T) {
	p := &mockPersister{returnErr: errors.New("upload failed")}
	w := New(p)

	w.Update("business_info", json.RawMessage(`{"name":"Milano Pizza"}`))

	for i := 0; i < StepCount-1; i++ {
		w.Next(context.Background())
	}

	if _, err := w.Next(context.Background()); err == nil {
		t.Fatalf("expected error from failed persist")
	}

	// still on the last step, draft intact, retry possible
	if w.Current() != StepCount-1 {
		t.Errorf("expected to stay on the last step, got %d", w.Current())
	}
	if w.Draft().BusinessInfo.Name != "Milano Pizza" {
		t.Errorf("draft discarded on failed submit")
	}

	p.returnErr = nil
	p.returnID = "sub-9"
	if id, err := w.Next(context.Background()); err != nil || id != "sub-9" {
		t.Fatalf("retry failed: id=%q err=%v", id, err)
	}
	if p.calls != 2 {
		t.Errorf("expected 2 persist attempts, got %d", p.calls)
	}
}

func TestNextNeverBlocksOnEmptyDraft(t *testing.T) {
	// Every step is optional: an entirely empty draft walks through.
	p := &mockPersister{returnID: "ok"}
	w := New(p)

	for i := 0; i < StepCount; i++ {
		if _, err := w.Next(context.Background()); err != nil {
			t.Fatalf("empty draft blocked at step %d: %v", i, err)
		}
	}
	if p.calls != 1 {
		t.Fatalf("expected terminal persist for empty draft")
	}
}

// --------------------------------------------------
// Field mutation
// --------------------------------------------------

func TestUpdateMergesPartialScalars(t *testing.T) {
	w := New(&mockPersister{})

	w.Update("business_info", json.RawMessage(`{"name":"Milano","email":"a@b.c"}`))
	w.Update("business_info", json.RawMessage(`{"phone":"613-555-0100"}`))

	d := w.Draft()
	if d.BusinessInfo.Name != "Milano" || d.BusinessInfo.Email != "a@b.c" {
		t.Errorf("earlier fields lost by partial update")
	}
	if d.BusinessInfo.Phone != "613-555-0100" {
		t.Errorf("new field not merged")
	}
	if w.Current() != 0 {
		t.Errorf("Update must not navigate")
	}
}

func TestUpdateRejectsTooManyDeals(t *testing.T) {
	w := New(&mockPersister{})

	six := json.RawMessage(`[{},{},{},{},{},{}]`)
	if err := w.Update("deals", six); err == nil {
		t.Fatalf("expected error for %d deals", 6)
	}

	five := json.RawMessage(`[{},{},{},{},{}]`)
	if err := w.Update("deals", five); err != nil {
		t.Fatalf("five deals should be accepted: %v", err)
	}
}

func TestUpdateUnknownSection(t *testing.T) {
	w := New(&mockPersister{})
	if err := w.Update("nope", json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestUpdateRejectsTooFewDeals(t *testing.T) {
	w := New(&mockPersister{})

	one := json.RawMessage(`[{"title":"Solo"}]`)
	if err := w.Update("deals", one); err == nil {
		t.Fatalf("expected error for a single deal")
	}

	two := json.RawMessage(`[{"title":"A"},{"title":"B"}]`)
	if err := w.Update("deals", two); err != nil {
		t.Fatalf("two deals should be accepted: %v", err)
	}

	// Deals are optional: clearing the section is always allowed.
	if err := w.Update("deals", json.RawMessage(`[]`)); err != nil {
		t.Fatalf("empty deals list should be accepted: %v", err)
	}
}

// --------------------------------------------------
// File attachment
// --------------------------------------------------

func TestAttachMenuAcceptsPDFAndJPEGOnly(t *testing.T) {
	w := New(&mockPersister{})

	pdf := optimize.File{Name: "menu.pdf", Data: []byte("%PDF-1.4 fake")}
	if err := w.AttachFile("menu", 0, pdf); err != nil {
		t.Fatalf("PDF menu rejected: %v", err)
	}

	jpeg := optimize.File{Name: "menu.jpg", ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}}
	if err := w.AttachFile("menu", 0, jpeg); err != nil {
		t.Fatalf("JPEG menu rejected: %v", err)
	}

	png := optimize.File{Name: "menu.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
	if err := w.AttachFile("menu", 0, png); err == nil {
		t.Fatalf("PNG menu accepted, only PDF and JPEG are allowed")
	}

	text := optimize.File{Name: "menu.txt", ContentType: "text/plain", Data: []byte("pizza 12$")}
	if err := w.AttachFile("menu", 0, text); err == nil {
		t.Fatalf("text menu accepted, only PDF and JPEG are allowed")
	}
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func TestSessionsDrop(t *testing.T) {
	s := NewSessions(&mockPersister{})

	id, _ := s.Create()
	if _, ok := s.Get(id); !ok {
		t.Fatalf("created session not found")
	}

	s.Drop(id)
	if _, ok := s.Get(id); ok {
		t.Fatalf("dropped session still reachable")
	}

	// dropping twice is harmless
	s.Drop(id)
}
