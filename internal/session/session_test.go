package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Bridgette013/Truthseeker/internal/gateway"
	"github.com/Bridgette013/Truthseeker/internal/risk"
	"github.com/Bridgette013/Truthseeker/internal/tasks"
)

// fakeGateway replays scripted fragments, optionally failing midway.
type fakeGateway struct {
	mu        sync.Mutex
	fragments []string
	failAfter int // fail after this many fragments; 0 means never
	failErr   error
	block     chan struct{} // when set, wait here before finishing
	response  gateway.Response
}

func (f *fakeGateway) Invoke(ctx context.Context, req gateway.Request) (*gateway.Response, error) {
	return f.InvokeStream(ctx, req, nil)
}

func (f *fakeGateway) InvokeStream(ctx context.Context, req gateway.Request, onFragment func(string)) (*gateway.Response, error) {
	f.mu.Lock()
	fragments := f.fragments
	failAfter := f.failAfter
	failErr := f.failErr
	block := f.block
	resp := f.response
	f.mu.Unlock()

	var b strings.Builder
	for i, frag := range fragments {
		b.WriteString(frag)
		if onFragment != nil {
			onFragment(frag)
		}
		if failAfter > 0 && i+1 == failAfter {
			return nil, failErr
		}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if resp.Text == "" {
		resp.Text = b.String()
	}
	return &resp, nil
}

func imageRequest() gateway.Request {
	return gateway.Request{
		Action:  tasks.ActionImageAuto,
		Payload: gateway.Payload{Base64Data: "aGVsbG8=", MimeType: "image/jpeg"},
	}
}

func drain(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
}

func TestFragmentsArriveInOrder(t *testing.T) {
	gw := &fakeGateway{fragments: []string{"The image ", "shows waxy ", "skin texture."}}
	ctrl := NewController(gw)

	events, err := ctrl.Submit(context.Background(), "image", imageRequest())
	if err != nil {
		t.Fatal(err)
	}
	got := drain(t, events)

	var concat strings.Builder
	seq := 0
	for _, ev := range got[:len(got)-1] {
		if ev.Type != EventFragment {
			t.Fatalf("expected fragment, got %s", ev.Type)
		}
		seq++
		if ev.Seq != seq {
			t.Fatalf("fragment seq = %d, want %d", ev.Seq, seq)
		}
		concat.WriteString(ev.Text)
	}
	if concat.String() != "The image shows waxy skin texture." {
		t.Errorf("concatenated fragments = %q", concat.String())
	}

	last := got[len(got)-1]
	if last.Type != EventComplete {
		t.Fatalf("terminal event = %s, want complete", last.Type)
	}
	if snap := ctrl.Snapshot("image"); snap.State != StateComplete || snap.Output != concat.String() {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestVerdictComputedFromFinalOutput(t *testing.T) {
	gw := &fakeGateway{fragments: []string{"Verdict: this image is ", "ai generated beyond doubt."}}
	ctrl := NewController(gw)

	events, err := ctrl.Submit(context.Background(), "image", imageRequest())
	if err != nil {
		t.Fatal(err)
	}
	got := drain(t, events)
	last := got[len(got)-1]
	if last.Type != EventComplete || last.Verdict != risk.LevelHigh {
		t.Errorf("terminal event = %+v, want complete HIGH", last)
	}
}

func TestFailurePreservesPartialOutput(t *testing.T) {
	gw := &fakeGateway{
		fragments: []string{"Analysis in ", "progress but "},
		failAfter: 2,
		failErr:   errors.New("connection reset"),
	}
	ctrl := NewController(gw)

	events, err := ctrl.Submit(context.Background(), "video", gateway.Request{
		Action:  tasks.ActionVideo,
		Payload: gateway.Payload{Base64Data: "aGVsbG8=", MimeType: "video/mp4"},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := drain(t, events)

	last := got[len(got)-1]
	if last.Type != EventFailed {
		t.Fatalf("terminal event = %s, want failed", last.Type)
	}
	if last.Partial != "Analysis in progress but " {
		t.Errorf("partial = %q", last.Partial)
	}
	if last.Err != "connection reset" {
		t.Errorf("error = %q", last.Err)
	}

	snap := ctrl.Snapshot("video")
	if snap.State != StateFailed || snap.Output != "Analysis in progress but " {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSurfaceRejectsConcurrentSubmission(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{fragments: []string{"working..."}, block: block}
	ctrl := NewController(gw)

	events, err := ctrl.Submit(context.Background(), "audio", gateway.Request{
		Action:  tasks.ActionAudio,
		Payload: gateway.Payload{Base64Data: "aGVsbG8=", MimeType: "audio/mpeg"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Wait until the first fragment lands so the run is in flight.
	<-events

	_, err = ctrl.Submit(context.Background(), "audio", gateway.Request{
		Action:  tasks.ActionAudio,
		Payload: gateway.Payload{Base64Data: "aGVsbG8=", MimeType: "audio/mpeg"},
	})
	if !errors.Is(err, ErrSurfaceBusy) {
		t.Fatalf("err = %v, want ErrSurfaceBusy", err)
	}

	close(block)
	drain(t, events)
}

func TestDifferentSurfacesRunConcurrently(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{fragments: []string{"slow"}, block: block}
	ctrl := NewController(gw)

	first, err := ctrl.Submit(context.Background(), "image", imageRequest())
	if err != nil {
		t.Fatal(err)
	}
	<-first

	second, err := ctrl.Submit(context.Background(), "audio", gateway.Request{
		Action:  tasks.ActionAudio,
		Payload: gateway.Payload{Base64Data: "aGVsbG8=", MimeType: "audio/mpeg"},
	})
	if err != nil {
		t.Fatalf("second surface must accept while first is busy: %v", err)
	}

	close(block)
	drain(t, first)
	drain(t, second)
}

func TestAbandonCancelsAndResets(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{fragments: []string{"partial"}, block: block}
	ctrl := NewController(gw)

	events, err := ctrl.Submit(context.Background(), "image", imageRequest())
	if err != nil {
		t.Fatal(err)
	}
	<-events

	ctrl.Abandon("image")
	drain(t, events)

	if snap := ctrl.Snapshot("image"); snap.State != StateIdle {
		t.Errorf("state after abandon = %s, want idle", snap.State)
	}

	// The surface accepts a fresh run after abandonment.
	gw2 := &fakeGateway{fragments: []string{"fresh"}}
	ctrl2 := NewController(gw2)
	again, err := ctrl2.Submit(context.Background(), "image", imageRequest())
	if err != nil {
		t.Fatal(err)
	}
	drain(t, again)
}

func TestSubmitRejectsInvalidRequest(t *testing.T) {
	ctrl := NewController(&fakeGateway{})
	_, err := ctrl.Submit(context.Background(), "image", gateway.Request{Action: tasks.ActionImageAuto})
	if !errors.Is(err, gateway.ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestNoVerdictTaskCompletesWithoutLevel(t *testing.T) {
	gw := &fakeGateway{fragments: []string{"Zoom in on the hands and count the fingers."}}
	ctrl := NewController(gw)

	events, err := ctrl.Submit(context.Background(), "image", gateway.Request{
		Action:  tasks.ActionImageGuided,
		Payload: gateway.Payload{Base64Data: "aGVsbG8=", MimeType: "image/jpeg"},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := drain(t, events)
	last := got[len(got)-1]
	if last.Type != EventComplete || last.Verdict != risk.LevelNone {
		t.Errorf("guided review must complete without a verdict, got %+v", last)
	}
}
