package chat

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// collectFrames runs a reveal to completion and returns every frame.
func collectFrames(t *testing.T, text string) []string {
	t.Helper()
	r := NewRevealer(time.Millisecond)

	var mu sync.Mutex
	var frames []string
	done := make(chan struct{})

	r.Start(text, func(visible string, finished bool) {
		mu.Lock()
		frames = append(frames, visible)
		mu.Unlock()
		if finished {
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reveal did not finish")
	}
	r.Cancel()

	mu.Lock()
	defer mu.Unlock()
	return frames
}

func TestRevealGrowsOneCharPerTick(t *testing.T) {
	const text = "hello"
	frames := collectFrames(t, text)

	if len(frames) != len(text) {
		t.Fatalf("got %d frames, want %d", len(frames), len(text))
	}
	for i, f := range frames {
		want := text[:i+1]
		if f != want {
			t.Errorf("frame %d = %q, want %q", i, f, want)
		}
	}
	if frames[len(frames)-1] != text {
		t.Errorf("final frame = %q", frames[len(frames)-1])
	}
}

func TestRevealNeverExceedsText(t *testing.T) {
	const text = "short reply"
	for _, f := range collectFrames(t, text) {
		if !strings.HasPrefix(text, f) {
			t.Errorf("frame %q is not a prefix of the reply", f)
		}
	}
}

func TestRevealHandlesMultibyteRunes(t *testing.T) {
	const text = "héllo ✓"
	frames := collectFrames(t, text)

	runes := []rune(text)
	if len(frames) != len(runes) {
		t.Fatalf("got %d frames, want %d (one per rune)", len(frames), len(runes))
	}
	if frames[2] != string(runes[:3]) {
		t.Errorf("frame 2 = %q, want %q", frames[2], string(runes[:3]))
	}
}

func TestRevealEmptyText(t *testing.T) {
	frames := collectFrames(t, "")
	if len(frames) != 1 || frames[0] != "" {
		t.Errorf("frames = %q, want single empty final frame", frames)
	}
}

func TestStartCancelsPriorReveal(t *testing.T) {
	r := NewRevealer(time.Millisecond)

	var mu sync.Mutex
	var got []string
	first := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	second := "bb"
	done := make(chan struct{})

	r.Start(first, func(visible string, finished bool) {
		mu.Lock()
		got = append(got, visible)
		mu.Unlock()
	})
	// Interrupt partway through; the second reveal must fully replace it.
	time.Sleep(5 * time.Millisecond)
	r.Start(second, func(visible string, finished bool) {
		mu.Lock()
		got = append(got, visible)
		mu.Unlock()
		if finished {
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second reveal did not finish")
	}
	r.Cancel()

	mu.Lock()
	defer mu.Unlock()
	// After the switch, no frame from the first text may appear.
	sawSecond := false
	for _, f := range got {
		if strings.HasPrefix(second, f) && f != "" {
			sawSecond = true
		}
		if sawSecond && strings.Contains(f, "a") {
			t.Fatalf("frame %q from canceled reveal arrived after the new one started", f)
		}
	}
	if got[len(got)-1] != second {
		t.Errorf("final frame = %q, want %q", got[len(got)-1], second)
	}
}

func TestCancelStopsFrames(t *testing.T) {
	r := NewRevealer(time.Millisecond)

	var mu sync.Mutex
	count := 0
	r.Start(strings.Repeat("x", 1000), func(visible string, finished bool) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	time.Sleep(5 * time.Millisecond)
	r.Cancel()

	mu.Lock()
	after := count
	mu.Unlock()
	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != after {
		t.Errorf("frames kept arriving after Cancel: %d -> %d", after, count)
	}
}
