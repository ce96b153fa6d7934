package clock_test

import (
	"strings"
	"testing"
	"time"

	"github.com/laops/shipsync/internal/clock"
)

func testNow(t *testing.T, now time.Time) {
	if now.IsZero() {
		t.Errorf("Now() returned zero time")
	}
	if !strings.HasSuffix(now.String(), "UTC") {
		t.Errorf("Now() did not return UTC time")
	}
}

func TestNow(t *testing.T) {
	testNow(t, clock.Now())
}

func TestRealClockNow(t *testing.T) {
	c := clock.RealClock{}
	testNow(t, c.Now())
}
