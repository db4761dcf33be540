package apierror

import (
	"fmt"
	"testing"
)

func TestLogNewestFirstAndEviction(t *testing.T) {
	log := NewLog(3)
	for i := 1; i <= 5; i++ {
		log.Append(&Record{ID: fmt.Sprintf("r%d", i)})
	}

	if log.Len() != 3 {
		t.Fatalf("Len = %d, want 3", log.Len())
	}
	records := log.Records()
	want := []string{"r5", "r4", "r3"}
	for i, id := range want {
		if records[i].ID != id {
			t.Errorf("records[%d] = %s, want %s", i, records[i].ID, id)
		}
	}
}

func TestLogBySeverity(t *testing.T) {
	log := NewLog(0)
	log.Append(&Record{ID: "a", Severity: SeverityLow})
	log.Append(&Record{ID: "b", Severity: SeverityCritical})
	log.Append(&Record{ID: "c", Severity: SeverityCritical})

	critical := log.BySeverity(SeverityCritical)
	if len(critical) != 2 || critical[0].ID != "c" || critical[1].ID != "b" {
		t.Errorf("BySeverity(Critical) = %v", critical)
	}
	if got := log.BySeverity(SeverityHigh); len(got) != 0 {
		t.Errorf("BySeverity(High) = %v, want empty", got)
	}
}

func TestLogDefaultCapacityAndClear(t *testing.T) {
	log := NewLog(0)
	for i := 0; i < DefaultLogCapacity+10; i++ {
		log.Append(&Record{})
	}
	if log.Len() != DefaultLogCapacity {
		t.Errorf("Len = %d, want %d", log.Len(), DefaultLogCapacity)
	}

	log.Clear()
	if log.Len() != 0 {
		t.Errorf("Len after Clear = %d", log.Len())
	}
}

func TestLogIgnoresNil(t *testing.T) {
	log := NewLog(1)
	log.Append(nil)
	if log.Len() != 0 {
		t.Error("nil records must be ignored")
	}

	var none *Log
	none.Append(&Record{})
	if none.Len() != 0 || none.Records() != nil {
		t.Error("nil ring must be a no-op")
	}
}
