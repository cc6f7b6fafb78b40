package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeMarshalJSONUsesMillisUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := Time{Time: time.Date(2024, 1, 15, 12, 30, 0, 123456789, loc)}

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-01-15T10:30:00.123Z"` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}

func TestTimeUnmarshalJSON(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"2024-01-15T10:30:00Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("expected %v, got %v", want, ts.Time)
	}
}

func TestTimeUnmarshalNullPreservesValue(t *testing.T) {
	orig := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := Time{Time: orig}
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ts.Equal(orig) {
		t.Fatalf("expected value preserved, got %v", ts.Time)
	}
}

func TestTimeUnmarshalInvalid(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}

func TestNowIsRecent(t *testing.T) {
	if time.Since(Now().Time) > time.Second {
		t.Fatal("expected Now to be close to the current time")
	}
}
