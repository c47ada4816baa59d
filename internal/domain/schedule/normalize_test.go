package schedule

import (
	"testing"
	"time"
)

func TestParseTimestampShapes(t *testing.T) {
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   any
	}{
		{"native", want},
		{"rfc3339", "2024-05-10T00:00:00Z"},
		{"dateOnly", "2024-05-10"},
		{"secondsWrapper", map[string]any{"seconds": float64(want.Unix())}},
		{"underscoreWrapper", map[string]any{"_seconds": float64(want.Unix())}},
		{"unixSeconds", float64(want.Unix())},
		{"unixMillis", float64(want.UnixMilli())},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: expected %s, got %s", tc.name, want, got)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []any{nil, "not a date", map[string]any{"nanos": 5}, struct{}{}} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Fatalf("expected error for %#v", in)
		}
	}
}

func TestNormalizeIntervalWidensToDayBounds(t *testing.T) {
	start, end, err := NormalizeInterval("2024-02-01T14:30:00Z", "2024-02-03T09:15:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start not floored: %s", start)
	}
	wantEnd := time.Date(2024, 2, 3, 23, 59, 59, 999999999, time.UTC)
	if !end.Equal(wantEnd) {
		t.Fatalf("end not ceiled: %s", end)
	}
}

func TestBuildLeaveMapDropsBadRecords(t *testing.T) {
	rows := []RawLeave{
		{EmployeeID: "a", Start: "2024-02-01", End: "2024-02-03", Status: "approved", Type: "vacation"},
		{EmployeeID: "b", Start: "garbage", End: "2024-02-03", Status: "approved", Type: "sick"},
		{EmployeeID: "a", Start: "2024-01-10", End: "2024-01-11", Status: "rejected", Type: "personal"},
		{EmployeeID: "c", Start: "2024-03-01", End: "2024-03-02", Status: "pending", Type: "personal"},
	}

	leaves := BuildLeaveMap(rows)
	if len(leaves["a"]) != 1 {
		t.Fatalf("rejected records must be excluded, got %+v", leaves["a"])
	}
	if len(leaves["b"]) != 0 {
		t.Fatal("unparseable record must be dropped without aborting the batch")
	}
	if len(leaves["c"]) != 1 {
		t.Fatal("pending records affect scheduling and must be kept")
	}
}

func TestBuildLendingMapsDirections(t *testing.T) {
	rows := []RawLending{
		{StylistID: "s1", FromBranchID: "b1", ToBranchID: "b2", ToBranchName: "Uptown", Start: "2024-03-01", End: "2024-03-05", Status: "approved"},
		{StylistID: "s2", FromBranchID: "b3", ToBranchID: "b1", FromBranchName: "Downtown", Start: "2024-03-10", End: "2024-03-12", Status: "approved"},
	}

	outbound, inbound := BuildLendingMaps("b1", rows)
	if len(outbound["s1"]) != 1 || len(inbound["s1"]) != 0 {
		t.Fatalf("s1 must be outbound only: out=%v in=%v", outbound["s1"], inbound["s1"])
	}
	if len(inbound["s2"]) != 1 || len(outbound["s2"]) != 0 {
		t.Fatalf("s2 must be inbound only: out=%v in=%v", outbound["s2"], inbound["s2"])
	}
}

func TestDateKey(t *testing.T) {
	if key := DateKey(time.Date(2024, 1, 8, 23, 45, 0, 0, time.UTC)); key != "2024-01-08" {
		t.Fatalf("expected 2024-01-08, got %s", key)
	}
}
