package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	// Test Unix()
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}

	// Test UnixMilli()
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}

	// Test UnixMicro()
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}

	// Test UnixNano()
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}

	// Verify it's not returning time.Now() by waiting a bit
	// 通过等待一会确认它不是返回 time.Now()
	time.Sleep(10 * time.Millisecond)
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() changed after sleep, it should be static. got %v, want %v", tt.Unix(), now.Unix())
	}
}

func TestTime_ScanValue(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC)

	var tt Time
	if err := tt.Scan(now); err != nil {
		t.Fatalf("Scan(time.Time) error: %v", err)
	}
	if !tt.Std().Equal(now) {
		t.Errorf("Scan(time.Time) = %v, want %v", tt.Std(), now)
	}

	if err := tt.Scan("2024-03-20 09:30:00"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if !tt.Std().Equal(now) {
		t.Errorf("Scan(string) = %v, want %v", tt.Std(), now)
	}

	if err := tt.Scan(nil); err != nil || !tt.IsZero() {
		t.Errorf("Scan(nil) should reset to zero, got %v (%v)", tt, err)
	}

	v, err := Time{}.Value()
	if err != nil || v != nil {
		t.Errorf("zero Value() = %v, %v; want nil", v, err)
	}
}

func TestTime_JSON(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC)
	b, err := Time(now).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-03-20T09:30:00Z"` {
		t.Errorf("MarshalJSON() = %s", b)
	}

	var back Time
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if !back.Std().Equal(now) {
		t.Errorf("UnmarshalJSON() = %v, want %v", back.Std(), now)
	}

	zero, _ := Time{}.MarshalJSON()
	if string(zero) != "null" {
		t.Errorf("zero MarshalJSON() = %s, want null", zero)
	}
}
