package engine

import "testing"

func TestGraceMinutes(t *testing.T) {
	tests := []struct {
		end  string
		want int
	}{
		{"00:00", 0},
		{"00:01", 0},
		{"00:59", 0},
		{"01:00", 60},
		{"02:00", 120},
		{"11:59", 719},
		{"12:00", 0},
		{"23:00", 0},
		{"", 0},
		{"late", 0},
	}
	for _, tt := range tests {
		t.Run(tt.end, func(t *testing.T) {
			if got := GraceMinutes(tt.end); got != tt.want {
				t.Errorf("GraceMinutes(%q) = %d, want %d", tt.end, got, tt.want)
			}
		})
	}
}

func TestEffectiveToday(t *testing.T) {
	tests := []struct {
		name  string
		now   string
		clock string
		end   string
		want  string
	}{
		{"inside grace window", "2024-06-11", "01:30", "02:00", "2024-06-10"},
		{"exactly at end time", "2024-06-11", "02:00", "02:00", "2024-06-11"},
		{"after end time", "2024-06-11", "09:00", "02:00", "2024-06-11"},
		{"midnight end never shifts", "2024-06-11", "00:10", "00:00", "2024-06-11"},
		{"sub-hour end never shifts", "2024-06-11", "00:10", "00:30", "2024-06-11"},
		{"01:00 end shifts just after midnight", "2024-06-11", "00:10", "01:00", "2024-06-10"},
		{"noon end never shifts", "2024-06-11", "11:00", "12:00", "2024-06-11"},
		{"evening end never shifts", "2024-06-11", "21:00", "22:00", "2024-06-11"},
		{"malformed end treated as midnight", "2024-06-11", "00:30", "2am", "2024-06-11"},
		{"grace across month", "2024-07-01", "00:30", "03:00", "2024-06-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveTodayKey(at(t, tt.now, tt.clock), tt.end)
			if got != tt.want {
				t.Errorf("EffectiveTodayKey() = %s, want %s", got, tt.want)
			}
		})
	}
}
