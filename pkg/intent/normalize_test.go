package intent

import "testing"

func TestNormalizeSearchTerm(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{
			name:    "korean location question",
			command: "작년 계약서 어디에 있어?",
			want:    "작년 계약서 위치",
		},
		{
			name:    "korean location with topic particle",
			command: "예산안 파일은 어디야",
			want:    "예산안 파일 위치",
		},
		{
			name:    "korean folder question",
			command: "회의록이 어느 폴더에 있지?",
			want:    "회의록 포함 폴더",
		},
		{
			name:    "english where is",
			command: "where is the quarterly report?",
			want:    "location of the quarterly report",
		},
		{
			name:    "english which folder has",
			command: "which folder has the tax documents",
			want:    "directory containing the tax documents",
		},
		{
			name:    "plain keyword passes through",
			command: "분기 보고서",
			want:    "분기 보고서",
		},
		{
			name:    "english statement passes through",
			command: "quarterly report draft",
			want:    "quarterly report draft",
		},
		{
			name:    "empty stays empty",
			command: "   ",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSearchTerm(tt.command); got != tt.want {
				t.Errorf("NormalizeSearchTerm(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestContainsHangul(t *testing.T) {
	if !containsHangul("보고서 where") {
		t.Error("mixed string should report hangul")
	}
	if containsHangul("plain english") {
		t.Error("ascii string should not report hangul")
	}
}
