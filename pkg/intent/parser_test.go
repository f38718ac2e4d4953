package intent

import (
	"testing"
)

func TestExtractTag(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		tag       string
		wantValue string
		wantOk    bool
	}{
		{
			name:      "clean tag",
			response:  "<operation.type>move</operation.type>",
			tag:       "operation.type",
			wantValue: "move",
			wantOk:    true,
		},
		{
			name:      "surrounding prose",
			response:  "Sure, here is the result:\n<operation.type>delete</operation.type>\nLet me know if you need anything else.",
			tag:       "operation.type",
			wantValue: "delete",
			wantOk:    true,
		},
		{
			name:      "code fence",
			response:  "```\n<search.term>분기 보고서</search.term>\n```",
			tag:       "search.term",
			wantValue: "분기 보고서",
			wantOk:    true,
		},
		{
			name:      "whitespace inside tag",
			response:  "<new.name>  final_report.pdf  </new.name>",
			tag:       "new.name",
			wantValue: "final_report.pdf",
			wantOk:    true,
		},
		{
			name:      "repeated tags take first",
			response:  "<operation.type>copy</operation.type><operation.type>move</operation.type>",
			tag:       "operation.type",
			wantValue: "copy",
			wantOk:    true,
		},
		{
			name:     "missing open tag",
			response: "move</operation.type>",
			tag:      "operation.type",
			wantOk:   false,
		},
		{
			name:     "unclosed tag",
			response: "<operation.type>move",
			tag:      "operation.type",
			wantOk:   false,
		},
		{
			name:     "empty value",
			response: "<operation.type>   </operation.type>",
			tag:      "operation.type",
			wantOk:   false,
		},
		{
			name:     "empty response",
			response: "",
			tag:      "operation.type",
			wantOk:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := ExtractTag(tt.response, tt.tag)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
		})
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"marketing"`, "marketing"},
		{`'재무'`, "재무"},
		{"“보고서”", "보고서"},
		{"「신규」", "신규"},
		{"plain", "plain"},
		{`"unbalanced`, `"unbalanced`},
		{`""`, `""`}, // nothing inside, leave as-is
	}

	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuotedSubstring(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{`rename it to "final_report"`, "final_report"},
		{"'draft' 이름으로 바꿔줘", "draft"},
		{"「회의록」 폴더 만들어줘", "회의록"},
		{"no quotes here", ""},
	}

	for _, tt := range tests {
		if got := quotedSubstring(tt.command); got != tt.want {
			t.Errorf("quotedSubstring(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}
