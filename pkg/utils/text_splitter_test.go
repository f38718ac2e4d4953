package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("short input should come back unchanged, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 40 {
			t.Errorf("chunk %d exceeds size: %d", i, len([]rune(c)))
		}
	}
	// Each chunk starts where the previous one left off minus the overlap
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	if string(first[30:]) != string(second[:10]) {
		t.Errorf("overlap mismatch: %q vs %q", string(first[30:]), string(second[:10]))
	}
}

func TestSplitTextKorean(t *testing.T) {
	text := strings.Repeat("가나다라마바사아자차", 30) // 300 runes, 900 bytes
	chunks := SplitText(text, 100, 20)

	joined := strings.Join(chunks, "")
	if !strings.Contains(joined, "가나다라마바사아자차") {
		t.Fatal("chunks must contain intact korean text")
	}
	for i, c := range chunks {
		for _, r := range c {
			if r == '�' {
				t.Fatalf("chunk %d split a multibyte character", i)
			}
		}
	}
}

func TestSplitTextOverlapAtLeastChunkSize(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 10)

	if len(chunks) != 5 {
		t.Errorf("degenerate overlap should fall back to disjoint chunks, got %d", len(chunks))
	}
}
