package letters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReader_ReadFile(t *testing.T) {
	reader := NewReader(1024 * 1024) // 1MB limit

	tempDir, err := os.MkdirTemp("", "letter_reader_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	rtfPath := filepath.Join(tempDir, "letter.rtf")
	rtfContent := `{\rtf1\ansi{\fonttbl{\f0 Times;}}\pard Dear Patient,\par Please attend.\par}`
	if err := os.WriteFile(rtfPath, []byte(rtfContent), 0o644); err != nil {
		t.Fatalf("failed to create RTF file: %v", err)
	}

	txtPath := filepath.Join(tempDir, "note.txt")
	if err := os.WriteFile(txtPath, []byte("plain clinical note"), 0o644); err != nil {
		t.Fatalf("failed to create text file: %v", err)
	}

	htmlPath := filepath.Join(tempDir, "referral.html")
	htmlContent := "<html><body><p>Referral for Mr Jones</p></body></html>"
	if err := os.WriteFile(htmlPath, []byte(htmlContent), 0o644); err != nil {
		t.Fatalf("failed to create HTML file: %v", err)
	}

	largePath := filepath.Join(tempDir, "large.rtf")
	if err := os.WriteFile(largePath, make([]byte, 2*1024*1024), 0o644); err != nil {
		t.Fatalf("failed to create large file: %v", err)
	}

	t.Run("RTF letter converted", func(t *testing.T) {
		result, err := reader.ReadFile(LetterReadFileRequest{Path: rtfPath})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Content != "Dear Patient,\nPlease attend." {
			t.Errorf("unexpected content: %q", result.Content)
		}
		if result.Format != FormatRTF {
			t.Errorf("expected format %q but got %q", FormatRTF, result.Format)
		}
		if result.Strategy != "structured" {
			t.Errorf("expected strategy structured but got %q", result.Strategy)
		}
		if result.CharCount != len([]rune(result.Content)) {
			t.Errorf("char count %d does not match content length", result.CharCount)
		}
		if result.Size == 0 {
			t.Error("expected non-zero size")
		}
		if strings.Contains(result.Content, "Times") {
			t.Error("font table leaked into content")
		}
	})

	t.Run("plain text returned as-is", func(t *testing.T) {
		result, err := reader.ReadFile(LetterReadFileRequest{Path: txtPath})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Content != "plain clinical note" {
			t.Errorf("unexpected content: %q", result.Content)
		}
		if result.Format != FormatText {
			t.Errorf("expected format %q but got %q", FormatText, result.Format)
		}
		if result.Strategy != "" {
			t.Errorf("expected empty strategy for text but got %q", result.Strategy)
		}
	})

	t.Run("HTML converted to text", func(t *testing.T) {
		result, err := reader.ReadFile(LetterReadFileRequest{Path: htmlPath})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Format != FormatHTML {
			t.Errorf("expected format %q but got %q", FormatHTML, result.Format)
		}
		if !strings.Contains(result.Content, "Referral for Mr Jones") {
			t.Errorf("expected referral text in content, got %q", result.Content)
		}
		if strings.Contains(result.Content, "<p>") {
			t.Errorf("markup leaked into content: %q", result.Content)
		}
	})

	t.Run("error cases", func(t *testing.T) {
		tests := []struct {
			name string
			path string
		}{
			{"empty path", ""},
			{"non-existent file", filepath.Join(tempDir, "missing.rtf")},
			{"directory", tempDir},
			{"unsupported extension", filepath.Join(tempDir, "scan.jpg")},
			{"file too large", largePath},
		}

		// The unsupported file must exist to get past the stat
		if err := os.WriteFile(filepath.Join(tempDir, "scan.jpg"), []byte("jpeg"), 0o644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := reader.ReadFile(LetterReadFileRequest{Path: tt.path})
				if err == nil {
					t.Errorf("expected error but got none")
				}
			})
		}
	})
}

func TestReader_ConvertText(t *testing.T) {
	reader := NewReader(1024 * 1024)

	t.Run("RTF content converted", func(t *testing.T) {
		result, err := reader.ConvertText(LetterConvertTextRequest{
			Content: `{\rtf1 Hello\par World}`,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Text != "Hello\nWorld" {
			t.Errorf("unexpected text: %q", result.Text)
		}
		if result.Strategy != "structured" {
			t.Errorf("expected strategy structured but got %q", result.Strategy)
		}
		if result.CharCount != 11 {
			t.Errorf("expected char count 11 but got %d", result.CharCount)
		}
	})

	t.Run("non-RTF content passed through", func(t *testing.T) {
		result, err := reader.ConvertText(LetterConvertTextRequest{
			Content: "already plain",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Text != "already plain" {
			t.Errorf("unexpected text: %q", result.Text)
		}
		if result.Strategy != "passthrough" {
			t.Errorf("expected strategy passthrough but got %q", result.Strategy)
		}
	})

	t.Run("empty content rejected", func(t *testing.T) {
		if _, err := reader.ConvertText(LetterConvertTextRequest{}); err == nil {
			t.Error("expected error for empty content")
		}
	})

	t.Run("oversized content rejected", func(t *testing.T) {
		small := NewReader(16)
		_, err := small.ConvertText(LetterConvertTextRequest{
			Content: `{\rtf1 this document is larger than the limit}`,
		})
		if err == nil {
			t.Error("expected error for oversized content")
		}
	})
}

func TestNewReader(t *testing.T) {
	maxFileSize := int64(5 * 1024 * 1024)
	reader := NewReader(maxFileSize)

	if reader == nil {
		t.Fatal("NewReader returned nil")
	}

	if reader.maxFileSize != maxFileSize {
		t.Errorf("expected maxFileSize=%d but got %d", maxFileSize, reader.maxFileSize)
	}

	if reader.maxTextSize != 10*1024*1024 {
		t.Errorf("unexpected maxTextSize: %d", reader.maxTextSize)
	}
}
