package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const chatDocXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Him: I need you to buy gift cards today</w:t></w:r></w:p>
    <w:p><w:r><w:t>Me: why cant you call me?</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestTranscriptPlainText(t *testing.T) {
	text, err := Transcript(context.Background(), []byte("  him: send money\nme: no\n"), "text/plain", "chat.txt")
	if err != nil {
		t.Fatal(err)
	}
	if text != "him: send money\nme: no" {
		t.Errorf("text = %q", text)
	}
}

func TestTranscriptDocxKeepsMessageLines(t *testing.T) {
	data := buildDocx(t, chatDocXML)
	text, err := Transcript(context.Background(), data, mimeDOCX, "chat.docx")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "Him: ") || !strings.HasPrefix(lines[1], "Me: ") {
		t.Errorf("lines = %q", lines)
	}
}

func TestTranscriptZipMimeSniffsDocx(t *testing.T) {
	data := buildDocx(t, chatDocXML)
	if _, err := Transcript(context.Background(), data, "application/zip", "export.docx"); err != nil {
		t.Fatalf("docx behind zip mime must extract: %v", err)
	}
}

func TestTranscriptOctetStreamFallsBackToExtension(t *testing.T) {
	text, err := Transcript(context.Background(), []byte("me: hello"), "application/octet-stream", "chat.txt")
	if err != nil {
		t.Fatal(err)
	}
	if text != "me: hello" {
		t.Errorf("text = %q", text)
	}
}

func TestTranscriptRejectsUnsupportedFormat(t *testing.T) {
	_, err := Transcript(context.Background(), []byte("GIF89a"), "image/gif", "cat.gif")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestTranscriptRejectsBinaryAsText(t *testing.T) {
	if _, err := Transcript(context.Background(), []byte{0xff, 0xfe, 0x00}, "text/plain", "chat.txt"); err == nil {
		t.Fatal("binary payload must not pass as plain text")
	}
}
