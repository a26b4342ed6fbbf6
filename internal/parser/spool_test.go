package parser

import (
	"io"
	"os"
	"strings"
	"testing"
)

func TestSpool_RewindsAndRemoves(t *testing.T) {
	f, err := spool(strings.NewReader("%PDF-1.4 body"), "spool-test-*.bin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Size != 13 {
		t.Errorf("expected size 13, got %d", f.Size)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read spooled file: %v", err)
	}
	if string(data) != "%PDF-1.4 body" {
		t.Errorf("expected content from start, got %q", data)
	}

	path := f.Name()
	f.Close()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s removed after Close, stat err=%v", path, err)
	}
}

func TestPDFParser_RejectsGarbage(t *testing.T) {
	_, err := (&PDFParser{}).Parse(strings.NewReader("not a pdf"), "bad.pdf")
	if err == nil {
		t.Fatal("expected error for non-pdf input")
	}
}
