package uploads

import (
	"context"
	"io"
	"testing"

	"cie-backend/internal/shared/storage/object/local"
)

func TestSaveExtractedCopy(t *testing.T) {
	store := local.New(t.TempDir())

	saveExtractedCopy(context.Background(), store, "project-applications/proj-1/alice.pdf", "Alice Zhang\nGo, SQL")

	rc, err := store.Open(context.Background(), "project-applications/proj-1/alice.pdf.extracted.txt")
	if err != nil {
		t.Fatalf("open derived copy: %v", err)
	}
	defer rc.Close()

	text, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read derived copy: %v", err)
	}
	if string(text) != "Alice Zhang\nGo, SQL" {
		t.Fatalf("unexpected derived text: %q", text)
	}
}
