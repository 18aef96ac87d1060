package sheets

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"curadoria/internal/config"
)

func TestToGrid(t *testing.T) {
	got := ToGrid([][]interface{}{
		{"Nome", "Preço"},
		{"Bar do Zé", 35.5},
		{nil, true},
	})
	want := [][]string{{"Nome", "Preço"}, {"Bar do Zé", "35.5"}, {"", "true"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestNewConnectorRequiresCredentials(t *testing.T) {
	_, err := NewConnector(context.Background(), config.Config{}, "sheet-id")
	if err == nil || !strings.Contains(err.Error(), "SHEETS_API_KEY") {
		t.Fatalf("err=%v", err)
	}

	_, err = NewConnector(context.Background(), config.Config{SheetsAPIKey: "k"}, "")
	if err == nil {
		t.Fatal("expected missing spreadsheet id error")
	}
}

func TestNewConnectorWithAPIKey(t *testing.T) {
	c, err := NewConnector(context.Background(), config.Config{SheetsAPIKey: "k", SheetsRange: "Lugares!A1:H"}, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if c.Location() != "sheets:abc!Lugares!A1:H" {
		t.Fatalf("location=%s", c.Location())
	}
}
