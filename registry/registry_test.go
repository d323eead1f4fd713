package registry

import (
	"testing"

	"feed-service/model"
)

func TestDefaultIsValid(t *testing.T) {
	sources := Default()
	if len(sources) == 0 {
		t.Fatal("expected a non-empty default registry")
	}
	if err := Validate(sources); err != nil {
		t.Errorf("default registry failed validation: %v", err)
	}
}

func TestDefaultCoversEveryCategory(t *testing.T) {
	covered := make(map[model.Category]bool)
	for _, s := range Default() {
		covered[s.Category] = true
	}
	for _, c := range model.Categories {
		if !covered[c] {
			t.Errorf("no default source for category %q", c)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := model.Source{Name: "ok", Endpoint: "https://ok.example.com/feed", Category: model.CategoryOther}

	tests := []struct {
		name    string
		sources []model.Source
		wantErr bool
	}{
		{"valid", []model.Source{ok}, false},
		{"empty list", nil, false},
		{"missing name", []model.Source{{Endpoint: "https://x.example.com", Category: model.CategoryOther}}, true},
		{"duplicate name", []model.Source{ok, ok}, true},
		{"missing endpoint", []model.Source{{Name: "x", Category: model.CategoryOther}}, true},
		{"bad scheme", []model.Source{{Name: "x", Endpoint: "ftp://x.example.com", Category: model.CategoryOther}}, true},
		{"unknown category", []model.Source{{Name: "x", Endpoint: "https://x.example.com", Category: "politics"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.sources)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
