package handlers

import (
	"mime/multipart"
	"testing"
)

func TestParseImagesFromValuesSkipsInvalid(t *testing.T) {
	values := []string{"[object Object]", "null", "undefined", "\"/images/properties/a.jpg\"", "https://cdn.example.com/b.jpg"}

	images, err := parseImagesFromValues(values)
	if err != nil {
		t.Fatalf("parseImagesFromValues returned error: %v", err)
	}

	if len(images) != 2 {
		t.Fatalf("expected 2 parsed entries, got %d", len(images))
	}

	if images[0].Path != "/images/properties/a.jpg" {
		t.Errorf("expected first path to be unquoted, got %q", images[0].Path)
	}

	if images[1].Path != "https://cdn.example.com/b.jpg" {
		t.Errorf("unexpected second path: %q", images[1].Path)
	}
}

func TestParseImagesFromValuesJSONArray(t *testing.T) {
	values := []string{`[{"name":"a.jpg","path":"/images/properties/a.jpg","type":"upload"},{"path":"/images/properties/b.jpg"}]`}

	images, err := parseImagesFromValues(values)
	if err != nil {
		t.Fatalf("parseImagesFromValues returned error: %v", err)
	}

	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}

	if images[1].Name != "/images/properties/b.jpg" {
		t.Errorf("expected missing name to fall back to path, got %q", images[1].Name)
	}
	if images[1].Type != "link" {
		t.Errorf("expected missing type to default to link, got %q", images[1].Type)
	}
}

func TestParseImagesFromValuesSingleObject(t *testing.T) {
	values := []string{`{"name":"c.jpg","path":"/images/properties/c.jpg"}`}

	images, err := parseImagesFromValues(values)
	if err != nil {
		t.Fatalf("parseImagesFromValues returned error: %v", err)
	}

	if len(images) != 1 || images[0].Path != "/images/properties/c.jpg" {
		t.Fatalf("unexpected result: %#v", images)
	}
}

func TestParseImagesFromValuesBrokenArrayFails(t *testing.T) {
	if _, err := parseImagesFromValues([]string{"[{broken"}); err == nil {
		t.Fatal("expected error for malformed array payload")
	}
}

func TestGatherImagesFromFormNoValues(t *testing.T) {
	form := &multipart.Form{Value: map[string][]string{}}

	images, ok, err := gatherImagesFromForm(form, "image_links", "existing_images")
	if err != nil {
		t.Fatalf("gatherImagesFromForm returned error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false when keys are absent")
	}
	if len(images) != 0 {
		t.Fatalf("expected zero images, got %d", len(images))
	}
}

func TestGatherImagesFromFormMergesKeys(t *testing.T) {
	form := &multipart.Form{
		Value: map[string][]string{
			"image_links":     {`[{"path":"/images/properties/a.jpg"}]`},
			"existing_images": {`"/images/properties/b.jpg"`},
		},
	}

	images, ok, err := gatherImagesFromForm(form, "image_links", "existing_images")
	if err != nil {
		t.Fatalf("gatherImagesFromForm returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true when values are present")
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images from both keys, got %d", len(images))
	}
}

func TestGatherStringsFromForm(t *testing.T) {
	form := &multipart.Form{
		Value: map[string][]string{
			"amenities": {`["water","electricity"]`, "garage", "", "null"},
		},
	}

	values := gatherStringsFromForm(form, "amenities")

	if len(values) != 3 {
		t.Fatalf("expected 3 amenities, got %d: %v", len(values), values)
	}
	if values[0] != "water" || values[1] != "electricity" || values[2] != "garage" {
		t.Fatalf("unexpected amenities: %v", values)
	}
}

func TestCollectImageFilesNilForm(t *testing.T) {
	if files := collectImageFiles(nil, "images"); files != nil {
		t.Fatalf("expected nil for nil form, got %v", files)
	}
}

func TestCollectImageFilesMergesKeys(t *testing.T) {
	form := &multipart.Form{
		File: map[string][]*multipart.FileHeader{
			"images": {{Filename: "a.jpg"}},
			"files":  {{Filename: "b.jpg"}, {Filename: "c.jpg"}},
		},
	}

	files := collectImageFiles(form, "images", "files")

	if len(files) != 3 {
		t.Fatalf("expected 3 files across keys, got %d", len(files))
	}
}
