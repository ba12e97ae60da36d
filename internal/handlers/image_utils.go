package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	"imoveisBack/internal/models"
)

// collectImageFiles gathers every uploaded file under the given form keys.
func collectImageFiles(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}

	var result []*multipart.FileHeader
	for _, key := range keys {
		if headers, ok := form.File[key]; ok {
			result = append(result, headers...)
		}
	}
	return result
}

// gatherImagesFromForm reads string values out of the multipart form and
// decodes them into gallery entries. Returns the images, whether any value
// was present, and a decoding error.
func gatherImagesFromForm(form *multipart.Form, keys ...string) ([]models.PropertyImage, bool, error) {
	if form == nil {
		return nil, false, nil
	}

	var rawValues []string
	for _, key := range keys {
		if values, ok := form.Value[key]; ok {
			rawValues = append(rawValues, values...)
		}
	}
	if len(rawValues) == 0 {
		return nil, false, nil
	}

	images, err := parseImagesFromValues(rawValues)
	if err != nil {
		return nil, false, err
	}

	return images, true, nil
}

// parseImagesFromValues accepts the shapes web clients actually send: a JSON
// array of entries, a single JSON object, a quoted or bare URL. Junk values
// like "[object Object]" are skipped.
func parseImagesFromValues(values []string) ([]models.PropertyImage, error) {
	var result []models.PropertyImage

	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "null" || raw == "undefined" || raw == "[object Object]" {
			continue
		}

		if strings.HasPrefix(raw, "[") {
			var arr []models.PropertyImage
			if err := json.Unmarshal([]byte(raw), &arr); err != nil {
				return nil, fmt.Errorf("failed to decode image array: %w", err)
			}
			for i := range arr {
				normalizeImage(&arr[i])
			}
			result = append(result, arr...)
			continue
		}

		if strings.HasPrefix(raw, "{") {
			var item models.PropertyImage
			if err := json.Unmarshal([]byte(raw), &item); err != nil {
				continue
			}
			normalizeImage(&item)
			result = append(result, item)
			continue
		}

		path := strings.Trim(raw, `"`)
		result = append(result, models.PropertyImage{Name: path, Path: path, Type: "link"})
	}

	return result, nil
}

func normalizeImage(img *models.PropertyImage) {
	if img.Name == "" {
		img.Name = img.Path
	}
	if img.Type == "" {
		img.Type = "link"
	}
}

// gatherStringsFromForm decodes a string set (e.g. amenities) sent either as
// a JSON array or as repeated plain values.
func gatherStringsFromForm(form *multipart.Form, keys ...string) []string {
	if form == nil {
		return nil
	}

	var result []string
	for _, key := range keys {
		for _, raw := range form.Value[key] {
			raw = strings.TrimSpace(raw)
			if raw == "" || raw == "null" || raw == "undefined" {
				continue
			}
			if strings.HasPrefix(raw, "[") {
				var arr []string
				if err := json.Unmarshal([]byte(raw), &arr); err == nil {
					result = append(result, arr...)
				}
				continue
			}
			result = append(result, raw)
		}
	}
	return result
}
