package admin

import (
	"fmt"
	"happycrafts_server/imageset"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

const (
	maxFormMemory = 32 << 20 // 32 MB held in memory, rest spills to disk
	maxImageSize  = 50 << 20 // 50 MB per image
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// productForm is the decoded multipart product submission. The image set
// holds kept remote URLs and new files in their final display order:
// existing_urls first, then uploads.
type productForm struct {
	Fields imageset.ProductFields
	Set    *imageset.Set
}

// parseProductForm decodes the admin product form. Returned errors are
// safe to show to the caller.
func parseProductForm(r *http.Request) (*productForm, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		return nil, err
	}

	fields := imageset.ProductFields{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Company:     strings.TrimSpace(r.FormValue("company")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    r.FormValue("category"),
		Options:     formValues(r, "options"),
		Tags:        formValues(r, "tags"),
		Price:       price,
	}

	set, err := imageset.FromURLs(formValues(r, "existing_urls"), 0)
	if err != nil {
		return nil, err
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := pendingFromHeader(header)
			if err != nil {
				return nil, err
			}
			set.Add(file)
		}
	}

	mainIndex := 0
	if raw := r.FormValue("main_image_index"); raw != "" {
		mainIndex, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid main_image_index %q", raw)
		}
	}
	if set.Len() > 0 {
		if err := set.SetMain(mainIndex); err != nil {
			return nil, fmt.Errorf("main_image_index %d is out of range", mainIndex)
		}
	}

	return &productForm{Fields: fields, Set: set}, nil
}

// pendingFromHeader validates a multipart file and wraps it as a pending upload
func pendingFromHeader(header *multipart.FileHeader) (imageset.PendingFile, error) {
	if header.Size > maxImageSize {
		return imageset.PendingFile{}, fmt.Errorf("image %q exceeds the 50MB size limit", header.Filename)
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return imageset.PendingFile{}, fmt.Errorf("image %q has unsupported type %q, use JPEG, PNG or WebP", header.Filename, contentType)
	}

	return imageset.PendingFile{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}, nil
}

func parsePrice(raw string) (uint64, error) {
	if raw == "" {
		return 0, fmt.Errorf("price is required")
	}
	price, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q, expected cents as a whole number", raw)
	}
	return price, nil
}

// formValues returns all values for a repeated form field, dropping empties
func formValues(r *http.Request, key string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	var values []string
	for _, val := range r.MultipartForm.Value[key] {
		if val = strings.TrimSpace(val); val != "" {
			values = append(values, val)
		}
	}
	return values
}
