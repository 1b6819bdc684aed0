package admin

import (
	"bytes"
	"happycrafts_server/imageset"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formFile struct {
	name        string
	contentType string
	content     []byte
}

func buildForm(t *testing.T, values map[string][]string, files []formFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, vals := range values {
		for _, val := range vals {
			require.NoError(t, writer.WriteField(key, val))
		}
	}

	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func parseForm(t *testing.T, values map[string][]string, files []formFile) (*productForm, error) {
	t.Helper()
	body, contentType := buildForm(t, values, files)
	r := httptest.NewRequest("POST", "/admin/products", body)
	r.Header.Set("Content-Type", contentType)
	return parseProductForm(r)
}

func baseValues() map[string][]string {
	return map[string][]string{
		"name":        {"Etched wine glass"},
		"company":     {"HappyCrafts"},
		"description": {"Hand etched glass"},
		"category":    {"tumblers"},
		"price":       {"2495"},
		"tags":        {"gifts", "wedding"},
	}
}

func TestParseProductFormFieldsAndOrder(t *testing.T) {
	values := baseValues()
	values["existing_urls"] = []string{"https://cdn.test/a.webp", "https://cdn.test/b.webp"}
	values["main_image_index"] = []string{"2"}

	form, err := parseForm(t, values, []formFile{
		{name: "new.png", contentType: "image/png", content: []byte("png-bytes")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Etched wine glass", form.Fields.Name)
	assert.Equal(t, uint64(2495), form.Fields.Price)
	assert.Equal(t, []string{"gifts", "wedding"}, form.Fields.Tags)

	// Existing URLs come first, new files after, main points into the combined list
	require.Equal(t, 3, form.Set.Len())
	assert.Equal(t, []string{"https://cdn.test/a.webp", "https://cdn.test/b.webp"}, form.Set.RemoteURLs())
	assert.Equal(t, 2, form.Set.Main())

	refs := form.Set.Refs()
	assert.Equal(t, imageset.KindLocal, refs[2].Kind)
	assert.Equal(t, "new.png", refs[2].File.Name)
}

func TestPendingFromHeaderRejectsOversizedImage(t *testing.T) {
	header := &multipart.FileHeader{
		Filename: "big.png",
		Size:     maxImageSize + 1,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
	}

	_, err := pendingFromHeader(header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "50MB")
}

func TestParseProductFormRejectsUnsupportedType(t *testing.T) {
	_, err := parseForm(t, baseValues(), []formFile{
		{name: "anim.gif", contentType: "image/gif", content: []byte("gif")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestParseProductFormMainIndexOutOfRange(t *testing.T) {
	values := baseValues()
	values["existing_urls"] = []string{"https://cdn.test/a.webp"}
	values["main_image_index"] = []string{"5"}

	_, err := parseForm(t, values, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParseProductFormRequiresPrice(t *testing.T) {
	values := baseValues()
	values["price"] = []string{""}

	_, err := parseForm(t, values, nil)
	assert.Error(t, err)
}
