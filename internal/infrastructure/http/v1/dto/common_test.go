package dto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/apperror"
)

func TestImagePayload_Upload(t *testing.T) {
	raw := []byte("GIF89a")
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload ImagePayload
		want    []byte
		wantErr bool
	}{
		{name: "no image", payload: ImagePayload{}},
		{name: "plain base64", payload: ImagePayload{ImageData: encoded, ImageName: "a.gif"}, want: raw},
		{name: "data url", payload: ImagePayload{ImageData: "data:image/gif;base64," + encoded, ImageName: "a.gif"}, want: raw},
		{name: "missing name", payload: ImagePayload{ImageData: encoded}, wantErr: true},
		{name: "garbage", payload: ImagePayload{ImageData: "not base64!", ImageName: "a.gif"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload, err := tt.payload.Upload()
			if tt.wantErr {
				assert.True(t, apperror.IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, upload)
				return
			}
			assert.Equal(t, tt.want, upload.Data)
			assert.Equal(t, tt.payload.ImageName, upload.Filename)
		})
	}
}

func TestListRequest_ToFilter(t *testing.T) {
	f := ListRequest{Search: "  plov ", Page: 3, PageSize: 20}.ToFilter()
	assert.Equal(t, "plov", f.Search)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 40, f.Offset)
	assert.Equal(t, "name", f.OrderBy)

	f = ListRequest{OrderBy: "-created_at"}.ToFilter()
	assert.Equal(t, "-created_at", f.OrderBy)
	assert.Equal(t, 0, f.Offset)
}

func TestURLFunc_NilKeepsReference(t *testing.T) {
	var url URLFunc
	assert.Equal(t, "avatars/no_photo.png", url.resolve("avatars/no_photo.png"))

	url = func(ref string) string { return "https://cdn/" + ref }
	assert.Equal(t, "", url.resolve(""))
	assert.Equal(t, "https://cdn/a.png", url.resolve("a.png"))
}
