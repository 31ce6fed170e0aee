package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageKitUploader_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var gotFileName, gotFolder, gotUser string
		var gotFile []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser, _, _ = r.BasicAuth()
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotFileName = r.FormValue("fileName")
			gotFolder = r.FormValue("folder")
			file, _, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			gotFile, err = io.ReadAll(file)
			require.NoError(t, err)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"url": "https://ik.imagekit.io/devevent/banner.png"}`))
		}))
		defer srv.Close()

		uploader := NewImageKitUploader(srv.Client(), ImageKitConfig{
			PrivateKey: "private_key",
			Folder:     "DevEvent",
			UploadURL:  srv.URL,
		})

		url, err := uploader.Upload(ctx, []byte("png-bytes"), "banner.png")
		require.NoError(t, err)
		assert.Equal(t, "https://ik.imagekit.io/devevent/banner.png", url)
		assert.Equal(t, "banner.png", gotFileName)
		assert.Equal(t, "DevEvent", gotFolder)
		assert.Equal(t, "private_key", gotUser)
		assert.Equal(t, []byte("png-bytes"), gotFile)
	})

	t.Run("empty file name falls back to default", func(t *testing.T) {
		var gotFileName string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotFileName = r.FormValue("fileName")
			w.Write([]byte(`{"url": "https://ik.imagekit.io/devevent/event-photo.jpg"}`))
		}))
		defer srv.Close()

		uploader := NewImageKitUploader(srv.Client(), ImageKitConfig{UploadURL: srv.URL})
		_, err := uploader.Upload(ctx, []byte("x"), "")
		require.NoError(t, err)
		assert.Equal(t, "event-photo.jpg", gotFileName)
	})

	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message": "invalid key"}`))
		}))
		defer srv.Close()

		uploader := NewImageKitUploader(srv.Client(), ImageKitConfig{UploadURL: srv.URL})
		_, err := uploader.Upload(ctx, []byte("x"), "banner.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "invalid key")
	})

	t.Run("missing url in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		uploader := NewImageKitUploader(srv.Client(), ImageKitConfig{UploadURL: srv.URL})
		_, err := uploader.Upload(ctx, []byte("x"), "banner.png")
		require.Error(t, err)
	})
}
