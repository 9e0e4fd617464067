package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["photo"][0]
}

func TestSaveAndDeleteFile(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := ls.SaveFileWithPath(uploadedFile(t, "photo.jpg", []byte("jpeg-bytes")), "academy-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"+BucketName+"/academy-1/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"), "original extension is kept")

	objectPath := ls.PathFromURL(url)
	physical := filepath.Join(base, BucketName, filepath.FromSlash(objectPath))
	content, err := os.ReadFile(physical)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), content)

	require.NoError(t, ls.DeleteFile(objectPath))
	_, err = os.Stat(physical)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteFile_MissingIsNoError(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.NoError(t, ls.DeleteFile("academy-x/gone.jpg"))
	assert.NoError(t, ls.DeleteFile(""))
}

func TestDeleteFile_RejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.Error(t, ls.DeleteFile("../../etc/passwd"))
}

func TestPathFromURL(t *testing.T) {
	ls := &LocalStorage{}

	assert.Equal(t, "abc/def.jpg", ls.PathFromURL("http://host:8080/uploads/academy-photos/abc/def.jpg"))
	assert.Equal(t, "abc/def.jpg", ls.PathFromURL("http://host/uploads/academy-photos/abc/def.jpg/"))
	assert.Equal(t, "", ls.PathFromURL("single"))
}
