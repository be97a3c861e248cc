package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"lms/config"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorePdfFile stores a course PDF attachment and returns a retrievable
// URL. Files go to Supabase Storage when it is configured, otherwise to
// local disk served from /uploads.
func StorePdfFile(fileHeader *multipart.FileHeader) (string, error) {
	if config.AppConfig.SupabaseURL != "" && config.AppConfig.SupabaseKey != "" {
		return uploadToSupabase(fileHeader)
	}

	filePath, err := SaveUploadedFile(fileHeader, config.AppConfig.UploadDir)
	if err != nil {
		return "", err
	}
	return GetFileURL(filePath), nil
}

// uploadToSupabase uploads the file to Supabase Storage under
// courses/<uuid>.<ext> and returns the public URL.
func uploadToSupabase(fileHeader *multipart.FileHeader) (string, error) {
	supabaseURL := config.AppConfig.SupabaseURL
	bucket := config.AppConfig.SupabaseBucket

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", config.AppConfig.SupabaseKey, nil)

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectPath := fmt.Sprintf("courses/%s%s", uuid.NewString(), ext)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := storageClient.UploadFile(bucket, objectPath, &buf, options); err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", supabaseURL, bucket, objectPath)
	return publicURL, nil
}
