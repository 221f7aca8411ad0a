package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"protrack/config"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// StorageClient talks to the Supabase-style object storage HTTP API.
// Buckets hold profile pictures, course materials and certificate PDFs.
type StorageClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

// StorageObject is one entry returned by List
type StorageObject struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	UpdatedAt string `json:"updated_at"`
}

// NewStorageClient builds a client from the loaded configuration
func NewStorageClient() *StorageClient {
	return &StorageClient{
		client:  resty.New().SetTimeout(30 * time.Second),
		baseURL: config.AppConfig.SupabaseURL,
		apiKey:  config.AppConfig.SupabaseKey,
	}
}

func (s *StorageClient) configured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

// Upload stores raw bytes under bucket/path and returns the public URL
func (s *StorageClient) Upload(data []byte, contentType, bucket, path string) (string, error) {
	if !s.configured() {
		return "", fmt.Errorf("storage credentials not configured")
	}

	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("apikey", s.apiKey).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, path))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return "", fmt.Errorf("storage upload failed: %d %s", resp.StatusCode(), resp.String())
	}

	return s.PublicURL(bucket, path), nil
}

// UploadMultipart reads a form file and stores it under bucket/folder
// with a collision-free name, returning the public URL
func (s *StorageClient) UploadMultipart(file *multipart.FileHeader, bucket, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), ext)

	return s.Upload(data, contentType, bucket, name)
}

// Delete removes bucket/path; missing objects are not an error
func (s *StorageClient) Delete(bucket, path string) error {
	if !s.configured() {
		return fmt.Errorf("storage credentials not configured")
	}

	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("apikey", s.apiKey).
		Delete(fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, path))
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 204 && resp.StatusCode() != 404 {
		return fmt.Errorf("storage delete failed: %d %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// List returns the objects under bucket/folder
func (s *StorageClient) List(bucket, folder string) ([]StorageObject, error) {
	if !s.configured() {
		return nil, fmt.Errorf("storage credentials not configured")
	}

	var objects []StorageObject
	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("apikey", s.apiKey).
		SetBody(map[string]string{"prefix": folder}).
		SetResult(&objects).
		Post(fmt.Sprintf("%s/storage/v1/object/list/%s", s.baseURL, bucket))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("storage list failed: %d %s", resp.StatusCode(), resp.String())
	}
	return objects, nil
}

// PublicURL builds the public URL for bucket/path
func (s *StorageClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}
