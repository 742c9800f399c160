package spacia

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"spacia-portal/internal/models"
	"spacia-portal/pkg/logger"
)

// UploadImage sends one file as multipart form {file, propertyId}.
func (c *Client) UploadImage(ctx context.Context, propertyID string, file models.PendingFile) error {
	const operation = "upload_image"

	if file.Open == nil {
		return fmt.Errorf("file %s has no content", file.Name)
	}
	content, err := file.Open()
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to open file for upload: name=%s, error=%v", file.Name, err)
		return fmt.Errorf("failed to open %s: %v", file.Name, err)
	}
	defer content.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create form file: %v", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read %s: %v", file.Name, err)
	}
	if err := writer.WriteField("propertyId", propertyID); err != nil {
		return fmt.Errorf("failed to write propertyId field: %v", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image", &buf)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if _, err := c.do(operation, req); err != nil {
		return err
	}
	logger.GlobalLogger.Printf("Image uploaded: property_id=%s, file=%s, size=%d", propertyID, file.Name, file.Size)
	return nil
}
