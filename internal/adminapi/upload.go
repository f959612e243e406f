package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload отправляет файл multipart-формой: поле file и, если есть, поле data с JSON.
func Upload[T any](ctx context.Context, c *Client, path, fileName string, file io.Reader, data any) (*T, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации поля data: %w", err)
		}
		if err := writer.WriteField("data", string(payload)); err != nil {
			return nil, err
		}
	}

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания части формы: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("ошибка копирования файла: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, http.MethodPost, path, nil, body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return decode[T](raw, path)
}
