// Package validate — проверки полезной нагрузки сообщений.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidPayload — базовая (sentinel error) ошибка валидации payload.
var ErrInvalidPayload = errors.New("payload validation failed")

// JSONDocument — payload должен быть ровно одним JSON-значением без хвоста.
func JSONDocument(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrInvalidPayload, err)
	}
	// гарантируем отсутствие данных после документа
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return fmt.Errorf("%w: invalid json: trailing data", ErrInvalidPayload)
	}
	return nil
}
