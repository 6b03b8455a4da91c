package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxBodySize Тела запросов аркады маленькие, больше - явно мусор
const maxBodySize = 1 << 16

// Decode Читает JSON тело запроса в T. Пустое тело даёт нулевое значение T
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, nil
	}

	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()
	err := dec.Decode(&payload)
	if errors.Is(err, io.EOF) {
		return payload, nil
	}
	if err != nil {
		return payload, fmt.Errorf("invalid request body: %w", err)
	}
	return payload, nil
}
