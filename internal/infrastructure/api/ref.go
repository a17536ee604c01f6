package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref campo de referencia que el backend puede enviar como id plano
// ("pat-1"), como número o como el objeto embebido ({"id"|"_id": ...}).
type Ref[T any] struct {
	ID    string
	Value *T
}

// UnmarshalJSON acepta las tres formas; null deja la referencia vacía.
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &r.ID)
	case '{':
		var obj struct {
			ID      json.RawMessage `json:"id"`
			MongoID json.RawMessage `json:"_id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		r.ID = scalarString(obj.ID)
		if r.ID == "" {
			r.ID = scalarString(obj.MongoID)
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		r.Value = &v
		return nil
	default:
		if b[0] == '-' || (b[0] >= '0' && b[0] <= '9') {
			r.ID = string(b)
			return nil
		}
		return fmt.Errorf("referencia inválida: %s", b)
	}
}

// scalarString lee un id que puede venir como string o número.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
