package plex

import (
	"bytes"
	"encoding/xml"

	"github.com/go-playground/validator/v10"
)

// validate enforces the `validate:"required"` tags on wire records
var validate = validator.New()

// legalEntities are the only entity references left untouched by RepairEscapes
var legalEntities = [][]byte{
	[]byte("&amp;"),
	[]byte("&lt;"),
	[]byte("&gt;"),
	[]byte("&quot;"),
	[]byte("&apos;"),
}

// RepairEscapes rewrites every '&' that does not start one of the five
// predefined XML entities to "&amp;". Plex emits bare ampersands in titles
// and summaries, which encoding/xml rejects. The repair is a single forward
// pass and is idempotent.
func RepairEscapes(raw []byte) []byte {
	first := bytes.IndexByte(raw, '&')
	if first < 0 {
		return raw
	}

	out := make([]byte, 0, len(raw)+32)
	out = append(out, raw[:first]...)
	for i := first; i < len(raw); i++ {
		c := raw[i]
		if c == '&' && !startsLegalEntity(raw[i:]) {
			out = append(out, "&amp;"...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func startsLegalEntity(b []byte) bool {
	for _, entity := range legalEntities {
		if bytes.HasPrefix(b, entity) {
			return true
		}
	}
	return false
}

// decode repairs escaping, unmarshals raw into T and checks required fields.
// resource names the request for error context.
func decode[T any](resource string, raw []byte) (T, error) {
	var v T
	if err := xml.Unmarshal(RepairEscapes(raw), &v); err != nil {
		return v, &DecodeError{Resource: resource, Err: err}
	}
	if err := validate.Struct(v); err != nil {
		return v, &DecodeError{Resource: resource, Err: err}
	}
	return v, nil
}

// itemContainer is a decoded MediaContainer holding one kind of record
type itemContainer[C any] interface {
	items() []C
	totalSize() int
}

// decodeItems decodes a MediaContainer of type T and returns its records
// along with the server-reported total (0 when absent).
func decodeItems[T itemContainer[C], C any](resource string, raw []byte) ([]C, int, error) {
	container, err := decode[T](resource, raw)
	if err != nil {
		return nil, 0, err
	}
	return container.items(), container.totalSize(), nil
}
