package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ekklesia/church-directory/internal/domain"
)

// DecodeJSON decodes a JSON request body into dst. Exactly one JSON value is
// accepted; trailing data is rejected.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}

	if err := dec.Decode(&struct{}{}); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.ErrInvalidJSON(err)
	}
	return domain.ErrInvalidJSON(errors.New("multiple JSON values"))
}
