package metra

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The backend wraps every successful payload in an ad-hoc envelope keyed
// "resoult" (its own spelling, kept verbatim at the wire boundary). The
// payload under that key is one of three shapes: a paginated object
// (data + meta), a plain array, or a single object. resoultPayload is the
// one shared disambiguator: it tries the paginated shape first and falls
// back to handing the raw payload to the typed decoders.

type envelope struct {
	Success *bool           `json:"success"`
	Resoult json.RawMessage `json:"resoult"`
	Message string          `json:"message"`
}

type pageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// Paginated is the typed form of the backend's paginated listing envelope.
type Paginated[T any] struct {
	Data        []T
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
	From        int
	To          int
}

func looksLikeMarkup(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// parseEnvelope applies the checks shared by every endpoint: the markup
// sniff runs before any JSON parse attempt, and an explicit success:false
// is an application-level failure rather than a parse problem.
func parseEnvelope(body []byte) (*envelope, error) {
	if looksLikeMarkup(body) {
		return nil, ErrServerMisconfigured
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeMalformed, err)
	}
	if env.Success != nil && !*env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrApplicationFailure, env.Message)
		}
		return nil, ErrApplicationFailure
	}
	return &env, nil
}

type paginatedResoult struct {
	Data json.RawMessage `json:"data"`
	Meta *pageMeta       `json:"meta"`
}

// resoultPayload returns the array-or-object payload plus pagination meta
// when the paginated shape is present.
func resoultPayload(env *envelope) (json.RawMessage, *pageMeta) {
	raw := bytes.TrimSpace(env.Resoult)
	if len(raw) > 0 && raw[0] == '{' {
		var page paginatedResoult
		if err := json.Unmarshal(raw, &page); err == nil && page.Meta != nil && page.Data != nil {
			return page.Data, page.Meta
		}
	}
	return env.Resoult, nil
}

func decodeObject[T any](body []byte) (T, error) {
	var out T
	env, err := parseEnvelope(body)
	if err != nil {
		return out, err
	}
	raw, _ := resoultPayload(env)
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, fmt.Errorf("%w: missing resoult", ErrEnvelopeMalformed)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrEnvelopeMalformed, err)
	}
	return out, nil
}

func decodeList[T any](body []byte) ([]T, error) {
	env, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}
	raw, _ := resoultPayload(env)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: missing resoult", ErrEnvelopeMalformed)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeMalformed, err)
	}
	return out, nil
}

func decodePage[T any](body []byte) (*Paginated[T], error) {
	env, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}
	raw, meta := resoultPayload(env)
	if meta == nil {
		return nil, fmt.Errorf("%w: missing pagination meta", ErrEnvelopeMalformed)
	}
	var data []T
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeMalformed, err)
	}
	return &Paginated[T]{
		Data:        data,
		CurrentPage: meta.CurrentPage,
		LastPage:    meta.LastPage,
		PerPage:     meta.PerPage,
		Total:       meta.Total,
		From:        meta.From,
		To:          meta.To,
	}, nil
}

// decodeAck handles bare {success, message?} bodies.
func decodeAck(body []byte) error {
	env, err := parseEnvelope(body)
	if err != nil {
		return err
	}
	if env.Success == nil {
		return fmt.Errorf("%w: missing success flag", ErrEnvelopeMalformed)
	}
	return nil
}

// Amount is a decimal field the backend serializes inconsistently: JSON
// number, numeric string, or null. Any other shape decodes as absent
// rather than failing the whole payload.
type Amount struct {
	Value float64
	Valid bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount{}
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		a.Value, a.Valid = f, true
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil
	}
	a.Value, a.Valid = f, true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}
