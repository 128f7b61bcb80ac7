package metra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope_MarkupNeverReachesJSONParser(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"<html><body>502 Bad Gateway</body></html>",
		"  \n\t<!DOCTYPE html><html></html>",
	}
	for _, body := range bodies {
		_, err := parseEnvelope([]byte(body))
		require.ErrorIs(t, err, ErrServerMisconfigured)
		assert.NotErrorIs(t, err, ErrEnvelopeMalformed)
	}
}

func TestParseEnvelope_SuccessFalseCarriesMessage(t *testing.T) {
	t.Parallel()

	_, err := parseEnvelope([]byte(`{"success":false,"message":"nom allaqachon band"}`))
	require.ErrorIs(t, err, ErrApplicationFailure)
	assert.Contains(t, err.Error(), "nom allaqachon band")
}

func TestParseEnvelope_Malformed(t *testing.T) {
	t.Parallel()

	_, err := parseEnvelope([]byte(`{"success": tru`))
	require.ErrorIs(t, err, ErrEnvelopeMalformed)
}

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	body := []byte(`{"success":true,"resoult":{"id":7,"name":"Chilonzor","type":"branch"}}`)
	branch, err := decodeObject[Branch](body)
	require.NoError(t, err)
	assert.Equal(t, 7, branch.ID)
	assert.Equal(t, "Chilonzor", branch.Name)

	_, err = decodeObject[Branch]([]byte(`{"success":true}`))
	require.ErrorIs(t, err, ErrEnvelopeMalformed)
}

func TestDecodeList_PlainArray(t *testing.T) {
	t.Parallel()

	body := []byte(`{"resoult":[{"id":1,"name":"A","type":"main"},{"id":2,"name":"B","type":"store"}]}`)
	branches, err := decodeList[Branch](body)
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, "B", branches[1].Name)
}

func TestDecodeList_PaginatedShapeUnwrapsData(t *testing.T) {
	t.Parallel()

	// The shared disambiguator tries the paginated shape first, so a list
	// decoder pointed at a paginated payload still sees the data array.
	body := []byte(`{"resoult":{"data":[{"id":3,"name":"C","phone":"998900000000","created_at":"2024-01-01"}],` +
		`"meta":{"current_page":1,"last_page":1,"total":1,"per_page":10,"from":1,"to":1}}}`)
	clients, err := decodeList[Client](body)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, 3, clients[0].ID)
}

func TestDecodePage(t *testing.T) {
	t.Parallel()

	body := []byte(`{"resoult":{"data":[{"id":1,"name":"A","phone":"1","created_at":"x"},` +
		`{"id":2,"name":"B","phone":"2","created_at":"y"}],` +
		`"meta":{"current_page":2,"last_page":5,"total":47,"per_page":10,"from":11,"to":12}}}`)
	page, err := decodePage[Client](body)
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 5, page.LastPage)
	assert.Equal(t, 47, page.Total)
	assert.Equal(t, 10, page.PerPage)
	assert.Equal(t, page.To-page.From+1, len(page.Data))
}

func TestDecodePage_MissingMeta(t *testing.T) {
	t.Parallel()

	_, err := decodePage[Client]([]byte(`{"resoult":[{"id":1,"name":"A","phone":"1","created_at":"x"}]}`))
	require.ErrorIs(t, err, ErrEnvelopeMalformed)
}

func TestDecodeAck(t *testing.T) {
	t.Parallel()

	require.NoError(t, decodeAck([]byte(`{"success":true}`)))
	require.ErrorIs(t, decodeAck([]byte(`{"resoult":[]}`)), ErrEnvelopeMalformed)
	require.ErrorIs(t, decodeAck([]byte(`{"success":false}`)), ErrApplicationFailure)
}

func TestAmount_PermissiveDecoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		value float64
		valid bool
	}{
		{"number", `12000.5`, 12000.5, true},
		{"integer", `300`, 300, true},
		{"numeric string", `"2500.75"`, 2500.75, true},
		{"padded numeric string", `" 100 "`, 100, true},
		{"null", `null`, 0, false},
		{"non-numeric string", `"abc"`, 0, false},
		{"object", `{"x":1}`, 0, false},
		{"bool", `true`, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var amount Amount
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &amount))
			assert.Equal(t, tc.valid, amount.Valid)
			assert.Equal(t, tc.value, amount.Value)
		})
	}
}

func TestAmount_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Amount{Value: 99.5, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "99.5", string(out))

	out, err = json.Marshal(Amount{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
