package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Name Optional[string] `json:"name"`
		City Optional[int64]  `json:"city"`
	}

	tests := []struct {
		name      string
		body      string
		wantName  FieldState
		wantCity  FieldState
		wantValue string
	}{
		{name: "absent", body: `{}`, wantName: Absent, wantCity: Absent},
		{name: "explicit null", body: `{"name":null,"city":null}`, wantName: Null, wantCity: Null},
		{name: "present", body: `{"name":"Concert","city":3}`, wantName: Present, wantCity: Present, wantValue: "Concert"},
		{name: "present empty string", body: `{"name":""}`, wantName: Present, wantCity: Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantName, p.Name.State)
			assert.Equal(t, tt.wantCity, p.City.State)
			assert.Equal(t, tt.wantValue, p.Name.Val)
		})
	}
}

func TestOptional_UnmarshalJSON_wrongType(t *testing.T) {
	var p struct {
		City Optional[int64] `json:"city"`
	}
	require.Error(t, json.Unmarshal([]byte(`{"city":"paris"}`), &p))
}

func TestOptional_Value(t *testing.T) {
	assert.Equal(t, Value{}, Optional[string]{}.Value())
	assert.Equal(t, NullValue(), None[string]().Value())
	assert.Equal(t, Set("x"), Some("x").Value())
}

func TestOptional_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some("x"), B: None[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(b))
}

func TestCityInput_Record(t *testing.T) {
	rec := CityInput{Name: Some("Paris")}.Record()
	assert.Equal(t, int64(0), rec.ID)
	assert.Equal(t, Set("Paris"), rec.Fields["name"])

	rec = CityInput{ID: 7}.Record()
	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, Absent, rec.Fields["name"].State)
}
