package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsUnmarshalExact(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"58.90", 5890},
		{"18.90", 1890},
		{"0.01", 1},
		{"89.9", 8990},
		{"42", 4200},
		{"-1.50", -150},
		{"null", 0},
	}
	for _, tc := range cases {
		var got Cents
		err := json.Unmarshal([]byte(tc.in), &got)
		require.NoError(t, err, "input %s", tc.in)
		assert.Equal(t, tc.want, got, "input %s", tc.in)
	}
}

func TestCentsUnmarshalRejectsMalformed(t *testing.T) {
	for _, in := range []string{"58.999", "5.89e1", `"abc"`, "1.2.3"} {
		var got Cents
		assert.Error(t, json.Unmarshal([]byte(in), &got), "input %s", in)
	}
}

func TestCentsMarshal(t *testing.T) {
	data, err := json.Marshal(Cents(5890))
	require.NoError(t, err)
	assert.Equal(t, "58.90", string(data))

	data, err = json.Marshal(Cents(-150))
	require.NoError(t, err)
	assert.Equal(t, "-1.50", string(data))
}

func TestCentsRoundTrip(t *testing.T) {
	item := MenuItem{ID: "1", Name: "Risotto de Camarão", Price: 5890}
	data, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded MenuItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Cents(5890), decoded.Price)
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "R$ 195,60", Cents(19560).String())
	assert.Equal(t, "R$ 0,05", Cents(5).String())
	assert.Equal(t, "-R$ 1,50", Cents(-150).String())
}

func TestCentsFromFloat(t *testing.T) {
	assert.Equal(t, Cents(5890), CentsFromFloat(58.90))
	assert.Equal(t, Cents(1890), CentsFromFloat(18.90))
	assert.InDelta(t, 58.90, Cents(5890).Float(), 0.0001)
}
