package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, Default.Name(), c.Name())

	c, err = ByName("json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = ByName("go-json")
	require.NoError(t, err)
	assert.Equal(t, "go-json", c.Name())

	_, err = ByName("msgpack")
	assert.ErrorContains(t, err, "msgpack")

	assert.Equal(t, []string{"go-json", "json"}, Names())
}

func TestCodecs_AgreeOnPoints(t *testing.T) {
	in := [][]*float64{{ptr(0.5), ptr(-1)}, {nil, ptr(3)}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)
			assert.JSONEq(t, `[[0.5,-1],[null,3]]`, string(data))

			var out [][]*float64
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func ptr(v float64) *float64 { return &v }
