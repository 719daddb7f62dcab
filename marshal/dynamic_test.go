package marshal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gahr/casstcl/types"
)

func TestToValueNull(t *testing.T) {
	v := ToValue(nil)
	assert.True(t, v.IsNull())

	var p *string
	v = ToValue(p)
	assert.True(t, v.IsNull())
}

func TestToValueScalars(t *testing.T) {
	assert.Equal(t, "hi", ToValue("hi").Text())
	assert.Equal(t, "", ToValue("").Text())
	assert.False(t, ToValue("").IsNull())

	assert.Equal(t, "1", ToValue(true).Text())
	assert.Equal(t, "0", ToValue(false).Text())

	assert.Equal(t, "-42", ToValue(int64(-42)).Text())
	assert.Equal(t, "7", ToValue(int8(7)).Text())
	assert.Equal(t, "2.5", ToValue(2.5).Text())
	assert.Equal(t, "raw", ToValue([]byte("raw")).Text())
}

func TestToValueTimestamp(t *testing.T) {
	ts := time.UnixMilli(1700000000000).UTC()
	assert.Equal(t, "1700000000000", ToValue(ts).Text())
}

func TestToValueSlice(t *testing.T) {
	v := ToValue([]string{"a", "b"})
	require.Equal(t, types.KindList, v.Kind())
	require.Len(t, v.Elems(), 2)
	assert.Equal(t, "a", v.Elems()[0].Text())
	assert.Equal(t, "b", v.Elems()[1].Text())
}

func TestToValueMap(t *testing.T) {
	v := ToValue(map[string]int64{"b": 2, "a": 1})
	require.Equal(t, types.KindList, v.Kind())
	require.Len(t, v.Elems(), 4)

	// Flat alternating pairs, sorted by key.
	elems := v.Elems()
	assert.Equal(t, "a", elems[0].Text())
	assert.Equal(t, "1", elems[1].Text())
	assert.Equal(t, "b", elems[2].Text())
	assert.Equal(t, "2", elems[3].Text())
}

func TestToValuePointer(t *testing.T) {
	s := "deref"
	v := ToValue(&s)
	assert.Equal(t, "deref", v.Text())
}

func TestBindRoundTrip(t *testing.T) {
	// A value bound and rendered back keeps its meaning.
	typ := types.Scalar(types.TypeBigInt)
	native, err := Bind("c", typ, types.Text("12345"))
	require.NoError(t, err)
	assert.Equal(t, "12345", ToValue(native).Text())

	typ = types.ListOf(types.Scalar(types.TypeText))
	native, err = Bind("c", typ, types.TextList("x", "y"))
	require.NoError(t, err)
	back := ToValue(native)
	assert.True(t, back.Equal(types.TextList("x", "y")))
}
