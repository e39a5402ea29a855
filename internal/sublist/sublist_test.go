package sublist

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activity struct {
	Activity string `json:"activity"`
	Medium   string `json:"activityMedium"`
}

var errIncomplete = errors.New("incomplete")

func checkActivity(a activity) error {
	if a.Activity == "" || a.Medium == "" {
		return errIncomplete
	}
	return nil
}

func TestAddRejectsInvalidValue(t *testing.T) {
	l := New(checkActivity)
	_, err := l.Add(activity{Activity: "called"})
	assert.ErrorIs(t, err, errIncomplete)
	assert.Equal(t, 0, l.Len())

	key, err := l.Add(activity{Activity: "called", Medium: "call"})
	require.NoError(t, err)
	assert.NotEmpty(t, key)
	assert.Equal(t, 1, l.Len())
}

func TestDuplicatesAllowed(t *testing.T) {
	l := New(checkActivity)
	a := activity{Activity: "x", Medium: "email"}
	k1, err := l.Add(a)
	require.NoError(t, err)
	k2, err := l.Add(a)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, []activity{a, a}, l.Values())
}

func TestRemoveByKeyIsStable(t *testing.T) {
	l := New(checkActivity)
	k1, _ := l.Add(activity{"one", "call"})
	k2, _ := l.Add(activity{"two", "call"})
	k3, _ := l.Add(activity{"three", "call"})

	snapshot := l.Items()
	assert.True(t, l.Remove(k1))
	assert.False(t, l.Remove(k1))

	// Keys still address the same values after the list shifted.
	v, ok := l.Get(k3)
	require.True(t, ok)
	assert.Equal(t, "three", v.Activity)
	assert.True(t, l.Remove(k2))
	assert.Equal(t, []activity{{"three", "call"}}, l.Values())

	assert.Len(t, snapshot, 3, "earlier copies are not affected")
}

func TestUpdate(t *testing.T) {
	l := New(checkActivity)
	k, _ := l.Add(activity{"one", "call"})

	require.NoError(t, l.Update(k, func(a *activity) { a.Medium = "meeting" }))
	v, _ := l.Get(k)
	assert.Equal(t, "meeting", v.Medium)

	err := l.Update(k, func(a *activity) { a.Activity = "" })
	assert.ErrorIs(t, err, errIncomplete)
	v, _ = l.Get(k)
	assert.Equal(t, "one", v.Activity, "rejected edit leaves the value unchanged")

	assert.Error(t, l.Update("missing", func(*activity) {}))
}

func TestJSON(t *testing.T) {
	l := New(checkActivity)
	_, _ = l.Add(activity{"one", "call"})
	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"activity":"one","activityMedium":"call"}]`, string(data))

	empty, err := json.Marshal(New(checkActivity))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))

	loaded := New(checkActivity)
	require.NoError(t, json.Unmarshal([]byte(`[{"activity":"a","activityMedium":"email"},{"activity":"b","activityMedium":"call"}]`), loaded))
	items := loaded.Items()
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].Key, items[1].Key)
	assert.Equal(t, "b", items[1].Value.Activity)
}

func TestOfKeysEveryValue(t *testing.T) {
	l := Of(checkActivity, activity{"a", "call"}, activity{})
	assert.Equal(t, 2, l.Len())
}
