package task

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	base := time.Date(2025, time.March, 4, 9, 30, 0, 0, time.UTC)
	return []Task{
		{ID: 1, Text: "Buy milk", Completed: true, CreatedAt: base},
		{ID: 2, Text: "Walk dog", CreatedAt: base.Add(time.Hour)},
		{ID: 7, Text: "Call mum", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestEncodeDecode_PreservesSequence(t *testing.T) {
	in := sampleTasks()

	data, err := Encode(in)
	require.NoError(t, err)

	out, warnings, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("decoded tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_UsesPersistedFieldNames(t *testing.T) {
	data, err := Encode(sampleTasks()[:1])
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"id":1,"text":"Buy milk","completed":true,"createdAt":"2025-03-04T09:30:00Z"}]`,
		string(data))
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecode_EmptyInputs(t *testing.T) {
	for _, in := range []string{"", "   ", "null", "[]"} {
		tasks, warnings, err := Decode([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, tasks, "input %q", in)
		assert.Empty(t, warnings, "input %q", in)
	}
}

func TestDecode_MalformedBlobFails(t *testing.T) {
	for _, in := range []string{"{", `{"id":1}`, `"tasks"`, `[1,2]`} {
		_, _, err := Decode([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestDecode_SkipsUnusableRecords(t *testing.T) {
	blob := `[
		{"id":1,"text":"  keep me  ","completed":false,"createdAt":"2025-03-04T09:30:00Z"},
		{"id":2,"text":"   ","completed":false},
		{"id":0,"text":"no id"},
		{"id":1,"text":"duplicate"},
		{"id":3,"text":"also kept","completed":true}
	]`

	tasks, warnings, err := Decode([]byte(blob))
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, "keep me", tasks[0].Text)
	assert.Equal(t, 3, tasks[1].ID)
	assert.True(t, tasks[1].Completed)

	require.Len(t, warnings, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{warnings[0].Index, warnings[1].Index, warnings[2].Index})
}

func TestDecode_LegacyTimestampField(t *testing.T) {
	blob := `[{"id":1700000000000,"text":"old","completed":false,"timestamp":"2023-11-14T22:13:20Z"}]`

	tasks, _, err := Decode([]byte(blob))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 1700000000000, tasks[0].ID)
	assert.True(t, tasks[0].CreatedAt.Equal(time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)))
}

func TestNormalizeText(t *testing.T) {
	got, err := NormalizeText("  Buy milk \n")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got)

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := NormalizeText(in)
		assert.True(t, errors.Is(err, ErrEmptyText), "input %q", in)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("3, #1,3,,2")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids)

	_, err = ParseIDs("1,x")
	assert.Error(t, err)

	_, err = ParseIDs(" , ")
	assert.Error(t, err)

	_, err = ParseID("-4")
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	tasks := sampleTasks()
	assert.Equal(t, 1, CountCompleted(tasks))
	assert.Equal(t, 7, MaxID(tasks))
	assert.Equal(t, 0, MaxID(nil))
	assert.Equal(t, 2, IndexOf(tasks, 7))
	assert.Equal(t, -1, IndexOf(tasks, 99))

	toggled := tasks[1].WithCompleted(true)
	assert.True(t, toggled.Completed)
	assert.False(t, tasks[1].Completed, "original value must be untouched")
}
