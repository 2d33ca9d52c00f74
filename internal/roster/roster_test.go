package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoster(t *testing.T) {
	r := Default()
	require.Equal(t, 4, r.Len())

	doctors := r.Doctors()
	assert.Equal(t, "Dr. Sarah Johnson", doctors[0].Name)
	assert.Equal(t, "Cardiologist", doctors[1].Specialty)
	assert.Equal(t, []string{"9:30 AM", "11:30 AM", "2:30 PM", "4:30 PM"}, doctors[2].Availability)
	assert.Equal(t, 4.9, doctors[3].Rating)
}

func TestRosterIsImmutable(t *testing.T) {
	r := Default()

	doctors := r.Doctors()
	doctors[0].Name = "Dr. Nobody"
	doctors[0].Availability[0] = "midnight"

	fresh := r.Doctors()
	assert.Equal(t, "Dr. Sarah Johnson", fresh[0].Name)
	assert.Equal(t, "9:00 AM", fresh[0].Availability[0])

	again := DefaultDoctors()
	assert.Equal(t, "9:00 AM", again[0].Availability[0])
}

func TestNewSnapshotsInput(t *testing.T) {
	in := []Doctor{{ID: "x", Name: "Dr. X", Specialty: "Surgeon", Availability: []string{"1:00 PM"}}}
	r, err := New(in)
	require.NoError(t, err)

	in[0].Availability[0] = "changed"
	assert.Equal(t, "1:00 PM", r.Doctors()[0].Availability[0])
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, ErrEmptyRoster))
}

func TestEachStopsEarly(t *testing.T) {
	var names []string
	Default().Each(func(d Doctor) bool {
		names = append(names, d.Name)
		return len(names) < 2
	})
	assert.Equal(t, []string{"Dr. Sarah Johnson", "Dr. Michael Chen"}, names)
}

type failingSource struct{ err error }

func (f failingSource) Load(context.Context) ([]Doctor, error) { return nil, f.err }

func TestLoad(t *testing.T) {
	r, err := Load(context.Background(), StaticSource{})
	require.NoError(t, err)
	assert.Equal(t, Default().Doctors(), r.Doctors())

	boom := errors.New("boom")
	_, err = Load(context.Background(), failingSource{err: boom})
	assert.True(t, errors.Is(err, boom))
}

func TestNilRosterIsEmpty(t *testing.T) {
	var r *Roster
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Doctors())
	r.Each(func(Doctor) bool {
		t.Fatal("nil roster should not iterate")
		return true
	})
}
