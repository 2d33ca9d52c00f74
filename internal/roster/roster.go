package roster

import (
	"context"
	"errors"
	"fmt"
)

var ErrEmptyRoster = errors.New("roster has no doctors")

// Roster is an immutable snapshot of the doctors. It is safe for concurrent use.
type Roster struct {
	doctors []Doctor
}

// New snapshots doctors. Later changes to the argument do not leak in.
func New(doctors []Doctor) (*Roster, error) {
	if len(doctors) == 0 {
		return nil, ErrEmptyRoster
	}
	return &Roster{doctors: cloneAll(doctors)}, nil
}

// Default is the built-in roster.
func Default() *Roster {
	return &Roster{doctors: DefaultDoctors()}
}

// Doctors returns a copy in roster order.
func (r *Roster) Doctors() []Doctor {
	if r == nil {
		return nil
	}
	return cloneAll(r.doctors)
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.doctors)
}

// Each calls fn for every doctor in order without copying the roster.
// fn must not retain or modify the Availability slice.
func (r *Roster) Each(fn func(Doctor) bool) {
	if r == nil {
		return
	}
	for _, d := range r.doctors {
		if !fn(d) {
			return
		}
	}
}

// Source loads the doctor list. Implementations are called once at startup.
type Source interface {
	Load(ctx context.Context) ([]Doctor, error)
}

// Load reads src and snapshots the result.
func Load(ctx context.Context, src Source) (*Roster, error) {
	doctors, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return New(doctors)
}

// StaticSource serves the built-in roster.
type StaticSource struct{}

func (StaticSource) Load(context.Context) ([]Doctor, error) {
	return DefaultDoctors(), nil
}
