package eqtypes

import (
	"iter"
	"time"
)

type Status int

const (
	StatusActive Status = iota
	StatusInactive
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityHigh
)

type Duration time.Duration

type Entity struct {
	ID int64
}

type User struct {
	Entity
	Name    string
	Status  Status
	Created time.Time
}

type Admin struct {
	User
	Level int
}

type Guest struct {
	Entity
}

type URL struct {
	Raw string
}

func (u URL) String() string { return u.Raw }

type Cents int64

type Amount struct {
	Value Cents
}

func (a Amount) Equal(c Cents) bool { return a.Value == c }

type Tree []Tree

type Forest []Forest

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type Registry struct {
	users []User
}

func (r *Registry) All() iter.Seq[User] {
	return func(yield func(User) bool) {
		for _, u := range r.users {
			if !yield(u) {
				return
			}
		}
	}
}

type Named interface {
	DisplayName() string
}

func (u User) DisplayName() string { return u.Name }

type Number interface {
	~int | ~float64
}
