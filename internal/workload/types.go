package workload

import (
	"fmt"
	"io"
	"log"

	"github.com/san-kum/dynvec/internal/vector"
)

type OpKind string

const (
	OpPush    OpKind = "push"
	OpEmplace OpKind = "emplace"
	OpPop     OpKind = "pop"
	OpClear   OpKind = "clear"
	OpReserve OpKind = "reserve"
	OpResize  OpKind = "resize"
	OpAssign  OpKind = "assign"
	OpSwap    OpKind = "swap"
	OpAt      OpKind = "at"
	OpSet     OpKind = "set"
)

// Op is one step of a workload. Which fields matter depends on Kind:
// Value for push/emplace/assign/set, Count for reserve/resize/assign,
// Index for at/set/swap and Other for swap.
type Op struct {
	Kind  OpKind `json:"kind"`
	Index int    `json:"index,omitempty"`
	Other int    `json:"other,omitempty"`
	Count int    `json:"count,omitempty"`
	Value int    `json:"value,omitempty"`
}

func (o Op) String() string {
	switch o.Kind {
	case OpPush, OpEmplace:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Value)
	case OpReserve, OpResize:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Count)
	case OpAssign:
		return fmt.Sprintf("%s(%d, %d)", o.Kind, o.Count, o.Value)
	case OpSwap:
		return fmt.Sprintf("%s(%d, %d)", o.Kind, o.Index, o.Other)
	case OpAt:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Index)
	case OpSet:
		return fmt.Sprintf("%s(%d, %d)", o.Kind, o.Index, o.Value)
	default:
		return string(o.Kind)
	}
}

// Snapshot is the vector state after a step.
type Snapshot struct {
	Step  int
	Op    Op
	Len   int
	Cap   int
	Stats vector.Stats
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

type Config struct {
	InitialCapacity int
	GrowthFactor    float64
	RecordTrace     bool
	Logger          *log.Logger
}

func DefaultConfig() Config {
	return Config{
		InitialCapacity: vector.DefaultCapacity,
		GrowthFactor:    vector.DefaultGrowth,
		RecordTrace:     true,
	}
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

type Result struct {
	Ops        []Op
	Sizes      []int
	Capacities []int
	Metrics    map[string]float64
	Stats      vector.Stats
	Final      []int
	StepsTaken int
	Errors     []error
}
