package main

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// result is the outcome of a test ROM.
type result int

const (
	unfinished result = iota
	passed
	failed
)

func (r result) String() string {
	switch r {
	case passed:
		return "passed"
	case failed:
		return "failed"
	default:
		return "unfinished"
	}
}

func (r result) exitCode() int {
	switch r {
	case passed:
		return 0
	case failed:
		return 1
	default:
		return 3
	}
}

// resultWriter forwards serial output and watches it for the
// verdict printed by blargg style test ROMs.
type resultWriter struct {
	w io.Writer

	mu     sync.Mutex
	output []byte
	result result
}

func newResultWriter(w io.Writer) *resultWriter {
	return &resultWriter{w: w}
}

func (r *resultWriter) Write(p []byte) (int, error) {
	r.mu.Lock()
	r.output = append(r.output, p...)
	switch {
	case bytes.Contains(r.output, []byte("Failed")):
		r.result = failed
	case bytes.Contains(r.output, []byte("Passed")):
		r.result = passed
	}
	r.mu.Unlock()

	if r.w == nil {
		return len(p), nil
	}
	return r.w.Write(p)
}

func (r *resultWriter) Result() result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

func (r *resultWriter) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.output)
}

// run steps gb until out holds a verdict, the step limit is reached
// or ctx is done. A non nil tracer logs every instruction.
func run(ctx context.Context, gb *gameboy.GameBoy, out *resultWriter, steps int, tracer log.Logger) (result, error) {
	for i := 0; steps == 0 || i < steps; i++ {
		// checking ctx on every step is measurably slower
		if i&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return out.Result(), err
			}
		}
		if tracer != nil {
			traceStep(gb, tracer)
		}

		if _, err := gb.Step(); err != nil {
			return out.Result(), err
		}
		if res := out.Result(); res != unfinished {
			return res, nil
		}
	}
	return out.Result(), nil
}

func traceStep(gb *gameboy.GameBoy, tracer log.Logger) {
	c := gb.CPU
	opcode := gb.MMU.Read(c.PC)
	prefixed := opcode == 0xCB
	if prefixed {
		opcode = gb.MMU.Read(c.PC + 1)
	}
	name := "???"
	if instr, err := cpu.Decode(opcode, prefixed); err == nil {
		name = instr.String()
	}
	tracer.Debugf("%04X %-14s A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X",
		c.PC, name, c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP)
}
