// Command goboy runs a test ROM without a display, printing
// everything it sends over the serial port. It exits once the
// output reports "Passed" or "Failed".
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	steps := flag.Int("steps", 0, "Stop after this many instructions, 0 for no limit")
	timeout := flag.Duration("timeout", 2*time.Minute, "Stop after this much wall clock time")
	trace := flag.Bool("trace", false, "Log every instruction executed")
	flag.Parse()

	logger := log.New()
	if *trace {
		logger = log.NewDebug()
	}
	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}

	out := newResultWriter(os.Stdout)
	opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.SerialDebugger(out)}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	var tracer log.Logger
	if *trace {
		tracer = logger
	}
	res, err := run(ctx, gb, out, *steps, tracer)
	fmt.Println()
	if err != nil {
		logger.Errorf("%v", err)
	}
	logger.Infof("%s after %d cycles", res, gb.Cycles())
	os.Exit(res.exitCode())
}
