package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/audio"
	"github.com/thelolagemann/dmgcore/pkg/config"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
	"golang.org/x/term"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	configFile := flag.String("config", config.DefaultPath, "The configuration file to load")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at, 0 for unthrottled")
	debug := flag.Bool("debug", false, "Enable debug logging")
	noAudio := flag.Bool("no-audio", false, "Disable audio output")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.New().Fatal(err)
	}
	// flags given on the command line override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "boot":
			cfg.BootROM = *bootROM
		case "speed":
			cfg.Speed = *speed
		case "debug":
			cfg.Debug = *debug
		case "no-audio":
			cfg.Audio.Enabled = !*noAudio
		}
	})

	logger := log.New()
	if cfg.Debug {
		logger = log.NewDebug()
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}
	if *romFile == "" {
		logger.Fatal("no rom given, use -rom")
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}
	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		logger.Fatal(err)
	}
	saves, err := emulator.NewSaves(cfg.Saves.Dir, rom, header.Title, logger)
	if err != nil {
		logger.Fatal(err)
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithRAMDumper(saves),
	}
	if cfg.BootROM != "" {
		boot, err := utils.LoadFile(cfg.BootROM)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	var player audio.Player = audio.NewHeadless()
	if cfg.Audio.Enabled {
		p, err := audio.Open(cfg.Audio.SampleRate, audio.Silence())
		if err != nil {
			logger.Errorf("unable to open audio device %s", err)
		} else {
			player = p
		}
	}

	session := emulator.NewSession(gb,
		emulator.WithLogger(logger),
		emulator.WithPlayer(player),
		emulator.WithSaves(saves),
		emulator.WithSpeed(cfg.Speed),
		emulator.SkipIllegal(cfg.SkipIllegal),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Infof("input: press|release <a|b|select|start|up|down|left|right>, pause, resume, quit")
	}
	go readInput(os.Stdin, session, gb.Joypad, logger)

	if err := session.Run(ctx); err != nil {
		logger.Fatal(err)
	}
}
