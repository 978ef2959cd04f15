// Command lonecli is a thin REPL and batch-solve front end over the
// internal solver packages, grounded in original_source/lonecli/src/main.rs's
// print/solve/play/bench/rate subcommands and in a bufio.Scanner-driven
// command loop in the style of a UCI-protocol engine's main loop, swapped
// here for a flag.FlagSet-based subcommand dispatch since this CLI has no
// protocol to speak, only a handful of named operations.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/oasis-klondike/klondike-solver/internal/cache"
	"github.com/oasis-klondike/klondike-solver/internal/convert"
	"github.com/oasis-klondike/klondike-solver/internal/formatter"
	"github.com/oasis-klondike/klondike-solver/internal/move"
	"github.com/oasis-klondike/klondike-solver/internal/pruning"
	"github.com/oasis-klondike/klondike-solver/internal/shuffler"
	"github.com/oasis-klondike/klondike-solver/internal/solitaire"
	"github.com/oasis-klondike/klondike-solver/internal/solver"
	"github.com/oasis-klondike/klondike-solver/internal/standard"
	"github.com/oasis-klondike/klondike-solver/internal/tracking"
)

var strategies = map[string]shuffler.Strategy{
	"default": shuffler.Default,
	"legacy":  shuffler.Legacy,
}

func shuffle(name string, seed uint64) (shuffler.Deal, error) {
	s, ok := strategies[name]
	if !ok {
		return shuffler.Deal{}, fmt.Errorf("lonecli: unknown shuffle strategy %q", name)
	}
	return s(seed)
}

func installSignalTerminate(term *tracking.TerminateSignal) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		term.Terminate()
	}()
}

func cmdPrint(args []string) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	strategy := fs.String("strategy", "default", "shuffle strategy")
	seed := fs.Uint64("seed", 0, "shuffle seed")
	drawStep := fs.Uint("draw", 3, "draw step")
	fs.Parse(args)

	deal, err := shuffle(*strategy, *seed)
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	game, err := solitaire.New(deal, uint8(*drawStep))
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	fmt.Println(formatter.Solvitaire(standard.From(game)))
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	strategy := fs.String("strategy", "default", "shuffle strategy")
	seed := fs.Uint64("seed", 0, "shuffle seed")
	drawStep := fs.Uint("draw", 3, "draw step")
	fs.Parse(args)

	deal, err := shuffle(*strategy, *seed)
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	game, err := solitaire.New(deal, uint8(*drawStep))
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	fmt.Println(formatter.Solvitaire(standard.From(game)))

	term := &tracking.TerminateSignal{}
	installSignalTerminate(term)
	stats := &tracking.AtomicSearchStats{}

	start := time.Now()
	outcome := solver.Solve(game, pruning.FullPruner{}, stats, term)
	fmt.Printf("Run in %v\n", time.Since(start))
	fmt.Printf("Statistics\n%s\n", stats)

	switch outcome.Result {
	case solver.Solved:
		fmt.Printf("Solvable in %d moves\n", len(outcome.History))
		var sb strings.Builder
		for _, m := range outcome.History {
			fmt.Fprintf(&sb, "%s, ", m)
		}
		fmt.Println(sb.String())
		sms, err := convert.ConvertMoves(game, outcome.History)
		if err != nil {
			log.Printf("[lonecli] convert: %v", err)
			return
		}
		for _, sm := range sms {
			fmt.Printf("%s %s %s, ", sm.Card, sm.From, sm.To)
		}
		fmt.Println()
	case solver.Unsolvable:
		fmt.Println("Impossible")
	case solver.Terminated:
		fmt.Println("Terminated")
	case solver.Crashed:
		fmt.Println("Crashed")
	}
}

func cmdBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	strategy := fs.String("strategy", "default", "shuffle strategy")
	seed := fs.Uint64("seed", 0, "shuffle seed")
	drawStep := fs.Uint("draw", 3, "draw step")
	fs.Parse(args)

	rng := rand.New(rand.NewSource(int64(*seed)))
	totalMoves := 0
	start := time.Now()
	for i := uint64(0); i < 100; i++ {
		deal, err := shuffle(*strategy, *seed+i)
		if err != nil {
			log.Fatalf("[lonecli] %v", err)
		}
		game, err := solitaire.New(deal, uint8(*drawStep))
		if err != nil {
			log.Fatalf("[lonecli] %v", err)
		}
		for j := 0; j < 100; j++ {
			moves := game.GenMoves(true).ToSlice()
			if len(moves) == 0 {
				break
			}
			m := moves[rng.Intn(len(moves))]
			if _, err := game.DoMove(m); err != nil {
				log.Fatalf("[lonecli] bench: %v", err)
			}
			_ = game.Encode()
			totalMoves++
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%d %.0f op/s\n", totalMoves, float64(totalMoves)/elapsed.Seconds())
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	strategy := fs.String("strategy", "default", "shuffle strategy")
	seed := fs.Uint64("seed", 0, "shuffle seed")
	drawStep := fs.Uint("draw", 3, "draw step")
	fs.Parse(args)

	deal, err := shuffle(*strategy, *seed)
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	game, err := solitaire.New(deal, uint8(*drawStep))
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	fmt.Println(formatter.Solvitaire(standard.From(game)))

	type histEntry struct {
		m    move.Move
		undo solitaire.UndoInfo
	}
	var history []histEntry
	seen := make(map[solitaire.Encode]struct{})

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println(formatter.PlainText(standard.From(game)))
		enc := game.Encode()
		if _, ok := seen[enc]; ok {
			fmt.Println("Already existed state")
		}
		seen[enc] = struct{}{}

		moves := game.GenMoves(true).ToSlice()
		for i, m := range moves {
			fmt.Printf("%d.%s, ", i, m)
		}
		fmt.Println()
		fmt.Printf("Hash: %d\n", enc)
		fmt.Print("Move: ")

		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("Invalid move")
			continue
		}
		if id >= 0 && id < len(moves) {
			m := moves[id]
			undo, err := game.DoMove(m)
			if err != nil {
				fmt.Printf("Can't play: %v\n", err)
				continue
			}
			history = append(history, histEntry{m: m, undo: undo})
		} else if len(history) > 0 {
			last := history[len(history)-1]
			history = history[:len(history)-1]
			game.UndoMove(last.m, last.undo)
			fmt.Println("Undo!!")
		}
	}
}

func cmdRate(args []string) {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	strategy := fs.String("strategy", "default", "shuffle strategy")
	seed := fs.Uint64("seed", 0, "shuffle seed")
	drawStep := fs.Uint("draw", 3, "draw step")
	cacheDir := fs.String("cache", "", "badger cache directory; empty disables caching")
	fs.Parse(args)

	var ch *cache.Cache
	if *cacheDir != "" {
		c, err := cache.Open(*cacheDir)
		if err != nil {
			log.Fatalf("[lonecli] %v", err)
		}
		defer c.Close()
		ch = c
	}

	term := &tracking.TerminateSignal{}
	installSignalTerminate(term)

	var cntSolved, cntTerminated, cntTotal int
	start := time.Now()

	for step := uint64(0); ; step++ {
		s := *seed + step

		var outcome solver.Outcome
		if ch != nil {
			k := cache.Key(*strategy, s, int(*drawStep))
			if entry, ok, err := ch.Get(k); err == nil && ok {
				outcome = solver.Outcome{Result: entry.Result, History: entry.History}
			} else {
				outcome = solveOne(*strategy, s, uint8(*drawStep), term)
				if err := ch.Put(k, cache.Entry{Result: outcome.Result, History: outcome.History}); err != nil {
					log.Printf("[lonecli] cache put: %v", err)
				}
			}
		} else {
			outcome = solveOne(*strategy, s, uint8(*drawStep), term)
		}

		switch outcome.Result {
		case solver.Solved:
			cntSolved++
		case solver.Terminated:
			cntTerminated++
		}
		cntTotal++

		fmt.Printf("Run %d-%d in %v. %s: (%d/%d solved, %d terminated)\n",
			step, s, time.Since(start), outcome.Result, cntSolved, cntTotal, cntTerminated)

		if term.IsTerminated() {
			time.Sleep(500 * time.Millisecond)
			term.Reset()
		}
	}
}

func solveOne(strategy string, seed uint64, drawStep uint8, term *tracking.TerminateSignal) solver.Outcome {
	deal, err := shuffle(strategy, seed)
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	game, err := solitaire.New(deal, drawStep)
	if err != nil {
		log.Fatalf("[lonecli] %v", err)
	}
	return solver.Solve(game, pruning.FullPruner{}, tracking.NoopSearchStatistics{}, term)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: lonecli <print|solve|bench|play|rate> [flags]")
		os.Exit(1)
	}
	switch os.Args[1] {
	case "print":
		cmdPrint(os.Args[2:])
	case "solve":
		cmdSolve(os.Args[2:])
	case "bench":
		cmdBench(os.Args[2:])
	case "play":
		cmdPlay(os.Args[2:])
	case "rate":
		cmdRate(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "lonecli: unknown command %q\n", os.Args[1])
		os.Exit(1)
	}
}
