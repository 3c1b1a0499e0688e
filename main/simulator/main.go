package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"udplisten/common"
	"udplisten/simulator"

	log "github.com/sirupsen/logrus"
)

func checkError(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// Parses a comma separated list of power steps
func parseSteps(value string) ([]int, error) {
	var steps []int

	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		step, err := strconv.Atoi(token)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, nil
}

func main() {
	var address, steps string
	var port, timeout, power, config int
	var delay float64
	var verbose bool

	flag.StringVar(&address, "a", common.DEFAULT_SIMULATOR_HOST, "UDP IP address")
	flag.StringVar(&address, "address", common.DEFAULT_SIMULATOR_HOST, "UDP IP address")
	flag.IntVar(&port, "p", common.DEFAULT_UDP_PORT, "UDP port num")
	flag.IntVar(&port, "port", common.DEFAULT_UDP_PORT, "UDP port num")
	flag.IntVar(&timeout, "t", 1, "num seconds to run simulator, 0 sends nothing")
	flag.IntVar(&timeout, "timeout", 1, "num seconds to run simulator, 0 sends nothing")
	flag.IntVar(&power, "power", 20, "ESC power level as a percentage [10-100]")
	flag.IntVar(&config, "config", int(simulator.ALL_4), "test configuration [1: single, 2: cross_02, 3: cross_13, 4: all_4]")
	flag.StringVar(&steps, "steps", "", "stepwise power intervals, comma separated")
	flag.Float64Var(&delay, "d", 0.2, "sleep for delay seconds between UDP send")
	flag.Float64Var(&delay, "delay", 0.2, "sleep for delay seconds between UDP send")
	flag.BoolVar(&verbose, "v", false, "print verbose output")
	flag.BoolVar(&verbose, "verbose", false, "print verbose output")
	flag.Parse()

	level := ""
	if verbose {
		level = "debug"
	}
	common.Setup(level)

	cfg, err := simulator.ParseConfig(config)
	checkError(err)

	powerSteps, err := parseSteps(steps)
	checkError(err)

	opt := simulator.Options{
		Address: address,
		Port:    port,
		Timeout: time.Duration(timeout) * time.Second,
		Power:   power,
		Config:  cfg,
		Steps:   powerSteps,
		Delay:   time.Duration(delay * float64(time.Second)),
		Verbose: verbose,
	}
	opt.Print(os.Stdout)

	sim, err := simulator.NewSimulator(opt)
	checkError(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	checkError(sim.Run(ctx))
	log.Infof("Sent %d datagrams (%d bytes)", sim.TotalPackets, sim.TotalByte)
}
