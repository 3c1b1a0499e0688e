package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"strings"
	"time"

	"udplisten/common"

	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
)

// Number of ESCs on the test stand
const ESC_COUNT = 4

type Options struct {
	Address string
	Port    int
	Timeout time.Duration // zero or negative sends nothing
	Power   int
	Config  Config
	Steps   []int
	Delay   time.Duration
	Verbose bool
}

func DefaultOptions() Options {
	return Options{
		Address: common.DEFAULT_SIMULATOR_HOST,
		Port:    common.DEFAULT_UDP_PORT,
		Timeout: time.Second,
		Power:   20,
		Config:  ALL_4,
		Delay:   200 * time.Millisecond,
	}
}

type Simulator struct {
	Options      Options
	Rand         *rand.Rand
	TotalPackets int
	TotalByte    int

	count int // ESC id of the next sample
	tsIdx int // time index of the next sample
}

func NewSimulator(opt Options) (*Simulator, error) {
	if _, err := ParseConfig(int(opt.Config)); err != nil {
		return nil, err
	}

	if opt.Port < 0 || opt.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", opt.Port)
	}

	return &Simulator{
		Options: opt,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		tsIdx:   1,
	}, nil
}

// Sends samples to the configured address until the timeout elapses, or
// once per power step when steps are given. Cancelling ctx stops the run.
func (s *Simulator) Run(ctx context.Context) error {
	target, err := net.ResolveUDPAddr("udp4", common.GetAddress(s.Options.Address, s.Options.Port))
	if err != nil {
		return err
	}

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Debugf("Simulator socket %s", conn.LocalAddr())
	log.Info("Starting simulator...")

	start := time.Now()
	testID := float64(start.UnixNano()) / float64(time.Second)

	if len(s.Options.Steps) > 0 {
		for _, powerStep := range s.Options.Steps {
			step := powerStep
			s.send(conn, target, GenerateData(s.Rand, testID, s.tsIdx, s.count, step, s.Options.Config, &step))

			if !sleep(ctx, s.Options.Delay) {
				log.Info("Closing socket and exiting...")
				return nil
			}

			s.advance()
		}
		return nil
	}

	for time.Since(start) < s.Options.Timeout {
		s.send(conn, target, GenerateData(s.Rand, testID, s.tsIdx, s.count, s.Options.Power, s.Options.Config, nil))

		if !sleep(ctx, s.Options.Delay) {
			log.Info("Closing socket and exiting...")
			return nil
		}

		s.advance()
	}

	return nil
}

func (s *Simulator) send(conn *net.UDPConn, target *net.UDPAddr, data Payload) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Warn(err)
		return
	}

	n, err := conn.WriteToUDP(payload, target)
	if err != nil {
		log.Warn(err)
		return
	}

	s.TotalPackets++
	s.TotalByte += n

	if s.Options.Verbose {
		log.Debugf("%s", payload)
	}
}

// ESC ids cycle through 0..3, the time index moves on after a full cycle
func (s *Simulator) advance() {
	if s.count < ESC_COUNT-1 {
		s.count++
	} else {
		s.count = 0
		s.tsIdx++
	}
}

// Returns false if ctx was cancelled before the delay elapsed
func sleep(ctx context.Context, delay time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}

// pretty print simulator options
func (opt Options) Print(w io.Writer) {
	steps := make([]string, len(opt.Steps))
	for i, step := range opt.Steps {
		steps[i] = fmt.Sprint(step)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"OPTION", "VALUE"})
	t.AppendRows([]table.Row{
		{"address", opt.Address},
		{"port", opt.Port},
		{"timeout", opt.Timeout},
		{"power", opt.Power},
		{"config", fmt.Sprintf("%d (%s)", int(opt.Config), opt.Config)},
		{"steps", strings.Join(steps, ",")},
		{"delay", opt.Delay},
		{"verbose", opt.Verbose},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}
